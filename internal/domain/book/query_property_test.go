package book

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// genCatalog 生成ID唯一的随机目录
// 字段取值范围刻意收窄,保证排序键经常相等,以便验证稳定排序
func genCatalog() *rapid.Generator[[]*Book] {
	words := []string{"Zauber", "Trank", "Drache", "Eule", "Besen", "Rune", "N.E.W.T", "Kessel"}
	return rapid.Custom(func(t *rapid.T) []*Book {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		books := make([]*Book, n)
		for i := 0; i < n; i++ {
			books[i] = &Book{
				ID:      fmt.Sprintf("bk%d", i),
				Title:   rapid.SampledFrom(words).Draw(t, "title"),
				Author:  rapid.SampledFrom(words).Draw(t, "author"),
				Blurb:   rapid.SampledFrom(words).Draw(t, "blurb"),
				House:   rapid.SampledFrom(Houses()).Draw(t, "house"),
				Section: rapid.SampledFrom(Sections()).Draw(t, "section"),
				Year:    rapid.IntRange(1400, 1403).Draw(t, "year"),
				Rarity:  rapid.IntRange(1, 5).Draw(t, "rarity"),
				Price:   float64(rapid.IntRange(0, 3).Draw(t, "price")),
			}
		}
		return books
	})
}

func genState() *rapid.Generator[QueryState] {
	return rapid.Custom(func(t *rapid.T) QueryState {
		houses := append([]House{""}, Houses()...)
		return QueryState{
			Section:      rapid.SampledFrom(Sections()).Draw(t, "section"),
			House:        rapid.SampledFrom(houses).Draw(t, "house"),
			Search:       rapid.SampledFrom([]string{"", " ", "zau", "TRANK", " eule ", "n.e.w.t", "xyz"}).Draw(t, "search"),
			Sort:         rapid.SampledFrom(SortKeys()).Draw(t, "sort"),
			ShuffleNonce: rapid.Uint64().Draw(t, "nonce"),
		}
	})
}

func sortKeyOf(b *Book, k SortKey) float64 {
	switch k {
	case SortPrice:
		return b.Price
	case SortYear:
		return float64(b.Year)
	default:
		return float64(b.Rarity)
	}
}

func TestQuery_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		catalog := genCatalog().Draw(t, "catalog")
		state := genState().Draw(t, "state")

		got := Query(catalog, state)

		// 独立写出过滤条件,不复用被测的Matches
		needle := strings.ToLower(strings.TrimSpace(state.Search))
		keep := func(b *Book) bool {
			if b.Section != state.Section {
				return false
			}
			if state.House != "" && b.House != state.House {
				return false
			}
			return needle == "" ||
				strings.Contains(strings.ToLower(b.Title), needle) ||
				strings.Contains(strings.ToLower(b.Author), needle) ||
				strings.Contains(strings.ToLower(b.Blurb), needle)
		}

		// 过滤条件逐项成立
		for _, b := range got {
			if !keep(b) {
				t.Fatalf("%s 不满足过滤条件 %+v", b.ID, state)
			}
		}

		// 结果恰好是过滤集合:不丢失、不重复
		var filtered []*Book
		for _, b := range catalog {
			if keep(b) {
				filtered = append(filtered, b)
			}
		}
		if len(got) != len(filtered) {
			t.Fatalf("结果数量 %d, 期望 %d", len(got), len(filtered))
		}
		seen := make(map[string]bool, len(got))
		for _, b := range got {
			if seen[b.ID] {
				t.Fatalf("%s 重复出现", b.ID)
			}
			seen[b.ID] = true
		}

		// 排序正确且稳定:相等键保持过滤后的相对顺序
		pos := make(map[string]int, len(filtered))
		for i, b := range filtered {
			pos[b.ID] = i
		}
		for i := 1; i < len(got); i++ {
			prev, cur := sortKeyOf(got[i-1], state.Sort), sortKeyOf(got[i], state.Sort)
			ascending := state.Sort == SortPrice
			if (ascending && prev > cur) || (!ascending && prev < cur) {
				t.Fatalf("排序错误: %s(%v) 在 %s(%v) 之前", got[i-1].ID, prev, got[i].ID, cur)
			}
			if prev == cur && pos[got[i-1].ID] > pos[got[i].ID] {
				t.Fatalf("稳定性被破坏: %s 与 %s", got[i-1].ID, got[i].ID)
			}
		}

		// 幂等 + nonce无关
		again := Query(catalog, state)
		state.ShuffleNonce++
		shuffled := Query(catalog, state)
		for i := range got {
			if got[i] != again[i] || got[i] != shuffled[i] {
				t.Fatalf("第%d项在重复查询中不一致", i)
			}
		}
	})
}

func TestShuffleTies_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		catalog := genCatalog().Draw(t, "catalog")
		state := genState().Draw(t, "state")

		sorted := Query(catalog, state)
		shuffled := ShuffleTies(sorted, state.Sort, state.ShuffleNonce)

		if len(shuffled) != len(sorted) {
			t.Fatalf("长度变化: %d -> %d", len(sorted), len(shuffled))
		}
		// 每个位置上的排序键保持不变,说明只在同键区间内交换
		for i := range sorted {
			if sortKeyOf(sorted[i], state.Sort) != sortKeyOf(shuffled[i], state.Sort) {
				t.Fatalf("第%d项的排序键被改变", i)
			}
		}
		// 同一nonce结果确定
		again := ShuffleTies(sorted, state.Sort, state.ShuffleNonce)
		for i := range shuffled {
			if shuffled[i] != again[i] {
				t.Fatalf("同一nonce得到不同排列")
			}
		}
	})
}
