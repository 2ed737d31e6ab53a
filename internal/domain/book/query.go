package book

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// SortKey 排序方式
type SortKey string

const (
	SortPopular SortKey = "popular" // 人气:按稀有度降序
	SortPrice   SortKey = "price"   // 价格升序
	SortYear    SortKey = "year"    // 出版年份降序
	SortRarity  SortKey = "rarity"  // 稀有度降序(与人气相同)
)

// DefaultSortKey 会话开始时的排序方式
const DefaultSortKey = SortPopular

// SortKeys 返回全部排序方式
func SortKeys() []SortKey {
	return []SortKey{SortPopular, SortPrice, SortYear, SortRarity}
}

// IsValid 是否为已知排序方式
func (k SortKey) IsValid() bool {
	switch k {
	case SortPopular, SortPrice, SortYear, SortRarity:
		return true
	}
	return false
}

// ParseSortKey 解析排序参数
// "popularity"是"popular"的别名;空字符串回退到默认排序
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "":
		return DefaultSortKey, nil
	case "popularity":
		return SortPopular, nil
	}
	k := SortKey(s)
	if !k.IsValid() {
		return "", ErrInvalidSortKey
	}
	return k, nil
}

// compare 返回该排序方式的比较函数(与slices.SortStableFunc约定一致)
func (k SortKey) compare() func(a, b *Book) int {
	switch k {
	case SortPrice:
		return func(a, b *Book) int { return cmp.Compare(a.Price, b.Price) }
	case SortYear:
		return func(a, b *Book) int { return cmp.Compare(b.Year, a.Year) }
	default:
		// SortPopular 和 SortRarity 使用同一个比较器
		return func(a, b *Book) int { return cmp.Compare(b.Rarity, a.Rarity) }
	}
}

// MaxSearchLength 关键词最大长度(按字符计)
const MaxSearchLength = 100

// ValidateSearch 校验关键词长度,HTTP、gRPC、会话操作共用这一条规则
func ValidateSearch(q string) error {
	if utf8.RuneCountInString(q) > MaxSearchLength {
		return ErrSearchTooLong
	}
	return nil
}

// QueryState 查询状态
// 设计说明:
// 1. Section必选,始终只有一个分区被选中
// 2. House为空表示不限学院
// 3. ShuffleNonce只由"随机"操作递增,比较器不读取它
type QueryState struct {
	Section      Section `json:"section"`
	House        House   `json:"house,omitempty"`
	Search       string  `json:"search,omitempty"`
	Sort         SortKey `json:"sort"`
	ShuffleNonce uint64  `json:"shuffle_nonce"`
}

// DefaultQueryState 新会话的初始查询状态
func DefaultQueryState() QueryState {
	return QueryState{
		Section: DefaultSection,
		Sort:    DefaultSortKey,
	}
}

// Validate 校验查询状态中的枚举取值
func (s QueryState) Validate() error {
	if !s.Section.IsValid() {
		return ErrInvalidSection
	}
	if s.House != "" && !s.House.IsValid() {
		return ErrInvalidHouse
	}
	if !s.Sort.IsValid() {
		return ErrInvalidSortKey
	}
	return nil
}

// Matches 判断单本图书是否满足全部过滤条件
// 过滤顺序:分区(必选) → 学院(可选) → 关键词(可选)
// 各条件之间为AND;关键词在标题、作者、简介三个字段之间为OR
func (s QueryState) Matches(b *Book) bool {
	if b.Section != s.Section {
		return false
	}
	if s.House != "" && b.House != s.House {
		return false
	}
	needle := normalizeSearch(s.Search)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle) ||
		strings.Contains(strings.ToLower(b.Blurb), needle)
}

// Query 目录查询引擎
// 纯函数:不修改输入切片,相同输入总是得到相同输出
//
// 学习要点:
// 1. 先过滤再排序,过滤结果保持目录原始顺序
// 2. 使用稳定排序,排序键相同的图书保持过滤后的相对顺序
// 3. 没有匹配结果时返回空切片(非nil),由展示层给出"无结果"提示
func Query(items []*Book, state QueryState) []*Book {
	// 1. 过滤
	result := make([]*Book, 0, len(items))
	for _, b := range items {
		if state.Matches(b) {
			result = append(result, b)
		}
	}

	// 2. 稳定排序(ShuffleNonce不参与比较)
	slices.SortStableFunc(result, state.Sort.compare())

	return result
}

// normalizeSearch 去除首尾空白并转小写
func normalizeSearch(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
