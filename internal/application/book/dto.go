package book

import (
	"github.com/xiebiao/wizardshop/internal/domain/book"
)

// QueryParams 查询参数DTO(HTTP查询串、gRPC请求、CLI参数共用)
// 所有字段都是原始字符串,由ToState统一解析和校验
type QueryParams struct {
	Section string // 分区,空值回退到new
	House   string // 学院,空值表示不限
	Search  string // 关键词
	Sort    string // 排序方式,空值回退到popular
	Nonce   uint64 // 随机序号
}

// ToState 解析为领域查询状态
func (p QueryParams) ToState() (book.QueryState, error) {
	section, err := book.ParseSection(p.Section)
	if err != nil {
		return book.QueryState{}, err
	}
	house, err := book.ParseHouse(p.House)
	if err != nil {
		return book.QueryState{}, err
	}
	sort, err := book.ParseSortKey(p.Sort)
	if err != nil {
		return book.QueryState{}, err
	}
	if err := book.ValidateSearch(p.Search); err != nil {
		return book.QueryState{}, err
	}

	return book.QueryState{
		Section:      section,
		House:        house,
		Search:       p.Search,
		Sort:         sort,
		ShuffleNonce: p.Nonce,
	}, nil
}

// BookItem 图书DTO
type BookItem struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Author  string  `json:"author"`
	House   string  `json:"house"`
	Section string  `json:"section"`
	Year    int     `json:"year"`
	Blurb   string  `json:"blurb"`
	Rarity  int     `json:"rarity"`
	Stars   string  `json:"stars"` // ★★★☆☆
	Price   float64 `json:"price"`
}

// ToBookItem 领域实体 → DTO
func ToBookItem(b *book.Book) BookItem {
	return BookItem{
		ID:      b.ID,
		Title:   b.Title,
		Author:  b.Author,
		House:   string(b.House),
		Section: string(b.Section),
		Year:    b.Year,
		Blurb:   b.Blurb,
		Rarity:  b.Rarity,
		Stars:   b.Stars(),
		Price:   b.Price,
	}
}

// ToBookItems 批量转换,空输入返回空切片(JSON序列化为[]而不是null)
func ToBookItems(books []*book.Book) []BookItem {
	items := make([]BookItem, len(books))
	for i, b := range books {
		items[i] = ToBookItem(b)
	}
	return items
}

// QueryView 查询状态DTO
type QueryView struct {
	Section      string `json:"section"`
	SectionLabel string `json:"section_label"`
	House        string `json:"house,omitempty"`
	Search       string `json:"search,omitempty"`
	Sort         string `json:"sort"`
	ShuffleNonce uint64 `json:"shuffle_nonce"`
}

// ToQueryView 领域查询状态 → DTO
func ToQueryView(s book.QueryState) QueryView {
	return QueryView{
		Section:      string(s.Section),
		SectionLabel: s.Section.Label(),
		House:        string(s.House),
		Search:       s.Search,
		Sort:         string(s.Sort),
		ShuffleNonce: s.ShuffleNonce,
	}
}
