package book

import (
	"context"

	"github.com/xiebiao/wizardshop/internal/domain/book"
)

// ListFacetsUseCase 过滤条件元数据用例
// 前端用它渲染分区标签(含数量)、学院按钮和排序下拉框
type ListFacetsUseCase struct {
	bookService book.Service
}

// NewListFacetsUseCase 创建元数据用例
func NewListFacetsUseCase(bookService book.Service) *ListFacetsUseCase {
	return &ListFacetsUseCase{bookService: bookService}
}

// SectionItem 分区DTO
type SectionItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FacetsResponse 元数据响应DTO
type FacetsResponse struct {
	Sections       []SectionItem `json:"sections"`
	Houses         []string      `json:"houses"`
	SortKeys       []string      `json:"sort_keys"`
	DefaultSection string        `json:"default_section"`
	DefaultSort    string        `json:"default_sort"`
}

// Execute 返回元数据
func (uc *ListFacetsUseCase) Execute(ctx context.Context) *FacetsResponse {
	facets := uc.bookService.Facets(ctx)

	resp := &FacetsResponse{
		Sections:       make([]SectionItem, len(facets.Sections)),
		Houses:         make([]string, len(facets.Houses)),
		SortKeys:       make([]string, len(facets.SortKeys)),
		DefaultSection: string(book.DefaultSection),
		DefaultSort:    string(book.DefaultSortKey),
	}
	for i, s := range facets.Sections {
		resp.Sections[i] = SectionItem{ID: string(s.Section), Label: s.Label, Count: s.Count}
	}
	for i, h := range facets.Houses {
		resp.Houses[i] = string(h)
	}
	for i, k := range facets.SortKeys {
		resp.SortKeys[i] = string(k)
	}
	return resp
}
