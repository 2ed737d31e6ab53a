package session

import (
	"context"

	"go.uber.org/zap"

	bookapp "github.com/xiebiao/wizardshop/internal/application/book"
	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/pkg/metrics"
)

// SessionView 会话视图DTO
// 设计说明:
// 1. 视图完全由会话状态和目录推导出来,每次请求重新计算
// 2. Results就是当前查询状态下的商品列表,客户端不需要再单独查询
// 3. 购物车里的图书按加入顺序展开成完整条目
type SessionView struct {
	ID       string                     `json:"id"`
	Query    bookapp.QueryView          `json:"query"`
	Results  *bookapp.ListBooksResponse `json:"results"`
	Cart     CartView                   `json:"cart"`
	Selected *bookapp.BookItem          `json:"selected"` // 没有打开详情时为null
	Theme    string                     `json:"theme"`    // dark | light
}

// CartView 购物车DTO
type CartView struct {
	Items []bookapp.BookItem `json:"items"`
	Count int                `json:"count"`
}

// viewBuilder 根据会话状态构建视图
type viewBuilder struct {
	bookService book.Service
	logger      *zap.Logger
}

func (b viewBuilder) build(ctx context.Context, s *session.Session) (*SessionView, error) {
	// 1. 当前查询结果
	books, err := b.bookService.ListBooks(ctx, s.Query)
	if err != nil {
		return nil, err
	}
	metrics.RecordCatalogQuery(string(s.Query.Section), string(s.Query.Sort), len(books))

	// 2. 购物车条目
	cart := b.cart(ctx, s)

	// 3. 详情
	var selected *bookapp.BookItem
	if s.HasSelection() {
		if bk, err := b.bookService.GetBook(ctx, s.Selected); err == nil {
			item := bookapp.ToBookItem(bk)
			selected = &item
		}
	}

	theme := "light"
	if s.Dark {
		theme = "dark"
	}

	return &SessionView{
		ID:       s.ID,
		Query:    bookapp.ToQueryView(s.Query),
		Results:  bookapp.NewListBooksResponse(s.Query, books),
		Cart:     cart,
		Selected: selected,
		Theme:    theme,
	}, nil
}

// cart 展开购物车条目,目录中已不存在的ID跳过
func (b viewBuilder) cart(ctx context.Context, s *session.Session) CartView {
	items := make([]bookapp.BookItem, 0, s.Cart.Len())
	for _, id := range s.Cart.IDs() {
		bk, err := b.bookService.GetBook(ctx, id)
		if err != nil {
			b.logger.Warn("购物车中的图书已不在目录中", zap.String("session_id", s.ID), zap.String("book_id", id))
			continue
		}
		items = append(items, bookapp.ToBookItem(bk))
	}
	return CartView{Items: items, Count: len(items)}
}
