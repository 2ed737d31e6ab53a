package book

import (
	"context"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/pkg/tracing"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 根据ID获取图书,不存在返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id string) (*BookItem, error) {
	ctx, span := tracing.StartSpan(ctx, "GetBookUseCase.Execute")
	defer span.End()

	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	item := ToBookItem(b)
	return &item, nil
}
