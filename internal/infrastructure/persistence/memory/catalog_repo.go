package memory

import (
	"context"

	"github.com/xiebiao/wizardshop/internal/domain/book"
)

// CatalogRepository 内置样例目录
// 每次FindAll返回新的副本,调用方修改不影响下一次读取
type CatalogRepository struct{}

// NewCatalogRepository 创建内置目录数据源
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// FindAll 返回六本样例图书(原始顺序)
func (r *CatalogRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	return book.SampleBooks(), nil
}
