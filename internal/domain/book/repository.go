package book

import (
	"context"
)

// Repository 目录数据源接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(内置样例、YAML文件、MySQL)
// 2. 目录只在启动时读取一次,查询引擎本身不访问Repository
// 3. 更换数据源不影响查询语义,只要字段含义保持一致
type Repository interface {
	// FindAll 按数据源中的原始顺序返回全部图书
	FindAll(ctx context.Context) ([]*Book, error)
}

// Writer 可写数据源(用于seed命令把目录导入MySQL)
type Writer interface {
	// ReplaceAll 用给定图书整体替换数据源内容
	ReplaceAll(ctx context.Context, books []*Book) error
}

// LoadCatalog 从数据源加载并校验目录
func LoadCatalog(ctx context.Context, repo Repository) (*Catalog, error) {
	items, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(items)
}
