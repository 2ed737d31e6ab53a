package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装目录查询规则(参数校验、可选的同键打乱)
// 2. 依赖已校验的Catalog,而不是Repository,查询过程不会产生I/O错误
type Service interface {
	// ListBooks 按查询状态返回有序结果
	// 业务规则:
	// - 分区、学院、排序方式必须是已知取值
	// - 空结果不是错误
	ListBooks(ctx context.Context, state QueryState) ([]*Book, error)

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id string) (*Book, error)

	// Facets 返回可选的分区(含计数)、学院和排序方式
	Facets(ctx context.Context) Facets
}

// ServiceOptions 领域服务选项
type ServiceOptions struct {
	// ShuffleTies 为true时,"随机"操作会打乱排序键相同的图书
	// 默认false:ShuffleNonce不影响结果
	ShuffleTies bool
}

// SectionFacet 分区及其图书数量
type SectionFacet struct {
	Section Section
	Label   string
	Count   int
}

// Facets 过滤条件元数据
type Facets struct {
	Sections []SectionFacet
	Houses   []House
	SortKeys []SortKey
}

// service 领域服务实现
type service struct {
	catalog *Catalog
	opts    ServiceOptions
}

// NewService 创建图书领域服务
func NewService(catalog *Catalog, opts ServiceOptions) Service {
	return &service{catalog: catalog, opts: opts}
}

// ListBooks 查询图书列表
func (s *service) ListBooks(ctx context.Context, state QueryState) ([]*Book, error) {
	// 1. 参数校验
	if err := state.Validate(); err != nil {
		return nil, err
	}

	// 2. 过滤 + 稳定排序
	result := s.catalog.Query(state)

	// 3. 可选:同键打乱
	if s.opts.ShuffleTies {
		result = ShuffleTies(result, state.Sort, state.ShuffleNonce)
	}

	return result, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id string) (*Book, error) {
	b, ok := s.catalog.Get(id)
	if !ok {
		return nil, ErrBookNotFound.WithMessage("图书不存在: " + id)
	}
	return b, nil
}

// Facets 过滤条件元数据
func (s *service) Facets(ctx context.Context) Facets {
	counts := s.catalog.CountBySection()

	sections := make([]SectionFacet, 0, len(counts))
	for _, sec := range Sections() {
		sections = append(sections, SectionFacet{
			Section: sec,
			Label:   sec.Label(),
			Count:   counts[sec],
		})
	}

	return Facets{
		Sections: sections,
		Houses:   Houses(),
		SortKeys: SortKeys(),
	}
}
