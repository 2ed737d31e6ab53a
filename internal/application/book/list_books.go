package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/pkg/logger"
	"github.com/xiebiao/wizardshop/pkg/metrics"
	"github.com/xiebiao/wizardshop/pkg/tracing"
)

// ListBooksUseCase 目录查询用例
// 设计说明:
// 1. 无状态查询:每次请求携带完整的查询参数
// 2. 每次都对整个目录重新过滤和排序,不做分页
// 3. 空结果不是错误,响应里Empty=true,前端据此显示"没有结果"
type ListBooksUseCase struct {
	bookService book.Service
	logger      *zap.Logger
}

// NewListBooksUseCase 创建目录查询用例
func NewListBooksUseCase(bookService book.Service, logger *zap.Logger) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		logger:      logger,
	}
}

// ListBooksResponse 目录查询响应DTO
type ListBooksResponse struct {
	Query QueryView  `json:"query"`
	Items []BookItem `json:"items"`
	Total int        `json:"total"`
	Empty bool       `json:"empty"`
}

// Execute 执行目录查询
// 学习要点:
// 1. 参数解析失败返回409xx参数错误
// 2. 查询本身不会失败,过滤排序交给领域服务
// 3. 记录查询指标(分区、排序方式、结果数量)
func (uc *ListBooksUseCase) Execute(ctx context.Context, req QueryParams) (*ListBooksResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "ListBooksUseCase.Execute")
	defer span.End()

	// 1. 解析查询参数
	state, err := req.ToState()
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	// 2. 执行查询
	start := time.Now()
	books, err := uc.bookService.ListBooks(ctx, state)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	// 3. 记录指标
	metrics.RecordCatalogQuery(string(state.Section), string(state.Sort), len(books))
	span.SetAttributes(
		attribute.String("catalog.section", string(state.Section)),
		attribute.String("catalog.sort", string(state.Sort)),
		attribute.Int("catalog.results", len(books)),
	)
	logger.WithTrace(ctx, uc.logger).Debug("目录查询",
		zap.String("section", string(state.Section)),
		zap.String("house", string(state.House)),
		zap.String("search", state.Search),
		zap.String("sort", string(state.Sort)),
		zap.Int("results", len(books)),
		zap.Duration("latency", time.Since(start)),
	)

	return NewListBooksResponse(state, books), nil
}

// NewListBooksResponse 构建查询响应(会话视图复用)
func NewListBooksResponse(state book.QueryState, books []*book.Book) *ListBooksResponse {
	return &ListBooksResponse{
		Query: ToQueryView(state),
		Items: ToBookItems(books),
		Total: len(books),
		Empty: len(books) == 0,
	}
}
