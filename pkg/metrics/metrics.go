// Package metrics 提供基于Prometheus的指标收集
//
// # 指标分组
//
//	┌────────────────────────────────────────────────────────────┐
//	│  传输层                                                     │
//	│  ├─ http_requests_total / http_request_duration_seconds      │
//	│  └─ grpc_requests_total                                     │
//	├────────────────────────────────────────────────────────────┤
//	│  目录查询                                                    │
//	│  ├─ catalog_queries_total{section,sort}                     │
//	│  ├─ catalog_query_results (每次查询命中的图书数)              │
//	│  └─ catalog_query_empty_total (展示"无结果"提示的次数)        │
//	├────────────────────────────────────────────────────────────┤
//	│  会话                                                       │
//	│  ├─ sessions_created_total / sessions_ended_total            │
//	│  └─ cart_toggles_total{action=added|removed}                 │
//	├────────────────────────────────────────────────────────────┤
//	│  基础设施                                                    │
//	│  ├─ circuit_breaker_state / circuit_breaker_requests_total   │
//	│  └─ messages_published_total{exchange,routing_key,result}    │
//	└────────────────────────────────────────────────────────────┘
//
// # 使用示例
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.CatalogQueriesTotal, map[string]string{
//	    "section": "rare",
//	    "sort":    "price",
//	})
//
// # 标签基数
//
// section、sort、action都是有限枚举,可以作为标签
// 会话ID、图书ID、搜索关键词不能作为标签
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签:method、path(路由模板,如/api/v1/books/:id)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// GRPCRequestsTotal gRPC请求总数
	// 标签:method(完整方法名)、code(gRPC状态码)
	GRPCRequestsTotal *prometheus.CounterVec

	// 目录查询指标

	// CatalogQueriesTotal 目录查询次数
	CatalogQueriesTotal *prometheus.CounterVec

	// CatalogQueryResults 每次查询的结果数量分布
	CatalogQueryResults prometheus.Histogram

	// CatalogQueryEmptyTotal 结果为空的查询次数
	CatalogQueryEmptyTotal prometheus.Counter

	// CatalogSize 当前加载的目录大小
	CatalogSize prometheus.Gauge

	// 会话指标

	// SessionsCreatedTotal 创建会话总数
	SessionsCreatedTotal prometheus.Counter

	// SessionsEndedTotal 主动结束的会话总数
	SessionsEndedTotal prometheus.Counter

	// CartTogglesTotal 购物车切换次数
	// 标签:action(added/removed)
	CartTogglesTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签:name、result(success/failure/rejected)
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签:exchange、routing_key、result(success/failure)
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
// 可以重复调用,只有第一次生效
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时(秒)",
			// 目录在内存中,绝大多数请求在毫秒级完成
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	GRPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grpc_requests_total",
			Help: "gRPC请求总数",
		},
		[]string{"method", "code"},
	)

	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "目录查询次数",
		},
		[]string{"section", "sort"},
	)

	CatalogQueryResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_query_results",
			Help:    "每次目录查询返回的图书数量",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	CatalogQueryEmptyTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_query_empty_total",
			Help: "结果为空的目录查询次数",
		},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_size",
			Help: "已加载目录中的图书数量",
		},
	)

	SessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "创建的浏览会话总数",
		},
	)

	SessionsEndedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_ended_total",
			Help: "主动结束的浏览会话总数",
		},
	)

	CartTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_toggles_total",
			Help: "购物车切换次数",
		},
		[]string{"action"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
}

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec(带标签)
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值(带标签)
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值(带标签)
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// RecordCatalogQuery 记录一次目录查询
func RecordCatalogQuery(section, sort string, results int) {
	InitMetrics()
	IncCounterVec(CatalogQueriesTotal, map[string]string{"section": section, "sort": sort})
	ObserveHistogram(CatalogQueryResults, float64(results))
	if results == 0 {
		IncCounter(CatalogQueryEmptyTotal)
	}
}

// RecordCartToggle 记录一次购物车切换
func RecordCartToggle(added bool) {
	InitMetrics()
	action := "removed"
	if added {
		action = "added"
	}
	IncCounterVec(CartTogglesTotal, map[string]string{"action": action})
}
