package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic(重复注册)

	if HTTPRequestsTotal == nil || HTTPRequestDuration == nil || HTTPRequestsInProgress == nil {
		t.Fatal("HTTP指标未初始化")
	}
	if CatalogQueriesTotal == nil || CatalogQueryResults == nil || CatalogQueryEmptyTotal == nil {
		t.Fatal("目录查询指标未初始化")
	}
	if CartTogglesTotal == nil || SessionsCreatedTotal == nil {
		t.Fatal("会话指标未初始化")
	}

	t.Log("✅ 所有指标初始化成功")
}

// TestRecordCatalogQuery 测试目录查询指标
func TestRecordCatalogQuery(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"section": "rare", "sort": "price"}
	before := getCounterVecValue(t, CatalogQueriesTotal, labels)
	emptyBefore := getCounterValue(t, CatalogQueryEmptyTotal)
	countBefore := getHistogramCount(t, CatalogQueryResults)

	RecordCatalogQuery("rare", "price", 2)
	RecordCatalogQuery("rare", "price", 0)

	if got := getCounterVecValue(t, CatalogQueriesTotal, labels) - before; got != 2 {
		t.Errorf("查询次数错误: expected=2, got=%f", got)
	}
	if got := getCounterValue(t, CatalogQueryEmptyTotal) - emptyBefore; got != 1 {
		t.Errorf("空结果次数错误: expected=1, got=%f", got)
	}
	if got := getHistogramCount(t, CatalogQueryResults) - countBefore; got != 2 {
		t.Errorf("结果分布观测次数错误: expected=2, got=%d", got)
	}

	t.Log("✅ 目录查询指标测试通过")
}

// TestRecordCartToggle 测试购物车指标
func TestRecordCartToggle(t *testing.T) {
	InitMetrics()

	added := map[string]string{"action": "added"}
	removed := map[string]string{"action": "removed"}
	addedBefore := getCounterVecValue(t, CartTogglesTotal, added)
	removedBefore := getCounterVecValue(t, CartTogglesTotal, removed)

	RecordCartToggle(true)
	RecordCartToggle(true)
	RecordCartToggle(false)

	if got := getCounterVecValue(t, CartTogglesTotal, added) - addedBefore; got != 2 {
		t.Errorf("added次数错误: expected=2, got=%f", got)
	}
	if got := getCounterVecValue(t, CartTogglesTotal, removed) - removedBefore; got != 1 {
		t.Errorf("removed次数错误: expected=1, got=%f", got)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()
	SetGauge(HTTPRequestsInProgress, 0)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", v)
	}

	DecGauge(HTTPRequestsInProgress)
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", v)
	}

	SetGauge(HTTPRequestsInProgress, 0)
}

// TestGaugeVec 测试熔断器状态
func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "event-publisher"}, 1) // OPEN
	if v := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "event-publisher"}); v != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", v)
	}
}

// TestHistogramVec 测试HTTP耗时
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "GET", "path": "/api/v1/books"}
	before := getHistogramVecCount(t, HTTPRequestDuration, labels)

	ObserveHistogramVec(HTTPRequestDuration, labels, 0.002)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.004)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "POST", "path": "/api/v1/sessions"}, 0.01)

	if got := getHistogramVecCount(t, HTTPRequestDuration, labels) - before; got != 2 {
		t.Errorf("HistogramVec观测次数错误: expected=2, got=%d", got)
	}
}

// 辅助函数:获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数:获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := counterVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数:获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数:获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	if err := gaugeVec.With(labels).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数:获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

// 辅助函数:获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	if err := histogramVec.With(labels).(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
