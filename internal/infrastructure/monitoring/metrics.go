package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meal_planner"

// Metrics 服務的 Prometheus 指標，各實例使用獨立的 registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	plansTotal  *prometheus.CounterVec
	planEntries prometheus.Histogram
}

// NewMetrics 創建指標並註冊 Go runtime 與 process collector
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		plansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "meal_plans_total",
				Help:      "Meal plan requests by outcome",
			},
			[]string{"outcome"},
		),
		planEntries: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "meal_plan_entries",
				Help:      "Number of entries in generated meal plans",
				Buckets:   []float64{0, 7, 14, 21, 28, 35},
			},
		),
	}
}

// ObserveRequest 記錄一次 HTTP 請求
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// PlanGenerated 記錄成功產生的餐單
func (m *Metrics) PlanGenerated(entries int) {
	m.plansTotal.WithLabelValues("generated").Inc()
	m.planEntries.Observe(float64(entries))
}

// PlanNoMatch 記錄沒有符合料理類型的請求
func (m *Metrics) PlanNoMatch() {
	m.plansTotal.WithLabelValues("no_match").Inc()
}

// PlanFailed 記錄產生失敗的請求
func (m *Metrics) PlanFailed() {
	m.plansTotal.WithLabelValues("error").Inc()
}

// Handler Prometheus 抓取端點
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
