package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AppMetrics gerencia as métricas expostas pela aplicação
type AppMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
	exportsTotal    *prometheus.CounterVec
	cacheHitRatio   *prometheus.GaugeVec
}

var (
	instance *AppMetrics
	once     sync.Once
)

// NewAppMetrics cria e registra as métricas do prometheus. Os coletores
// são registrados no registro global uma única vez: chamadas repetidas
// devolvem a mesma instância.
func NewAppMetrics() *AppMetrics {
	once.Do(func() {
		instance = newAppMetrics()
	})
	return instance
}

func newAppMetrics() *AppMetrics {
	return &AppMetrics{
		requestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atendimentos_requests_total",
				Help: "Total number of HTTP requests by path, method, and status code",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "atendimentos_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		activeRequests: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "atendimentos_active_requests",
				Help: "Number of in-flight requests being processed",
			},
			[]string{"path", "method"},
		),

		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atendimentos_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"path", "method", "error_type"},
		),

		exportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atendimentos_report_exports_total",
				Help: "Total number of report exports by format",
			},
			[]string{"format"},
		),

		cacheHitRatio: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "atendimentos_cache_hit_ratio",
				Help: "Cache hit ratio (0.0 to 1.0)",
			},
			[]string{"cache_type"},
		),
	}
}

// RequestStarted registra o início de uma requisição
func (m *AppMetrics) RequestStarted(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// RequestCompleted registra a conclusão de uma requisição
func (m *AppMetrics) RequestCompleted(path, method, status string, duration time.Duration) {
	m.requestCounter.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
	m.activeRequests.WithLabelValues(path, method).Dec()
}

// RequestError registra um erro de requisição
func (m *AppMetrics) RequestError(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

// ReportExported registra a geração de um anexo de relatório
func (m *AppMetrics) ReportExported(format string) {
	m.exportsTotal.WithLabelValues(format).Inc()
}

// SetCacheHitRatio atualiza a taxa de acertos do cache
func (m *AppMetrics) SetCacheHitRatio(cacheType string, hitRatio float64) {
	m.cacheHitRatio.WithLabelValues(cacheType).Set(hitRatio)
}
