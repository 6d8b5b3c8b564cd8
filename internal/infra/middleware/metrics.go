package middleware

import (
	"strconv"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/infra/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsMiddleware coleta métricas por requisição
type MetricsMiddleware struct {
	metrics *metrics.AppMetrics
	logger  *zap.Logger
}

// NewMetricsMiddleware cria um novo middleware de métricas
func NewMetricsMiddleware(appMetrics *metrics.AppMetrics, logger *zap.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: appMetrics,
		logger:  logger,
	}
}

// RegisterEndpoint expõe as métricas do Prometheus em /metrics
func (m *MetricsMiddleware) RegisterEndpoint(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	m.logger.Info("Endpoint de métricas Prometheus registrado em /metrics")
}

// Middleware registra métricas para cada requisição
func (m *MetricsMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		m.metrics.RequestStarted(path, method)
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		m.metrics.RequestCompleted(path, method, strconv.Itoa(status), time.Since(start))

		if status >= 400 {
			errorType := "client_error"
			if status >= 500 {
				errorType = "server_error"
			}
			m.metrics.RequestError(path, method, errorType)
		}
	}
}
