// Package middleware reúne os middlewares HTTP da aplicação.
package middleware

import (
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/app/auth"
	"github.com/atendsys/gestao-atendimentos/internal/infra/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger             *zap.Logger
	authMiddleware     *AuthMiddleware
	recoveryMiddleware *RecoveryMiddleware
	metricsMiddleware  *MetricsMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(logger *zap.Logger, authService *auth.AuthService, appMetrics *metrics.AppMetrics) *Middleware {
	return &Middleware{
		logger:             logger,
		authMiddleware:     NewAuthMiddleware(authService, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		metricsMiddleware:  NewMetricsMiddleware(appMetrics, logger),
	}
}

// Authenticate middleware para autenticação de usuários
func (m *Middleware) Authenticate(c *gin.Context) {
	m.authMiddleware.Authenticate(c)
}

// RequireAdmin middleware para rotas restritas a administradores
func (m *Middleware) RequireAdmin(c *gin.Context) {
	m.authMiddleware.RequireAdmin(c)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// Metrics middleware de coleta de métricas por requisição
func (m *Middleware) Metrics() gin.HandlerFunc {
	return m.metricsMiddleware.Middleware()
}

// RegisterMetricsEndpoint expõe /metrics no router
func (m *Middleware) RegisterMetricsEndpoint(router *gin.Engine) {
	m.metricsMiddleware.RegisterEndpoint(router)
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		m.logger.Info("request completed",
			zap.String("path", path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
