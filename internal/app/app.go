// Package app monta a aplicação: configuração, banco, serviços e rotas.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/atendsys/gestao-atendimentos/internal/adapter/database"
	apphttp "github.com/atendsys/gestao-atendimentos/internal/adapter/http"
	"github.com/atendsys/gestao-atendimentos/internal/app/auth"
	"github.com/atendsys/gestao-atendimentos/internal/app/registry"
	"github.com/atendsys/gestao-atendimentos/internal/app/report"
	"github.com/atendsys/gestao-atendimentos/internal/app/session"
	"github.com/atendsys/gestao-atendimentos/internal/infra/metrics"
	"github.com/atendsys/gestao-atendimentos/internal/infra/middleware"
	"github.com/atendsys/gestao-atendimentos/pkg/cache"
	"github.com/atendsys/gestao-atendimentos/pkg/config"
	"github.com/atendsys/gestao-atendimentos/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// App reúne as dependências montadas da aplicação
type App struct {
	Logger     *zap.Logger
	Config     *config.Config
	DB         *database.Database
	Cache      cache.Cache
	Middleware *middleware.Middleware
	Metrics    *metrics.AppMetrics

	authHandler        *apphttp.AuthHandler
	usuarioHandler     *apphttp.UsuarioHandler
	funcaoHandler      *apphttp.FuncaoHandler
	atendimentoHandler *apphttp.AtendimentoHandler
	relatorioHandler   *apphttp.RelatorioHandler
	healthChecker      *apphttp.HealthChecker
}

// NewApp cria uma nova instância da aplicação com todas as dependências
// injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewDatabase(ctx, database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
		AdminUsername:   cfg.Bootstrap.AdminUsername,
		AdminPassword:   cfg.Bootstrap.AdminPassword,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar banco de dados: %w", err)
	}

	appMetrics := metrics.NewAppMetrics()

	appCache, err := newCache(cfg.Cache, appMetrics, logger)
	if err != nil {
		return nil, err
	}

	usuarioRepo := database.NewUsuarioRepository(db.DB(), logger)
	funcaoRepo := database.NewFuncaoRepository(db.DB(), logger)
	atendimentoRepo := database.NewAtendimentoRepository(db.DB(), logger)

	keyManager, err := security.NewKeyManager(cfg.Auth.JWTSecret, logger)
	if err != nil {
		return nil, err
	}

	authService := auth.NewAuthService(keyManager, usuarioRepo, cfg.Auth.TokenExpiration, logger)
	registryService := registry.NewService(funcaoRepo, appCache, logger)
	sessionService := session.NewService(atendimentoRepo, funcaoRepo, logger)
	reportService := report.NewService(atendimentoRepo, logger)

	return &App{
		Logger:     logger,
		Config:     cfg,
		DB:         db,
		Cache:      appCache,
		Middleware: middleware.NewMiddleware(logger, authService, appMetrics),
		Metrics:    appMetrics,

		authHandler:        apphttp.NewAuthHandler(authService, logger),
		usuarioHandler:     apphttp.NewUsuarioHandler(usuarioRepo, logger),
		funcaoHandler:      apphttp.NewFuncaoHandler(registryService, logger),
		atendimentoHandler: apphttp.NewAtendimentoHandler(sessionService, logger),
		relatorioHandler:   apphttp.NewRelatorioHandler(reportService, appMetrics, logger),
		healthChecker:      apphttp.NewHealthChecker(db, appCache, logger),
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(middleware.RequestID())
	router.Use(a.Middleware.Metrics())

	a.Middleware.RegisterMetricsEndpoint(router)

	router.GET("/health", a.healthChecker.ReadinessCheck)
	router.GET("/health/liveness", a.healthChecker.LivenessCheck)
	router.GET("/health/readiness", a.healthChecker.ReadinessCheck)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", a.authHandler.Login)
		authGroup.POST("/logout", a.authHandler.Logout)
	}

	admin := router.Group("/admin")
	admin.Use(a.Middleware.Authenticate, a.Middleware.RequireAdmin)
	{
		admin.GET("/users", a.usuarioHandler.List)
		admin.POST("/users", a.usuarioHandler.Create)
		admin.DELETE("/users/:username", a.usuarioHandler.Delete)
	}

	funcoes := router.Group("/funcoes")
	funcoes.Use(a.Middleware.Authenticate)
	{
		funcoes.GET("", a.funcaoHandler.List)
		funcoes.POST("", a.funcaoHandler.Create)
		funcoes.PUT("/:id", a.funcaoHandler.Update)
		funcoes.DELETE("/:id", a.funcaoHandler.Delete)
	}

	atendimentos := router.Group("/atendimentos")
	atendimentos.Use(a.Middleware.Authenticate)
	{
		atendimentos.GET("", a.atendimentoHandler.List)
		atendimentos.POST("", a.atendimentoHandler.Create)
		atendimentos.PUT("/:id", a.atendimentoHandler.Update)
		atendimentos.DELETE("/:id", a.atendimentoHandler.Delete)
	}

	relatorios := router.Group("/relatorios")
	relatorios.Use(a.Middleware.Authenticate)
	{
		relatorios.GET("", a.relatorioHandler.Get)
		relatorios.GET("/export/xlsx", a.relatorioHandler.ExportXLSX)
		relatorios.GET("/export/pdf", a.relatorioHandler.ExportPDF)
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() error {
	return a.DB.Close()
}

// newCache escolhe a implementação de cache conforme a configuração,
// com fallback para memória quando o Redis não está acessível
func newCache(cfg config.CacheConfig, appMetrics *metrics.AppMetrics, logger *zap.Logger) (cache.Cache, error) {
	if !cfg.Enabled || cfg.Type == "noop" {
		return cache.NewNoOpCache(), nil
	}

	if cfg.Type == "redis" && cfg.Redis.Address != "" {
		redisCache, err := cache.NewRedisCache(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, "gestao", appMetrics, logger)
		if err != nil {
			logger.Warn("Redis inacessível, usando cache em memória", zap.Error(err))
		} else {
			return redisCache, nil
		}
	}

	return cache.NewMemoryCache(cfg.TTL, 2*cfg.TTL, appMetrics, logger), nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
