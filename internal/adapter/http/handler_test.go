package http_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/app"
	"github.com/atendsys/gestao-atendimentos/internal/testutils"
	"github.com/atendsys/gestao-atendimentos/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
			// uma única conexão para todas as consultas enxergarem o
			// mesmo banco em memória
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "silent",
			SlowThreshold:   time.Second,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     time.Minute,
		},
		Auth: config.AuthConfig{
			JWTSecret:       "chave-de-teste-com-32-caracteres!!",
			TokenExpiration: time.Hour,
		},
		Bootstrap: config.BootstrapConfig{
			AdminUsername: "admin",
			AdminPassword: "admin123",
		},
	}

	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	application, err := app.NewApp(ctx, cfg, testutils.TestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	router := testutils.SetupTestRouter(t)
	application.RegisterRoutes(router)
	return router
}

func login(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/login",
		map[string]string{"username": username, "password": password}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body struct {
		Token string `json:"token"`
	}
	testutils.ParseResponse(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestLoginEToken(t *testing.T) {
	router := setupApp(t)

	t.Run("credenciais válidas", func(t *testing.T) {
		login(t, router, "admin", "admin123")
	})

	t.Run("senha incorreta", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/login",
			map[string]string{"username": "admin", "password": "errada"}, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("sem token", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet, "/funcoes", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("logout", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/auth/logout", nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	})
}

func TestAdministracaoDeUsuarios(t *testing.T) {
	router := setupApp(t)
	adminToken := login(t, router, "admin", "admin123")

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/admin/users",
		map[string]string{"username": "maria", "password": "senha123", "tipo": "comum"},
		bearer(adminToken))
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	t.Run("usuário duplicado", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/admin/users",
			map[string]string{"username": "maria", "password": "outra", "tipo": "comum"},
			bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusConflict)
	})

	t.Run("usuário comum não administra", func(t *testing.T) {
		mariaToken := login(t, router, "maria", "senha123")
		resp := testutils.MakeRequest(t, router, http.MethodGet, "/admin/users", nil, bearer(mariaToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	})

	t.Run("admin de bootstrap não pode ser removido", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/admin/users/admin", nil, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	})

	t.Run("remoção de usuário comum", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodDelete, "/admin/users/maria", nil, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	})
}

func criaFuncao(t *testing.T, router *gin.Engine, token, nome string, valorHora float64) {
	t.Helper()
	resp := testutils.MakeRequest(t, router, http.MethodPost, "/funcoes",
		map[string]interface{}{"nome": nome, "valor_hora": valorHora}, bearer(token))
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
}

func TestCicloDeAtendimento(t *testing.T) {
	router := setupApp(t)
	adminToken := login(t, router, "admin", "admin123")
	criaFuncao(t, router, adminToken, "Enfermeiro", 50)

	inicio := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)

	t.Run("criação devolve valor congelado", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/atendimentos",
			map[string]interface{}{
				"inicio":   inicio.Format(time.RFC3339),
				"termino":  inicio.Add(150 * time.Minute).Format(time.RFC3339),
				"funcao":   "Enfermeiro",
				"paciente": "José",
				"detalhes": "Plantão diurno",
			}, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

		var body struct {
			ValorTotal float64 `json:"valor_total"`
		}
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, 125.0, body.ValorTotal)
	})

	t.Run("intervalo inválido é rejeitado", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/atendimentos",
			map[string]interface{}{
				"inicio":   inicio.Format(time.RFC3339),
				"termino":  inicio.Add(-time.Hour).Format(time.RFC3339),
				"funcao":   "Enfermeiro",
				"paciente": "José",
			}, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusUnprocessableEntity)
	})

	t.Run("função não cadastrada é rejeitada", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/atendimentos",
			map[string]interface{}{
				"inicio":   inicio.Format(time.RFC3339),
				"termino":  inicio.Add(time.Hour).Format(time.RFC3339),
				"funcao":   "Fisioterapeuta",
				"paciente": "José",
			}, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusUnprocessableEntity)
	})

	t.Run("listagem", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet, "/atendimentos", nil, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body struct {
			Atendimentos []struct {
				ID      int64  `json:"id"`
				Periodo string `json:"periodo"`
			} `json:"atendimentos"`
		}
		testutils.ParseResponse(t, resp, &body)
		require.Len(t, body.Atendimentos, 1)
		assert.Equal(t, "Manhã", body.Atendimentos[0].Periodo)
	})
}

func TestEscopoPorUsuario(t *testing.T) {
	router := setupApp(t)
	adminToken := login(t, router, "admin", "admin123")
	criaFuncao(t, router, adminToken, "Cuidador", 30)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/admin/users",
		map[string]string{"username": "maria", "password": "senha123", "tipo": "comum"},
		bearer(adminToken))
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	mariaToken := login(t, router, "maria", "senha123")

	inicio := time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)
	for _, token := range []string{adminToken, mariaToken} {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/atendimentos",
			map[string]interface{}{
				"inicio":   inicio.Format(time.RFC3339),
				"termino":  inicio.Add(time.Hour).Format(time.RFC3339),
				"funcao":   "Cuidador",
				"paciente": "Ana",
			}, bearer(token))
		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	}

	var body struct {
		Atendimentos []struct {
			Responsavel string `json:"usuario_responsavel"`
		} `json:"atendimentos"`
	}

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/atendimentos", nil, bearer(mariaToken))
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	testutils.ParseResponse(t, resp, &body)
	require.Len(t, body.Atendimentos, 1)
	assert.Equal(t, "maria", body.Atendimentos[0].Responsavel)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/atendimentos", nil, bearer(adminToken))
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	testutils.ParseResponse(t, resp, &body)
	assert.Len(t, body.Atendimentos, 2)
}

func TestRelatorios(t *testing.T) {
	router := setupApp(t)
	adminToken := login(t, router, "admin", "admin123")
	criaFuncao(t, router, adminToken, "Enfermeiro", 50)

	casos := []struct {
		inicio time.Time
		horas  time.Duration
	}{
		{time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local), 150 * time.Minute},
		{time.Date(2024, 3, 12, 14, 0, 0, 0, time.Local), 90 * time.Minute},
		{time.Date(2024, 4, 2, 8, 0, 0, 0, time.Local), 60 * time.Minute},
	}
	for _, caso := range casos {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/atendimentos",
			map[string]interface{}{
				"inicio":   caso.inicio.Format(time.RFC3339),
				"termino":  caso.inicio.Add(caso.horas).Format(time.RFC3339),
				"funcao":   "Enfermeiro",
				"paciente": "José",
			}, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	}

	t.Run("agregados do mês", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet,
			"/relatorios?year=2024&month=3", nil, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var body struct {
			Metrics struct {
				ValorTotal float64 `json:"valor_total"`
				TotalHoras float64 `json:"total_horas"`
				Quantidade int     `json:"quantidade"`
			} `json:"metrics"`
			Rows  []map[string]interface{} `json:"rows"`
			Month string                   `json:"month"`
		}
		testutils.ParseResponse(t, resp, &body)
		assert.Equal(t, 200.0, body.Metrics.ValorTotal)
		assert.InDelta(t, 4.0, body.Metrics.TotalHoras, 1e-9)
		assert.Equal(t, 2, body.Metrics.Quantidade)
		assert.Len(t, body.Rows, 2)
		assert.Equal(t, "Marco", body.Month)
	})

	t.Run("mês inválido", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet,
			"/relatorios?year=2024&month=13", nil, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("anexo xlsx", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet,
			"/relatorios/export/xlsx?year=2024&month=3", nil, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
		assert.Contains(t, resp.Header().Get("Content-Disposition"), "Relatorio_Marco.xlsx")
		assert.NotZero(t, resp.Body.Len())
	})

	t.Run("anexo pdf", func(t *testing.T) {
		resp := testutils.MakeRequest(t, router, http.MethodGet,
			"/relatorios/export/pdf?year=2024&month=3", nil, bearer(adminToken))
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
		assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
		assert.Contains(t, resp.Header().Get("Content-Disposition"), "Relatorio_Marco.pdf")
		assert.True(t, strings.HasPrefix(resp.Body.String(), "%PDF"))
	})
}

func TestHealthEMetrics(t *testing.T) {
	router := setupApp(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/health", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body struct {
		Status string `json:"status"`
	}
	testutils.ParseResponse(t, resp, &body)
	assert.Equal(t, "UP", body.Status)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/metrics", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "atendimentos_requests_total")

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/health/liveness", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	reqID := resp.Header().Get("X-Request-ID")
	assert.NotEmpty(t, reqID, fmt.Sprintf("cabeçalho de correlação ausente: %v", resp.Header()))
}
