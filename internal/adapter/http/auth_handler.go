package http

import (
	"net/http"

	"github.com/atendsys/gestao-atendimentos/internal/app/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler expõe as operações de autenticação
type AuthHandler struct {
	authService *auth.AuthService
	logger      *zap.Logger
}

// NewAuthHandler cria um novo handler de autenticação
func NewAuthHandler(authService *auth.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginRequest são as credenciais enviadas no login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login autentica as credenciais e devolve um token JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	token, ident, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"username": ident.Username,
			"tipo":     ident.Tipo,
		},
	})
}

// Logout confirma o encerramento da sessão. O token é stateless, então o
// descarte acontece no cliente; o servidor só reconhece a intenção.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}
