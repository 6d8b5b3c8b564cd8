package middleware

import (
	"net/http"
	"strings"

	"github.com/atendsys/gestao-atendimentos/internal/app/auth"
	"github.com/atendsys/gestao-atendimentos/internal/app/identity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// identityKey é a chave da identidade da requisição no contexto do gin
const identityKey = "identity"

// AuthMiddleware gerencia middlewares de autenticação
type AuthMiddleware struct {
	authService *auth.AuthService
	logger      *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(authService *auth.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Authenticate valida o token Bearer e injeta a identidade no contexto
// da requisição. Nenhum estado de sessão é mantido no servidor.
func (m *AuthMiddleware) Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header não fornecido"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato inválido do token"})
		return
	}

	ident, err := m.authService.ValidateToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
		return
	}

	c.Set(identityKey, ident)
	c.Next()
}

// RequireAdmin exige que a identidade já autenticada seja de administrador
func (m *AuthMiddleware) RequireAdmin(c *gin.Context) {
	ident, ok := IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Falha ao obter informações do usuário"})
		return
	}

	if !ident.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado: permissão de administrador necessária"})
		return
	}

	c.Next()
}

// IdentityFrom extrai a identidade autenticada do contexto do gin
func IdentityFrom(c *gin.Context) (identity.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return identity.Identity{}, false
	}
	ident, ok := value.(identity.Identity)
	return ident, ok
}
