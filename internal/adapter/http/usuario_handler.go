package http

import (
	"net/http"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	"github.com/atendsys/gestao-atendimentos/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UsuarioHandler expõe a administração de usuários, restrita a admins
type UsuarioHandler struct {
	usuarios repository.UsuarioRepository
	logger   *zap.Logger
}

// NewUsuarioHandler cria um novo handler de usuários
func NewUsuarioHandler(usuarios repository.UsuarioRepository, logger *zap.Logger) *UsuarioHandler {
	return &UsuarioHandler{
		usuarios: usuarios,
		logger:   logger,
	}
}

// CreateUsuarioRequest são os dados de cadastro de um usuário
type CreateUsuarioRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Tipo     string `json:"tipo"`
}

// List devolve os usuários cadastrados, sem os hashes de senha
func (h *UsuarioHandler) List(c *gin.Context) {
	usuarios, err := h.usuarios.List(c.Request.Context())
	if err != nil {
		h.logger.Error("falha ao listar usuários", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": usuarios})
}

// Create cadastra um novo usuário comum ou administrador
func (h *UsuarioHandler) Create(c *gin.Context) {
	var req CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	tipo := model.Tipo(req.Tipo)
	if tipo == "" {
		tipo = model.TipoComum
	}
	if tipo != model.TipoAdmin && tipo != model.TipoComum {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de usuário desconhecido"})
		return
	}

	usuario := &model.Usuario{Username: req.Username, Tipo: tipo}
	if err := h.usuarios.Create(c.Request.Context(), usuario, security.HashPassword(req.Password)); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("usuário criado", zap.String("username", usuario.Username), zap.String("tipo", string(tipo)))
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Usuário criado com sucesso",
		"username": usuario.Username,
		"tipo":     usuario.Tipo,
	})
}

// Delete remove um usuário. A conta "admin" de bootstrap não pode ser
// removida para que o sistema nunca fique sem administrador.
func (h *UsuarioHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if username == "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "O usuário admin não pode ser removido"})
		return
	}

	if err := h.usuarios.Delete(c.Request.Context(), username); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("usuário removido", zap.String("username", username))
	c.JSON(http.StatusOK, gin.H{"message": "Usuário removido com sucesso"})
}
