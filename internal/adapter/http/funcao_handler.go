package http

import (
	"net/http"
	"strconv"

	"github.com/atendsys/gestao-atendimentos/internal/app/registry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FuncaoHandler expõe o cadastro de funções faturáveis
type FuncaoHandler struct {
	registry *registry.Service
	logger   *zap.Logger
}

// NewFuncaoHandler cria um novo handler de funções
func NewFuncaoHandler(registry *registry.Service, logger *zap.Logger) *FuncaoHandler {
	return &FuncaoHandler{
		registry: registry,
		logger:   logger,
	}
}

// FuncaoRequest são os dados de cadastro ou edição de uma função
type FuncaoRequest struct {
	Nome      string  `json:"nome" binding:"required"`
	ValorHora float64 `json:"valor_hora" binding:"required"`
}

// List devolve as funções cadastradas
func (h *FuncaoHandler) List(c *gin.Context) {
	funcoes, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.logger.Error("falha ao listar funções", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"funcoes": funcoes})
}

// Create cadastra uma nova função
func (h *FuncaoHandler) Create(c *gin.Context) {
	var req FuncaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	funcao, err := h.registry.Create(c.Request.Context(), req.Nome, req.ValorHora)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, funcao)
}

// Update renomeia ou reajusta uma função existente
func (h *FuncaoHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	var req FuncaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	if err := h.registry.Update(c.Request.Context(), id, req.Nome, req.ValorHora); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Função atualizada com sucesso"})
}

// Delete remove uma função do cadastro. Atendimentos históricos que a
// referenciam permanecem intactos.
func (h *FuncaoHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	if err := h.registry.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Função removida com sucesso"})
}
