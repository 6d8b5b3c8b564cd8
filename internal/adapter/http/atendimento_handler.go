package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/app/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AtendimentoHandler expõe o livro de atendimentos
type AtendimentoHandler struct {
	sessions *session.Service
	logger   *zap.Logger
}

// NewAtendimentoHandler cria um novo handler de atendimentos
func NewAtendimentoHandler(sessions *session.Service, logger *zap.Logger) *AtendimentoHandler {
	return &AtendimentoHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// AtendimentoRequest são os campos editáveis de um atendimento
type AtendimentoRequest struct {
	Inicio   time.Time `json:"inicio" binding:"required"`
	Termino  time.Time `json:"termino" binding:"required"`
	Funcao   string    `json:"funcao" binding:"required"`
	Paciente string    `json:"paciente" binding:"required"`
	Detalhes string    `json:"detalhes"`
}

func (r AtendimentoRequest) toInput() session.Input {
	return session.Input{
		Inicio:   r.Inicio,
		Termino:  r.Termino,
		Funcao:   r.Funcao,
		Paciente: r.Paciente,
		Detalhes: r.Detalhes,
	}
}

// List devolve os atendimentos visíveis para a identidade autenticada
func (h *AtendimentoHandler) List(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}

	atendimentos, err := h.sessions.List(c.Request.Context(), ident)
	if err != nil {
		h.logger.Error("falha ao listar atendimentos", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"atendimentos": atendimentos})
}

// Create registra um novo atendimento e devolve o valor faturado,
// congelado com a tarifa vigente da função
func (h *AtendimentoHandler) Create(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req AtendimentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	atendimento, err := h.sessions.Create(c.Request.Context(), ident, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Atendimento registrado com sucesso",
		"atendimento": atendimento,
		"valor_total": atendimento.ValorTotal,
	})
}

// Update edita um atendimento, recalculando valor e período
func (h *AtendimentoHandler) Update(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	var req AtendimentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	atendimento, err := h.sessions.Update(c.Request.Context(), ident, id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Atendimento atualizado com sucesso",
		"atendimento": atendimento,
	})
}

// Delete remove um atendimento do livro
func (h *AtendimentoHandler) Delete(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador inválido"})
		return
	}

	if err := h.sessions.Delete(c.Request.Context(), ident, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Atendimento removido com sucesso"})
}
