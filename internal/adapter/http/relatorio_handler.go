package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/adapter/export"
	"github.com/atendsys/gestao-atendimentos/internal/app/identity"
	"github.com/atendsys/gestao-atendimentos/internal/app/report"
	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/infra/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// RelatorioHandler expõe o relatório mensal e os seus anexos
type RelatorioHandler struct {
	reports *report.Service
	metrics *metrics.AppMetrics
	logger  *zap.Logger
}

// NewRelatorioHandler cria um novo handler de relatórios
func NewRelatorioHandler(reports *report.Service, appMetrics *metrics.AppMetrics, logger *zap.Logger) *RelatorioHandler {
	return &RelatorioHandler{
		reports: reports,
		metrics: appMetrics,
		logger:  logger,
	}
}

// parseQuery monta a consulta do relatório a partir da query string. Ano e
// mês ausentes caem no mês corrente.
func parseQuery(c *gin.Context) (report.Query, error) {
	now := time.Now()
	q := report.Query{
		Year:    now.Year(),
		Month:   int(now.Month()),
		Funcao:  c.DefaultQuery("funcao", report.FiltroTodasFuncoes),
		Usuario: c.DefaultQuery("usuario", report.FiltroTodosUsuarios),
	}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("ano inválido: %q", raw)
		}
		q.Year = year
	}

	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return q, fmt.Errorf("mês inválido: %q", raw)
		}
		q.Month = month
	}

	return q, nil
}

func (h *RelatorioHandler) build(c *gin.Context) ([]*model.Atendimento, report.Metrics, report.Query, identity.Identity, bool) {
	ident, ok := requireIdentity(c)
	if !ok {
		return nil, report.Metrics{}, report.Query{}, identity.Identity{}, false
	}

	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, report.Metrics{}, report.Query{}, identity.Identity{}, false
	}

	filtrados, agregados, err := h.reports.Build(c.Request.Context(), ident, q)
	if err != nil {
		respondError(c, err)
		return nil, report.Metrics{}, report.Query{}, identity.Identity{}, false
	}

	return filtrados, agregados, q, ident, true
}

// Get devolve os agregados e as linhas de exibição do mês
func (h *RelatorioHandler) Get(c *gin.Context) {
	filtrados, agregados, q, _, ok := h.build(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": agregados,
		"rows":    report.RenderTable(filtrados),
		"month":   report.MonthName(q.Month),
		"year":    q.Year,
	})
}

// ExportXLSX devolve o relatório como planilha anexa
func (h *RelatorioHandler) ExportXLSX(c *gin.Context) {
	filtrados, _, q, _, ok := h.build(c)
	if !ok {
		return
	}

	blob, err := export.XLSX(filtrados)
	if err != nil {
		h.logger.Error("falha ao gerar planilha", zap.Error(err))
		respondError(c, err)
		return
	}

	h.metrics.ReportExported("xlsx")
	sendAttachment(c, export.XLSXFilename(report.MonthName(q.Month)), mimeXLSX, blob)
}

// ExportPDF devolve o relatório como PDF anexo
func (h *RelatorioHandler) ExportPDF(c *gin.Context) {
	filtrados, agregados, q, ident, ok := h.build(c)
	if !ok {
		return
	}

	usuario := q.Usuario
	if !ident.IsAdmin() {
		usuario = ident.Username
	}

	blob, err := export.PDF(filtrados, export.PDFOptions{
		MonthName: report.MonthName(q.Month),
		Year:      q.Year,
		Usuario:   usuario,
		Funcao:    q.Funcao,
		Metrics:   agregados,
	})
	if err != nil {
		h.logger.Error("falha ao gerar PDF", zap.Error(err))
		respondError(c, err)
		return
	}

	h.metrics.ReportExported("pdf")
	sendAttachment(c, export.PDFFilename(report.MonthName(q.Month)), mimePDF, blob)
}

func sendAttachment(c *gin.Context, filename, mime string, blob []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, mime, blob)
}
