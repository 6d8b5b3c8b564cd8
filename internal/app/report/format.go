package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
)

// MesesPT são os nomes de mês usados em títulos e nomes de arquivo.
// "Marco" fica sem cedilha para não quebrar nomes de arquivo.
var MesesPT = [12]string{
	"Janeiro", "Fevereiro", "Marco", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName devolve o nome do mês (1 a 12) ou string vazia fora da faixa
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MesesPT[month-1]
}

// FormatCurrency formata um valor monetário como "R$ 1,234.56", com
// vírgula agrupando milhares e ponto decimal
func FormatCurrency(valor float64) string {
	s := fmt.Sprintf("%.2f", valor)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, decPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	prefix := "R$ "
	if neg {
		prefix = "R$ -"
	}
	return prefix + b.String() + "." + decPart
}

// FormatTimestamp formata data e hora como dd/mm HH:MM
func FormatTimestamp(t time.Time) string {
	return t.Format("02/01 15:04")
}

// DisplayRow é uma linha do relatório pronta para exibição
type DisplayRow struct {
	ID          int64  `json:"id"`
	Inicio      string `json:"inicio"`
	Termino     string `json:"termino"`
	Funcao      string `json:"funcao"`
	Paciente    string `json:"paciente"`
	Detalhes    string `json:"detalhes"`
	ValorTotal  string `json:"valor_total"`
	Responsavel string `json:"usuario_responsavel"`
	Periodo     string `json:"periodo"`
}

// RenderTable converte atendimentos filtrados em linhas de exibição
func RenderTable(atendimentos []*model.Atendimento) []DisplayRow {
	rows := make([]DisplayRow, 0, len(atendimentos))
	for _, a := range atendimentos {
		rows = append(rows, DisplayRow{
			ID:          a.ID,
			Inicio:      FormatTimestamp(a.Inicio),
			Termino:     FormatTimestamp(a.Termino),
			Funcao:      a.Funcao,
			Paciente:    a.Paciente,
			Detalhes:    a.Detalhes,
			ValorTotal:  FormatCurrency(a.ValorTotal),
			Responsavel: a.Responsavel,
			Periodo:     string(a.Periodo),
		})
	}
	return rows
}
