package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/atendsys/gestao-atendimentos/internal/app/report"
	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/go-pdf/fpdf"
)

// pdfColumn descreve uma coluna da tabela do PDF
type pdfColumn struct {
	Titulo  string
	Largura float64
	Valor   func(a *model.Atendimento) string
}

const maxTextoCelula = 45

// pdfLayout é o layout de nove colunas da tabela. Tirando as colunas de
// paciente e período obtém-se o layout de sete colunas dos relatórios
// mais antigos, por isso o layout é dado, não fixo no laço de desenho.
var pdfLayout = []pdfColumn{
	{"ID", 10, func(a *model.Atendimento) string { return fmt.Sprintf("%d", a.ID) }},
	{"Inicio", 22, func(a *model.Atendimento) string { return report.FormatTimestamp(a.Inicio) }},
	{"Termino", 22, func(a *model.Atendimento) string { return report.FormatTimestamp(a.Termino) }},
	{"Funcao", 30, func(a *model.Atendimento) string { return a.Funcao }},
	{"Paciente", 40, func(a *model.Atendimento) string { return truncate(a.Paciente, maxTextoCelula) }},
	{"Detalhamento", 65, func(a *model.Atendimento) string { return truncate(a.Detalhes, maxTextoCelula) }},
	{"Valor", 25, func(a *model.Atendimento) string { return report.FormatCurrency(a.ValorTotal) }},
	{"Resp.", 33, func(a *model.Atendimento) string { return a.Responsavel }},
	{"Periodo", 24, func(a *model.Atendimento) string { return string(a.Periodo) }},
}

// PDFOptions parametriza o cabeçalho e o sumário do relatório em PDF
type PDFOptions struct {
	MonthName string
	Year      int
	Usuario   string
	Funcao    string
	Metrics   report.Metrics
}

// PDF desenha o relatório mensal em A4 paisagem, com faixa de título,
// sumário sombreado, tabela com linhas alternadas e rodapé numerado
func PDF(atendimentos []*model.Atendimento, opts PDFOptions) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	clean := func(s string) string { return tr(latin1Clean(s)) }
	pdf.SetMargins(10, 30, 10)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(77, 166, 255)
		pdf.Rect(0, 0, 297, 25, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 15)
		pdf.SetXY(10, 8)
		pdf.CellFormat(277, 10, "Relatorio de Atendimentos", "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		rodape := fmt.Sprintf("Pagina %d/{nb} - Sistema de Gestao", pdf.PageNo())
		pdf.CellFormat(0, 10, rodape, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	subtitulo := fmt.Sprintf("Periodo: %s / %d - Usuario: %s", opts.MonthName, opts.Year, opts.Usuario)
	if opts.Funcao != "" && opts.Funcao != report.FiltroTodasFuncoes {
		subtitulo += fmt.Sprintf(" - Funcao: %s", opts.Funcao)
	}
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, clean(subtitulo), "", 1, "L", false, 0, "")

	// faixa de sumário com os três agregados
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(10, 38, 277, 20, "F")
	pdf.SetXY(14, 42)
	pdf.SetFont("Arial", "B", 10)
	sumario := fmt.Sprintf("Valor total: %s    Horas: %.2f    Atendimentos: %d",
		report.FormatCurrency(opts.Metrics.ValorTotal), opts.Metrics.TotalHoras, opts.Metrics.Quantidade)
	pdf.CellFormat(269, 12, clean(sumario), "", 1, "L", false, 0, "")
	pdf.SetY(62)

	drawTableHeader(pdf)

	pdf.SetFont("Arial", "", 8)
	for i, a := range atendimentos {
		if pdf.GetY() > 180 {
			pdf.AddPage()
			pdf.SetY(30)
			drawTableHeader(pdf)
			pdf.SetFont("Arial", "", 8)
		}

		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for _, col := range pdfLayout {
			pdf.CellFormat(col.Largura, 7, clean(col.Valor(a)), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFillColor(200, 220, 255)
	pdf.SetFont("Arial", "B", 9)
	for _, col := range pdfLayout {
		pdf.CellFormat(col.Largura, 8, col.Titulo, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// latin1Clean substitui caracteres fora do latin-1 por '?', já que as
// fontes padrão do PDF só cobrem essa faixa
func latin1Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 256 {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// PDFFilename monta o nome do anexo, por exemplo Relatorio_Marco.pdf
func PDFFilename(monthName string) string {
	return fmt.Sprintf("Relatorio_%s.pdf", monthName)
}
