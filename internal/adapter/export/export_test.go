package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/app/report"
	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func amostra() []*model.Atendimento {
	inicio := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	return []*model.Atendimento{
		{
			ID:          1,
			Inicio:      inicio,
			Termino:     inicio.Add(150 * time.Minute),
			Funcao:      "Enfermeiro",
			ValorTotal:  125,
			Responsavel: "maria",
			Detalhes:    "Plantão diurno",
			Paciente:    "José",
			Periodo:     model.PeriodoManha,
		},
		{
			ID:          2,
			Inicio:      inicio.Add(4 * time.Hour),
			Termino:     inicio.Add(6 * time.Hour),
			Funcao:      "Cuidador",
			ValorTotal:  75,
			Responsavel: "joao",
			Paciente:    "Ana",
			Periodo:     model.PeriodoTarde,
		},
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	blob, err := XLSX(amostra())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{xlsxSheet}, f.GetSheetList())

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, xlsxHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Enfermeiro", rows[1][3])
	assert.Equal(t, "José", rows[1][4])
	assert.Equal(t, "125", rows[1][6])
	assert.Equal(t, "maria", rows[1][7])
	assert.Equal(t, "Manhã", rows[1][8])
}

func TestXLSXVazio(t *testing.T) {
	blob, err := XLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1) // só o cabeçalho
}

func TestPDFGeraDocumentoValido(t *testing.T) {
	blob, err := PDF(amostra(), PDFOptions{
		MonthName: "Marco",
		Year:      2024,
		Usuario:   "Todos",
		Funcao:    "Enfermeiro",
		Metrics:   report.Metrics{ValorTotal: 200, TotalHoras: 4.5, Quantidade: 2},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(blob, []byte("%PDF")))
	assert.Greater(t, len(blob), 1000)
}

func TestPDFMuitasLinhasQuebraPagina(t *testing.T) {
	inicio := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	var muitos []*model.Atendimento
	for i := 0; i < 80; i++ {
		muitos = append(muitos, &model.Atendimento{
			ID:          int64(i + 1),
			Inicio:      inicio,
			Termino:     inicio.Add(time.Hour),
			Funcao:      "Enfermeiro",
			ValorTotal:  50,
			Responsavel: "maria",
			Paciente:    "José",
			Periodo:     model.PeriodoManha,
		})
	}

	blob, err := PDF(muitos, PDFOptions{MonthName: "Marco", Year: 2024, Usuario: "Todos"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(blob, []byte("%PDF")))
}

func TestLatin1Clean(t *testing.T) {
	assert.Equal(t, "Manhã", latin1Clean("Manhã"))
	assert.Equal(t, "caf? ?", latin1Clean("caf́ 世"))
}

func TestTruncate(t *testing.T) {
	longo := strings.Repeat("a", 60)
	assert.Equal(t, strings.Repeat("a", 45)+"...", truncate(longo, 45))
	assert.Equal(t, "curto", truncate("curto", 45))
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "Relatorio_Marco.xlsx", XLSXFilename("Marco"))
	assert.Equal(t, "Relatorio_Marco.pdf", PDFFilename("Marco"))
}
