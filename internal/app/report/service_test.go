package report_test

import (
	"testing"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/app/identity"
	"github.com/atendsys/gestao-atendimentos/internal/app/report"
	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/mocks"
	"github.com/atendsys/gestao-atendimentos/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func atendimento(id int64, inicio, termino time.Time, funcao, responsavel string, valor float64) *model.Atendimento {
	return &model.Atendimento{
		ID:          id,
		Inicio:      inicio,
		Termino:     termino,
		Funcao:      funcao,
		ValorTotal:  valor,
		Responsavel: responsavel,
		Paciente:    "José",
		Periodo:     model.ComputePeriodo(inicio),
	}
}

func TestFilterPorMesDoInicio(t *testing.T) {
	marco := atendimento(1,
		time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local),
		time.Date(2024, 3, 10, 10, 0, 0, 0, time.Local),
		"Enfermeiro", "maria", 100)
	viradaDeMes := atendimento(2,
		time.Date(2024, 3, 31, 23, 0, 0, 0, time.Local),
		time.Date(2024, 4, 1, 1, 0, 0, 0, time.Local),
		"Enfermeiro", "maria", 100)
	abril := atendimento(3,
		time.Date(2024, 4, 2, 8, 0, 0, 0, time.Local),
		time.Date(2024, 4, 2, 9, 0, 0, 0, time.Local),
		"Enfermeiro", "maria", 50)
	todos := []*model.Atendimento{marco, viradaDeMes, abril}

	// o atendimento que atravessa a meia-noite pertence ao mês do início
	filtrados := report.Filter(todos, report.Query{Year: 2024, Month: 3})
	require.Len(t, filtrados, 2)
	assert.Equal(t, int64(1), filtrados[0].ID)
	assert.Equal(t, int64(2), filtrados[1].ID)

	filtrados = report.Filter(todos, report.Query{Year: 2024, Month: 4})
	require.Len(t, filtrados, 1)
	assert.Equal(t, int64(3), filtrados[0].ID)
}

func TestFilterPorFuncaoEUsuario(t *testing.T) {
	inicio := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	termino := inicio.Add(2 * time.Hour)
	todos := []*model.Atendimento{
		atendimento(1, inicio, termino, "Enfermeiro", "maria", 100),
		atendimento(2, inicio, termino, "Cuidador", "maria", 60),
		atendimento(3, inicio, termino, "Enfermeiro", "joao", 100),
	}

	filtrados := report.Filter(todos, report.Query{Year: 2024, Month: 3, Funcao: "Cuidador"})
	require.Len(t, filtrados, 1)
	assert.Equal(t, int64(2), filtrados[0].ID)

	filtrados = report.Filter(todos, report.Query{Year: 2024, Month: 3, Usuario: "joao"})
	require.Len(t, filtrados, 1)
	assert.Equal(t, int64(3), filtrados[0].ID)

	// "Todas" e "Todos" desativam as dimensões
	filtrados = report.Filter(todos, report.Query{
		Year: 2024, Month: 3,
		Funcao:  report.FiltroTodasFuncoes,
		Usuario: report.FiltroTodosUsuarios,
	})
	assert.Len(t, filtrados, 3)
}

func TestAggregateRecalculaHoras(t *testing.T) {
	todos := []*model.Atendimento{
		atendimento(1,
			time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local),
			time.Date(2024, 3, 10, 10, 30, 0, 0, time.Local),
			"Enfermeiro", "maria", 125),
		atendimento(2,
			time.Date(2024, 3, 12, 14, 0, 0, 0, time.Local),
			time.Date(2024, 3, 12, 15, 30, 0, 0, time.Local),
			"Cuidador", "maria", 75),
	}

	m := report.Aggregate(todos)
	assert.Equal(t, 200.0, m.ValorTotal)
	assert.InDelta(t, 4.0, m.TotalHoras, 1e-9)
	assert.Equal(t, 2, m.Quantidade)
}

func TestAggregateVazio(t *testing.T) {
	m := report.Aggregate(nil)
	assert.Zero(t, m.ValorTotal)
	assert.Zero(t, m.TotalHoras)
	assert.Zero(t, m.Quantidade)
}

func TestBuildIgnoraFiltroDeUsuarioParaNaoAdmin(t *testing.T) {
	repo := new(mocks.MockAtendimentoRepository)
	svc := report.NewService(repo, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	inicio := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	visiveis := []*model.Atendimento{
		atendimento(1, inicio, inicio.Add(time.Hour), "Enfermeiro", "maria", 50),
	}
	repo.On("List", mock.Anything, "maria", false).Return(visiveis, nil).Once()

	maria := identity.Identity{Username: "maria", Tipo: model.TipoComum}
	filtrados, m, err := svc.Build(ctx, maria, report.Query{
		Year: 2024, Month: 3,
		Usuario: "joao", // ignorado: a dimensão de usuário é só para admin
	})
	require.NoError(t, err)
	assert.Len(t, filtrados, 1)
	assert.Equal(t, 1, m.Quantidade)
}

func TestFormatCurrency(t *testing.T) {
	casos := map[float64]string{
		0:        "R$ 0.00",
		125:      "R$ 125.00",
		1234.56:  "R$ 1,234.56",
		1234567:  "R$ 1,234,567.00",
		-1234.56: "R$ -1,234.56",
	}
	for valor, esperado := range casos {
		assert.Equal(t, esperado, report.FormatCurrency(valor))
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 10, 8, 5, 0, 0, time.Local)
	assert.Equal(t, "10/03 08:05", report.FormatTimestamp(ts))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Janeiro", report.MonthName(1))
	assert.Equal(t, "Marco", report.MonthName(3))
	assert.Equal(t, "Dezembro", report.MonthName(12))
	assert.Empty(t, report.MonthName(0))
	assert.Empty(t, report.MonthName(13))
}

func TestRenderTable(t *testing.T) {
	a := atendimento(7,
		time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local),
		time.Date(2024, 3, 10, 10, 30, 0, 0, time.Local),
		"Enfermeiro", "maria", 125)
	a.Detalhes = "Plantão diurno"

	rows := report.RenderTable([]*model.Atendimento{a})
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].ID)
	assert.Equal(t, "10/03 08:00", rows[0].Inicio)
	assert.Equal(t, "10/03 10:30", rows[0].Termino)
	assert.Equal(t, "R$ 125.00", rows[0].ValorTotal)
	assert.Equal(t, "Manhã", rows[0].Periodo)
}
