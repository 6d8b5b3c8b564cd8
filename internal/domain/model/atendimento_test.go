package model_test

import (
	"testing"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestComputePeriodo(t *testing.T) {
	tests := []struct {
		hour     int
		expected model.Periodo
	}{
		{0, model.PeriodoMadrugada},
		{3, model.PeriodoMadrugada},
		{5, model.PeriodoMadrugada},
		{6, model.PeriodoManha}, // fronteira: hora 6 já é manhã
		{9, model.PeriodoManha},
		{11, model.PeriodoManha},
		{12, model.PeriodoTarde},
		{15, model.PeriodoTarde},
		{17, model.PeriodoTarde},
		{18, model.PeriodoNoite}, // fronteira: hora 18 já é noite
		{21, model.PeriodoNoite},
		{23, model.PeriodoNoite},
	}

	for _, tc := range tests {
		inicio := time.Date(2024, 3, 1, tc.hour, 30, 0, 0, time.Local)
		assert.Equal(t, tc.expected, model.ComputePeriodo(inicio), "hora %d", tc.hour)
	}
}

func TestComputePeriodoCobreTodasAsHoras(t *testing.T) {
	// As quatro faixas devem particionar o relógio de 24 horas sem lacunas
	counts := map[model.Periodo]int{}
	for h := 0; h < 24; h++ {
		p := model.ComputePeriodo(time.Date(2024, 1, 1, h, 0, 0, 0, time.Local))
		counts[p]++
	}

	assert.Len(t, counts, 4)
	for periodo, n := range counts {
		assert.Equal(t, 6, n, "faixa %s", periodo)
	}
}

func TestHoras(t *testing.T) {
	a := &model.Atendimento{
		Inicio:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local),
		Termino: time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local),
	}
	assert.InDelta(t, 2.5, a.Horas(), 1e-9)
}

func TestToModelPreencheColunasNulas(t *testing.T) {
	// Linhas gravadas por gerações antigas do esquema voltam com NULL nas
	// colunas adicionadas depois; o modelo deve expor strings vazias.
	e := &model.AtendimentoEntity{
		ID:      1,
		Inicio:  time.Date(2023, 5, 10, 14, 0, 0, 0, time.Local),
		Termino: time.Date(2023, 5, 10, 16, 0, 0, 0, time.Local),
		Funcao:  "Enfermeiro",
	}

	a := e.ToModel()
	assert.Equal(t, "", a.Responsavel)
	assert.Equal(t, "", a.Detalhes)
	assert.Equal(t, "", a.Paciente)
	assert.Equal(t, model.Periodo(""), a.Periodo)
}
