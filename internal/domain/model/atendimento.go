package model

import (
	"database/sql"
	"time"
)

// Periodo é a faixa do dia em que o atendimento começou
type Periodo string

const (
	PeriodoMadrugada Periodo = "Madrugada"
	PeriodoManha     Periodo = "Manhã"
	PeriodoTarde     Periodo = "Tarde"
	PeriodoNoite     Periodo = "Noite"
)

// ComputePeriodo classifica a hora de início em uma das quatro faixas do
// dia. As quatro faixas particionam as 24 horas sem lacunas: a hora 6
// pertence à manhã e a hora 18 à noite.
func ComputePeriodo(inicio time.Time) Periodo {
	switch h := inicio.Hour(); {
	case h < 6:
		return PeriodoMadrugada
	case h < 12:
		return PeriodoManha
	case h < 18:
		return PeriodoTarde
	default:
		return PeriodoNoite
	}
}

// Atendimento é um registro de serviço faturável.
//
// Funcao é uma referência de snapshot: guarda o nome da função no momento
// do registro, não uma chave estrangeira. Excluir ou renomear a função
// depois não altera atendimentos já gravados, e ValorTotal permanece
// congelado com a tarifa vigente na criação.
type Atendimento struct {
	ID          int64     `json:"id"`
	Inicio      time.Time `json:"inicio"`
	Termino     time.Time `json:"termino"`
	Funcao      string    `json:"funcao"`
	ValorTotal  float64   `json:"valor_total"`
	Responsavel string    `json:"usuario_responsavel"`
	Detalhes    string    `json:"detalhes"`
	Paciente    string    `json:"paciente"`
	Periodo     Periodo   `json:"periodo"`
}

// Horas devolve a duração do atendimento em horas
func (a *Atendimento) Horas() float64 {
	return a.Termino.Sub(a.Inicio).Seconds() / 3600
}

// AtendimentoEntity é a representação de banco de dados de um atendimento.
// As quatro últimas colunas podem não existir (ou conter NULL) em arquivos
// gravados por gerações anteriores do esquema, por isso são NullString.
type AtendimentoEntity struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Inicio      time.Time      `gorm:"column:inicio"`
	Termino     time.Time      `gorm:"column:termino"`
	Funcao      string         `gorm:"column:funcao;size:100"`
	ValorTotal  float64        `gorm:"column:valor_total"`
	Responsavel sql.NullString `gorm:"column:usuario_responsavel"`
	Detalhes    sql.NullString `gorm:"column:detalhes"`
	Paciente    sql.NullString `gorm:"column:paciente"`
	Periodo     sql.NullString `gorm:"column:periodo"`
}

// TableName define o nome da tabela
func (AtendimentoEntity) TableName() string {
	return "atendimentos"
}

// ToModel converte a entidade para o modelo de domínio, substituindo
// colunas NULL de gerações antigas por strings vazias para que nenhum
// consumidor precise tratar nulos.
func (e *AtendimentoEntity) ToModel() *Atendimento {
	return &Atendimento{
		ID:          e.ID,
		Inicio:      e.Inicio,
		Termino:     e.Termino,
		Funcao:      e.Funcao,
		ValorTotal:  e.ValorTotal,
		Responsavel: e.Responsavel.String,
		Detalhes:    e.Detalhes.String,
		Paciente:    e.Paciente.String,
		Periodo:     Periodo(e.Periodo.String),
	}
}

// FromModel converte o modelo de domínio para a entidade de banco
func FromModel(a *Atendimento) *AtendimentoEntity {
	return &AtendimentoEntity{
		ID:          a.ID,
		Inicio:      a.Inicio,
		Termino:     a.Termino,
		Funcao:      a.Funcao,
		ValorTotal:  a.ValorTotal,
		Responsavel: sql.NullString{String: a.Responsavel, Valid: true},
		Detalhes:    sql.NullString{String: a.Detalhes, Valid: true},
		Paciente:    sql.NullString{String: a.Paciente, Valid: true},
		Periodo:     sql.NullString{String: string(a.Periodo), Valid: true},
	}
}
