// Package report filtra e agrega atendimentos para os relatórios mensais.
package report

import (
	"context"

	"github.com/atendsys/gestao-atendimentos/internal/app/identity"
	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	"go.uber.org/zap"
)

// Valores de filtro que desativam a respectiva dimensão
const (
	FiltroTodasFuncoes  = "Todas"
	FiltroTodosUsuarios = "Todos"
)

// Metrics são os agregados exibidos no topo do relatório
type Metrics struct {
	ValorTotal float64 `json:"valor_total"`
	TotalHoras float64 `json:"total_horas"`
	Quantidade int     `json:"quantidade"`
}

// Service monta relatórios mensais a partir do livro de atendimentos
type Service struct {
	atendimentos repository.AtendimentoRepository
	logger       *zap.Logger
}

// NewService cria um novo serviço de relatórios
func NewService(atendimentos repository.AtendimentoRepository, logger *zap.Logger) *Service {
	return &Service{
		atendimentos: atendimentos,
		logger:       logger,
	}
}

// Query são os parâmetros de um relatório mensal
type Query struct {
	Year    int
	Month   int
	Funcao  string
	Usuario string
}

// Build lista os atendimentos visíveis para a identidade, aplica os
// filtros e devolve as linhas filtradas com os agregados. O filtro por
// usuário só tem efeito para administradores: para usuários comuns o
// repositório já restringe ao próprio responsável.
func (s *Service) Build(ctx context.Context, ident identity.Identity, q Query) ([]*model.Atendimento, Metrics, error) {
	todos, err := s.atendimentos.List(ctx, ident.Username, ident.IsAdmin())
	if err != nil {
		s.logger.Error("falha ao listar atendimentos para relatório", zap.Error(err))
		return nil, Metrics{}, err
	}

	if !ident.IsAdmin() {
		q.Usuario = FiltroTodosUsuarios
	}

	filtrados := Filter(todos, q)
	return filtrados, Aggregate(filtrados), nil
}

// Filter seleciona os atendimentos do mês. A pertinência ao mês é dada
// pelo ano e mês civis do início: um atendimento que atravessa a meia
// noite para o mês seguinte pertence ao mês em que começou.
func Filter(atendimentos []*model.Atendimento, q Query) []*model.Atendimento {
	filtrados := make([]*model.Atendimento, 0, len(atendimentos))
	for _, a := range atendimentos {
		if a.Inicio.Year() != q.Year || int(a.Inicio.Month()) != q.Month {
			continue
		}
		if q.Funcao != "" && q.Funcao != FiltroTodasFuncoes && a.Funcao != q.Funcao {
			continue
		}
		if q.Usuario != "" && q.Usuario != FiltroTodosUsuarios && a.Responsavel != q.Usuario {
			continue
		}
		filtrados = append(filtrados, a)
	}
	return filtrados
}

// Aggregate calcula os agregados do relatório. As horas são sempre
// recalculadas a partir de término menos início, nunca lidas de um campo
// armazenado.
func Aggregate(atendimentos []*model.Atendimento) Metrics {
	var m Metrics
	for _, a := range atendimentos {
		m.ValorTotal += a.ValorTotal
		m.TotalHoras += a.Horas()
	}
	m.Quantidade = len(atendimentos)
	return m
}
