// Package session implementa o livro de atendimentos: validação, cálculo
// do valor faturado e da faixa do dia, e escopo de leitura por usuário.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/app/identity"
	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	apperrors "github.com/atendsys/gestao-atendimentos/pkg/errors"
	"go.uber.org/zap"
)

// Input são os campos mutáveis de um atendimento
type Input struct {
	Inicio   time.Time
	Termino  time.Time
	Funcao   string
	Detalhes string
	Paciente string
}

// Service gerencia o ciclo de vida dos atendimentos
type Service struct {
	atendimentos repository.AtendimentoRepository
	funcoes      repository.FuncaoRepository
	logger       *zap.Logger
}

// NewService cria um novo serviço de atendimentos
func NewService(atendimentos repository.AtendimentoRepository, funcoes repository.FuncaoRepository, logger *zap.Logger) *Service {
	return &Service{
		atendimentos: atendimentos,
		funcoes:      funcoes,
		logger:       logger,
	}
}

// validate aplica as regras comuns a criação e edição e devolve a função
// vigente, cuja tarifa será congelada no registro.
func (s *Service) validate(ctx context.Context, in Input) (*model.Funcao, error) {
	if !in.Termino.After(in.Inicio) {
		return nil, apperrors.ErrInvalidRange
	}
	if strings.TrimSpace(in.Paciente) == "" {
		return nil, apperrors.UnprocessableEntity("o nome do paciente é obrigatório", apperrors.ErrMissingRequiredField)
	}
	if strings.TrimSpace(in.Funcao) == "" {
		return nil, apperrors.UnprocessableEntity("a função é obrigatória", apperrors.ErrMissingRequiredField)
	}

	// A tarifa é buscada pelo nome no momento da chamada; se a função foi
	// excluída ou renomeada desde que o formulário carregou, a operação
	// falha e o chamador precisa recarregar a lista de funções.
	funcao, err := s.funcoes.GetByNome(ctx, in.Funcao)
	if err != nil {
		if errors.Is(err, repository.ErrFuncaoNotFound) {
			return nil, apperrors.UnprocessableEntity("função não cadastrada", apperrors.ErrMissingRequiredField)
		}
		return nil, err
	}

	return funcao, nil
}

// Create registra um atendimento e devolve o valor total calculado.
// O valor fica congelado com a tarifa vigente agora: reajustes futuros da
// função não recalculam registros históricos.
func (s *Service) Create(ctx context.Context, ident identity.Identity, in Input) (*model.Atendimento, error) {
	funcao, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	horas := in.Termino.Sub(in.Inicio).Seconds() / 3600
	atendimento := &model.Atendimento{
		Inicio:      in.Inicio,
		Termino:     in.Termino,
		Funcao:      funcao.Nome,
		ValorTotal:  horas * funcao.ValorHora,
		Responsavel: ident.Username,
		Detalhes:    strings.TrimSpace(in.Detalhes),
		Paciente:    strings.TrimSpace(in.Paciente),
		Periodo:     model.ComputePeriodo(in.Inicio),
	}

	if err := s.atendimentos.Create(ctx, atendimento); err != nil {
		return nil, err
	}

	s.logger.Info("atendimento registrado",
		zap.Int64("id", atendimento.ID),
		zap.String("responsavel", ident.Username),
		zap.Float64("valor_total", atendimento.ValorTotal))
	return atendimento, nil
}

// Update reedita um atendimento recalculando valor e faixa do dia.
// O id e o responsável são imutáveis; usuários comuns só editam as
// próprias linhas.
func (s *Service) Update(ctx context.Context, ident identity.Identity, id int64, in Input) (*model.Atendimento, error) {
	existing, err := s.atendimentos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.IsAdmin() && existing.Responsavel != ident.Username {
		return nil, apperrors.ErrForbidden
	}

	funcao, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	horas := in.Termino.Sub(in.Inicio).Seconds() / 3600
	atendimento := &model.Atendimento{
		ID:          id,
		Inicio:      in.Inicio,
		Termino:     in.Termino,
		Funcao:      funcao.Nome,
		ValorTotal:  horas * funcao.ValorHora,
		Responsavel: existing.Responsavel,
		Detalhes:    strings.TrimSpace(in.Detalhes),
		Paciente:    strings.TrimSpace(in.Paciente),
		Periodo:     model.ComputePeriodo(in.Inicio),
	}

	if err := s.atendimentos.Update(ctx, atendimento); err != nil {
		return nil, err
	}
	return atendimento, nil
}

// Delete exclui um atendimento; usuários comuns só excluem os próprios
func (s *Service) Delete(ctx context.Context, ident identity.Identity, id int64) error {
	existing, err := s.atendimentos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !ident.IsAdmin() && existing.Responsavel != ident.Username {
		return apperrors.ErrForbidden
	}

	return s.atendimentos.Delete(ctx, id)
}

// List devolve os atendimentos visíveis para a identidade solicitante
func (s *Service) List(ctx context.Context, ident identity.Identity) ([]*model.Atendimento, error) {
	return s.atendimentos.List(ctx, ident.Username, ident.IsAdmin())
}
