// Package registry implementa o cadastro de funções faturáveis.
package registry

import (
	"context"
	"strings"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	"github.com/atendsys/gestao-atendimentos/pkg/cache"
	apperrors "github.com/atendsys/gestao-atendimentos/pkg/errors"
	"go.uber.org/zap"
)

const (
	cacheKeyFuncoes = "funcoes"
	cacheTTL        = 5 * time.Minute
)

// Service gerencia o cadastro de funções e o respectivo cache
type Service struct {
	repo   repository.FuncaoRepository
	cache  cache.Cache
	logger *zap.Logger
}

// NewService cria um novo serviço de funções
func NewService(repo repository.FuncaoRepository, cache cache.Cache, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Create cadastra uma nova função. Nome vazio ou valor por hora não
// positivo são rejeitados antes de chegar ao repositório.
func (s *Service) Create(ctx context.Context, nome string, valorHora float64) (*model.Funcao, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" || valorHora <= 0 {
		return nil, apperrors.ErrMissingRequiredField
	}

	funcao := &model.Funcao{Nome: nome, ValorHora: valorHora}
	if err := s.repo.Create(ctx, funcao); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return funcao, nil
}

// List devolve as funções cadastradas, servindo do cache quando possível
func (s *Service) List(ctx context.Context) ([]*model.Funcao, error) {
	var funcoes []*model.Funcao

	found, err := s.cache.Get(ctx, cacheKeyFuncoes, &funcoes)
	if err != nil {
		s.logger.Warn("falha ao ler cache de funções", zap.Error(err))
	}
	if found {
		return funcoes, nil
	}

	funcoes, err = s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyFuncoes, funcoes, cacheTTL); err != nil {
		s.logger.Warn("falha ao gravar cache de funções", zap.Error(err))
	}

	return funcoes, nil
}

// Update renomeia e reajusta uma função em vigor. Atendimentos históricos
// que referenciam o nome antigo permanecem intactos.
func (s *Service) Update(ctx context.Context, id int64, nome string, valorHora float64) error {
	nome = strings.TrimSpace(nome)
	if nome == "" || valorHora <= 0 {
		return apperrors.ErrMissingRequiredField
	}

	if err := s.repo.Update(ctx, &model.Funcao{ID: id, Nome: nome, ValorHora: valorHora}); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Delete remove uma função do cadastro, sem cascata para atendimentos
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyFuncoes); err != nil {
		s.logger.Warn("falha ao invalidar cache de funções", zap.Error(err))
	}
}
