package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FuncaoRepository implementa repository.FuncaoRepository sobre GORM
type FuncaoRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFuncaoRepository cria um novo repositório de funções
func NewFuncaoRepository(db *gorm.DB, logger *zap.Logger) repository.FuncaoRepository {
	return &FuncaoRepository{db: db, logger: logger}
}

// Create insere uma nova função. A validação de nome e valor acontece no
// serviço antes de chegar aqui.
func (r *FuncaoRepository) Create(ctx context.Context, funcao *model.Funcao) error {
	entity := &model.FuncaoEntity{
		Nome:      funcao.Nome,
		ValorHora: funcao.ValorHora,
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar função", zap.String("nome", funcao.Nome), zap.Error(err))
		return fmt.Errorf("falha ao criar função: %w", err)
	}

	funcao.ID = entity.ID
	return nil
}

// List devolve todas as funções ordenadas por id
func (r *FuncaoRepository) List(ctx context.Context) ([]*model.Funcao, error) {
	var entities []model.FuncaoEntity
	if err := r.db.WithContext(ctx).Order("id").Find(&entities).Error; err != nil {
		r.logger.Error("falha ao listar funções", zap.Error(err))
		return nil, fmt.Errorf("falha ao listar funções: %w", err)
	}

	funcoes := make([]*model.Funcao, 0, len(entities))
	for _, entity := range entities {
		funcoes = append(funcoes, &model.Funcao{
			ID:        entity.ID,
			Nome:      entity.Nome,
			ValorHora: entity.ValorHora,
		})
	}
	return funcoes, nil
}

// GetByNome busca uma função pelo nome atual. O livro de atendimentos usa
// esta consulta no momento do registro para congelar a tarifa vigente.
func (r *FuncaoRepository) GetByNome(ctx context.Context, nome string) (*model.Funcao, error) {
	var entity model.FuncaoEntity
	if err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFuncaoNotFound
		}
		r.logger.Error("falha ao buscar função", zap.String("nome", nome), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar função: %w", err)
	}

	return &model.Funcao{
		ID:        entity.ID,
		Nome:      entity.Nome,
		ValorHora: entity.ValorHora,
	}, nil
}

// Update sobrescreve nome e valor por hora de uma função existente. Não há
// cascata para atendimentos: linhas históricas mantêm o nome antigo.
func (r *FuncaoRepository) Update(ctx context.Context, funcao *model.Funcao) error {
	result := r.db.WithContext(ctx).Model(&model.FuncaoEntity{}).
		Where("id = ?", funcao.ID).
		Updates(map[string]interface{}{
			"nome":       funcao.Nome,
			"valor_hora": funcao.ValorHora,
		})
	if result.Error != nil {
		r.logger.Error("falha ao atualizar função", zap.Int64("id", funcao.ID), zap.Error(result.Error))
		return fmt.Errorf("falha ao atualizar função: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrFuncaoNotFound
	}
	return nil
}

// Delete remove uma função incondicionalmente
func (r *FuncaoRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.FuncaoEntity{}, id)
	if result.Error != nil {
		r.logger.Error("falha ao excluir função", zap.Int64("id", id), zap.Error(result.Error))
		return fmt.Errorf("falha ao excluir função: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrFuncaoNotFound
	}
	return nil
}
