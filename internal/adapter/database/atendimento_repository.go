package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AtendimentoRepository implementa repository.AtendimentoRepository
type AtendimentoRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewAtendimentoRepository cria um novo repositório de atendimentos
func NewAtendimentoRepository(db *gorm.DB, logger *zap.Logger) repository.AtendimentoRepository {
	tracer := otel.GetTracerProvider().Tracer("gestao-atendimentos.repository.atendimento")

	return &AtendimentoRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// Create insere um novo atendimento e devolve o id gerado no modelo
func (r *AtendimentoRepository) Create(ctx context.Context, atendimento *model.Atendimento) error {
	ctx, span := r.tracer.Start(ctx, "AtendimentoRepository.Create",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "atendimentos"),
		),
	)
	defer span.End()

	entity := model.FromModel(atendimento)
	entity.ID = 0 // id é sempre atribuído pelo banco

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar atendimento", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao criar atendimento: %w", err)
	}

	atendimento.ID = entity.ID
	span.SetAttributes(attribute.Int64("atendimento.id", entity.ID))
	span.SetStatus(codes.Ok, "")
	return nil
}

// Update sobrescreve os campos mutáveis de um atendimento. O id e o
// responsável nunca mudam; o serviço garante isso antes de chamar.
func (r *AtendimentoRepository) Update(ctx context.Context, atendimento *model.Atendimento) error {
	ctx, span := r.tracer.Start(ctx, "AtendimentoRepository.Update",
		trace.WithAttributes(
			attribute.String("db.operation", "update"),
			attribute.String("db.table", "atendimentos"),
			attribute.Int64("atendimento.id", atendimento.ID),
		),
	)
	defer span.End()

	result := r.db.WithContext(ctx).Model(&model.AtendimentoEntity{}).
		Where("id = ?", atendimento.ID).
		Updates(map[string]interface{}{
			"inicio":      atendimento.Inicio,
			"termino":     atendimento.Termino,
			"funcao":      atendimento.Funcao,
			"valor_total": atendimento.ValorTotal,
			"detalhes":    atendimento.Detalhes,
			"paciente":    atendimento.Paciente,
			"periodo":     string(atendimento.Periodo),
		})
	if result.Error != nil {
		r.logger.Error("falha ao atualizar atendimento", zap.Int64("id", atendimento.ID), zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao atualizar atendimento: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		span.SetStatus(codes.Error, "not found")
		return repository.ErrAtendimentoNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete remove um atendimento incondicionalmente
func (r *AtendimentoRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(ctx, "AtendimentoRepository.Delete",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "atendimentos"),
			attribute.Int64("atendimento.id", id),
		),
	)
	defer span.End()

	result := r.db.WithContext(ctx).Delete(&model.AtendimentoEntity{}, id)
	if result.Error != nil {
		r.logger.Error("falha ao excluir atendimento", zap.Int64("id", id), zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao excluir atendimento: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		span.SetStatus(codes.Error, "not found")
		return repository.ErrAtendimentoNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetByID busca um atendimento pelo id
func (r *AtendimentoRepository) GetByID(ctx context.Context, id int64) (*model.Atendimento, error) {
	var entity model.AtendimentoEntity
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAtendimentoNotFound
		}
		r.logger.Error("falha ao buscar atendimento", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar atendimento: %w", err)
	}

	return entity.ToModel(), nil
}

// List devolve os atendimentos visíveis para o usuário solicitante.
// Este é o único ponto de controle de acesso do livro de atendimentos e
// alimenta também o motor de relatórios, por isso a regra vive aqui.
func (r *AtendimentoRepository) List(ctx context.Context, requestingUser string, isAdmin bool) ([]*model.Atendimento, error) {
	ctx, span := r.tracer.Start(ctx, "AtendimentoRepository.List",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "atendimentos"),
			attribute.Bool("scope.admin", isAdmin),
		),
	)
	defer span.End()

	query := r.db.WithContext(ctx).Order("id")
	if !isAdmin {
		query = query.Where("usuario_responsavel = ?", requestingUser)
	}

	var entities []model.AtendimentoEntity
	if err := query.Find(&entities).Error; err != nil {
		r.logger.Error("falha ao listar atendimentos", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao listar atendimentos: %w", err)
	}

	atendimentos := make([]*model.Atendimento, 0, len(entities))
	for i := range entities {
		atendimentos = append(atendimentos, entities[i].ToModel())
	}

	span.SetAttributes(attribute.Int("atendimentos.count", len(atendimentos)))
	span.SetStatus(codes.Ok, "")
	return atendimentos, nil
}
