package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UsuarioRepository implementa repository.UsuarioRepository sobre GORM
type UsuarioRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUsuarioRepository cria um novo repositório de usuários
func NewUsuarioRepository(db *gorm.DB, logger *zap.Logger) repository.UsuarioRepository {
	return &UsuarioRepository{db: db, logger: logger}
}

// GetCredenciais devolve o digest de senha e o tipo do usuário
func (r *UsuarioRepository) GetCredenciais(ctx context.Context, username string) (string, model.Tipo, error) {
	var entity model.UsuarioEntity
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", repository.ErrUsuarioNotFound
		}
		r.logger.Error("falha ao buscar usuário", zap.String("username", username), zap.Error(err))
		return "", "", fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	return entity.Password, model.Tipo(entity.Tipo), nil
}

// Create insere um novo usuário; conflito de chave primária vira
// ErrUsuarioDuplicado para o chamador tratar como falha recuperável.
func (r *UsuarioRepository) Create(ctx context.Context, usuario *model.Usuario, passwordHash string) error {
	entity := &model.UsuarioEntity{
		Username: usuario.Username,
		Password: passwordHash,
		Tipo:     string(usuario.Tipo),
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return repository.ErrUsuarioDuplicado
		}
		r.logger.Error("falha ao criar usuário", zap.String("username", usuario.Username), zap.Error(err))
		return fmt.Errorf("falha ao criar usuário: %w", err)
	}

	return nil
}

// List devolve os usuários ordenados por username
func (r *UsuarioRepository) List(ctx context.Context) ([]*model.Usuario, error) {
	var entities []model.UsuarioEntity
	if err := r.db.WithContext(ctx).Order("username").Find(&entities).Error; err != nil {
		r.logger.Error("falha ao listar usuários", zap.Error(err))
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}

	usuarios := make([]*model.Usuario, 0, len(entities))
	for _, entity := range entities {
		usuarios = append(usuarios, &model.Usuario{
			Username: entity.Username,
			Tipo:     model.Tipo(entity.Tipo),
		})
	}
	return usuarios, nil
}

// Delete remove um usuário incondicionalmente. A proteção do administrador
// inicial fica na camada HTTP, não aqui.
func (r *UsuarioRepository) Delete(ctx context.Context, username string) error {
	if err := r.db.WithContext(ctx).Where("username = ?", username).Delete(&model.UsuarioEntity{}).Error; err != nil {
		r.logger.Error("falha ao excluir usuário", zap.String("username", username), zap.Error(err))
		return fmt.Errorf("falha ao excluir usuário: %w", err)
	}
	return nil
}

// isUniqueViolation cobre drivers que não traduzem o conflito de chave para
// gorm.ErrDuplicatedKey
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
