package repository

import (
	"context"
	"errors"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
)

// Erros de repositório
var (
	ErrUsuarioNotFound     = errors.New("usuário não encontrado")
	ErrUsuarioDuplicado    = errors.New("nome de usuário já existe")
	ErrFuncaoNotFound      = errors.New("função não encontrada")
	ErrAtendimentoNotFound = errors.New("atendimento não encontrado")
)

// UsuarioRepository define o acesso a dados de usuários
type UsuarioRepository interface {
	// GetCredenciais devolve o digest de senha armazenado e o tipo do usuário
	GetCredenciais(ctx context.Context, username string) (passwordHash string, tipo model.Tipo, err error)
	Create(ctx context.Context, usuario *model.Usuario, passwordHash string) error
	List(ctx context.Context) ([]*model.Usuario, error)
	Delete(ctx context.Context, username string) error
}

// FuncaoRepository define o acesso a dados de funções
type FuncaoRepository interface {
	Create(ctx context.Context, funcao *model.Funcao) error
	List(ctx context.Context) ([]*model.Funcao, error)
	GetByNome(ctx context.Context, nome string) (*model.Funcao, error)
	Update(ctx context.Context, funcao *model.Funcao) error
	Delete(ctx context.Context, id int64) error
}

// AtendimentoRepository define o acesso a dados de atendimentos
type AtendimentoRepository interface {
	Create(ctx context.Context, atendimento *model.Atendimento) error
	Update(ctx context.Context, atendimento *model.Atendimento) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Atendimento, error)

	// List aplica o único ponto de controle de acesso do livro de
	// atendimentos: administradores enxergam todas as linhas, usuários
	// comuns apenas as próprias.
	List(ctx context.Context, requestingUser string, isAdmin bool) ([]*model.Atendimento, error)
}
