package mocks

import (
	"context"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockUsuarioRepository é um mock para repository.UsuarioRepository
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) GetCredenciais(ctx context.Context, username string) (string, model.Tipo, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Get(1).(model.Tipo), args.Error(2)
}

func (m *MockUsuarioRepository) Create(ctx context.Context, usuario *model.Usuario, passwordHash string) error {
	args := m.Called(ctx, usuario, passwordHash)
	return args.Error(0)
}

func (m *MockUsuarioRepository) List(ctx context.Context) ([]*model.Usuario, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockFuncaoRepository é um mock para repository.FuncaoRepository
type MockFuncaoRepository struct {
	mock.Mock
}

func (m *MockFuncaoRepository) Create(ctx context.Context, funcao *model.Funcao) error {
	args := m.Called(ctx, funcao)
	return args.Error(0)
}

func (m *MockFuncaoRepository) List(ctx context.Context) ([]*model.Funcao, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Funcao), args.Error(1)
}

func (m *MockFuncaoRepository) GetByNome(ctx context.Context, nome string) (*model.Funcao, error) {
	args := m.Called(ctx, nome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Funcao), args.Error(1)
}

func (m *MockFuncaoRepository) Update(ctx context.Context, funcao *model.Funcao) error {
	args := m.Called(ctx, funcao)
	return args.Error(0)
}

func (m *MockFuncaoRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAtendimentoRepository é um mock para repository.AtendimentoRepository
type MockAtendimentoRepository struct {
	mock.Mock
}

func (m *MockAtendimentoRepository) Create(ctx context.Context, atendimento *model.Atendimento) error {
	args := m.Called(ctx, atendimento)
	return args.Error(0)
}

func (m *MockAtendimentoRepository) Update(ctx context.Context, atendimento *model.Atendimento) error {
	args := m.Called(ctx, atendimento)
	return args.Error(0)
}

func (m *MockAtendimentoRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAtendimentoRepository) GetByID(ctx context.Context, id int64) (*model.Atendimento, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Atendimento), args.Error(1)
}

func (m *MockAtendimentoRepository) List(ctx context.Context, requestingUser string, isAdmin bool) ([]*model.Atendimento, error) {
	args := m.Called(ctx, requestingUser, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Atendimento), args.Error(1)
}
