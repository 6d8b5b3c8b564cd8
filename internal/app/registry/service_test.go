package registry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/app/registry"
	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/mocks"
	"github.com/atendsys/gestao-atendimentos/internal/testutils"
	apperrors "github.com/atendsys/gestao-atendimentos/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateValidaEntrada(t *testing.T) {
	repo := new(mocks.MockFuncaoRepository)
	cache := new(mocks.MockCache)
	svc := registry.NewService(repo, cache, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	t.Run("nome vazio", func(t *testing.T) {
		_, err := svc.Create(ctx, "  ", 50)
		assert.ErrorIs(t, err, apperrors.ErrMissingRequiredField)
	})

	t.Run("valor não positivo", func(t *testing.T) {
		_, err := svc.Create(ctx, "Enfermeiro", 0)
		assert.ErrorIs(t, err, apperrors.ErrMissingRequiredField)

		_, err = svc.Create(ctx, "Enfermeiro", -10)
		assert.ErrorIs(t, err, apperrors.ErrMissingRequiredField)
	})

	repo.AssertNotCalled(t, "Create")
}

func TestCreateInvalidaCache(t *testing.T) {
	repo := new(mocks.MockFuncaoRepository)
	cache := new(mocks.MockCache)
	svc := registry.NewService(repo, cache, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Funcao")).Return(nil).Once()
	cache.On("Delete", mock.Anything, "funcoes").Return(nil).Once()

	funcao, err := svc.Create(ctx, "Enfermeiro", 50)
	require.NoError(t, err)
	assert.Equal(t, "Enfermeiro", funcao.Nome)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestListUsaCache(t *testing.T) {
	repo := new(mocks.MockFuncaoRepository)
	cache := new(mocks.MockCache)
	svc := registry.NewService(repo, cache, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	expected := []*model.Funcao{{ID: 1, Nome: "Enfermeiro", ValorHora: 50}}

	t.Run("cache miss busca no repositório", func(t *testing.T) {
		cache.On("Get", mock.Anything, "funcoes", mock.AnythingOfType("*[]*model.Funcao")).
			Return(false, nil).Once()
		repo.On("List", mock.Anything).Return(expected, nil).Once()
		cache.On("Set", mock.Anything, "funcoes", expected, 5*time.Minute).Return(nil).Once()

		funcoes, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, funcoes)
	})

	t.Run("cache hit não toca o repositório", func(t *testing.T) {
		cache.On("Get", mock.Anything, "funcoes", mock.AnythingOfType("*[]*model.Funcao")).
			Run(func(args mock.Arguments) {
				dest := args.Get(2).(*[]*model.Funcao)
				*dest = expected
			}).
			Return(true, nil).Once()

		funcoes, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, funcoes)
		repo.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("erro do repositório é propagado", func(t *testing.T) {
		expectedErr := errors.New("database error")
		cache.On("Get", mock.Anything, "funcoes", mock.AnythingOfType("*[]*model.Funcao")).
			Return(false, nil).Once()
		repo.On("List", mock.Anything).Return(nil, expectedErr).Once()

		_, err := svc.List(ctx)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestUpdateEDeleteInvalidamCache(t *testing.T) {
	repo := new(mocks.MockFuncaoRepository)
	cache := new(mocks.MockCache)
	svc := registry.NewService(repo, cache, testutils.TestLogger(t))
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Funcao")).Return(nil).Once()
	repo.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	cache.On("Delete", mock.Anything, "funcoes").Return(nil).Twice()

	require.NoError(t, svc.Update(ctx, 1, "Enfermeira", 60))
	require.NoError(t, svc.Delete(ctx, 1))

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
