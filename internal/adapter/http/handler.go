// Package http expõe as operações da aplicação como uma API JSON.
package http

import (
	"errors"
	"net/http"

	"github.com/atendsys/gestao-atendimentos/internal/app/identity"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	"github.com/atendsys/gestao-atendimentos/internal/infra/middleware"
	apperrors "github.com/atendsys/gestao-atendimentos/pkg/errors"
	"github.com/gin-gonic/gin"
)

// respondError traduz erros de domínio e de repositório para o status
// HTTP adequado, sem vazar detalhes internos no corpo
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	switch {
	case errors.Is(err, repository.ErrUsuarioNotFound),
		errors.Is(err, repository.ErrFuncaoNotFound),
		errors.Is(err, repository.ErrAtendimentoNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrUsuarioDuplicado):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Erro interno do servidor"
	}

	c.JSON(status, gin.H{"error": message})
}

// requireIdentity recupera a identidade injetada pelo middleware de
// autenticação, abortando a requisição se ela não estiver presente
func requireIdentity(c *gin.Context) (identity.Identity, bool) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Autenticação necessária"})
	}
	return ident, ok
}
