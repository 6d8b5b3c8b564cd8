// Package identity define a identidade autenticada de uma requisição.
//
// A identidade é construída na autenticação e passada explicitamente a cada
// chamada de componente, em vez de viver em estado global de processo: cada
// requisição carrega a sua e a descarta ao terminar.
package identity

import "github.com/atendsys/gestao-atendimentos/internal/domain/model"

// Identity é quem está executando a requisição atual
type Identity struct {
	Username string     `json:"username"`
	Tipo     model.Tipo `json:"tipo"`
}

// IsAdmin informa se a identidade tem acesso administrativo
func (i Identity) IsAdmin() bool {
	return i.Tipo.IsAdmin()
}
