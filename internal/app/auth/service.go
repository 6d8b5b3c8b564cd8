package auth

import (
	"context"
	"errors"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/app/identity"
	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/internal/domain/repository"
	apperrors "github.com/atendsys/gestao-atendimentos/pkg/errors"
	"github.com/atendsys/gestao-atendimentos/pkg/security"
	"go.uber.org/zap"
)

// AuthService gerencia operações de autenticação
type AuthService struct {
	keyManager      *security.KeyManager
	usuarios        repository.UsuarioRepository
	tokenExpiration time.Duration
	logger          *zap.Logger
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(keyManager *security.KeyManager, usuarios repository.UsuarioRepository, tokenExpiration time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		keyManager:      keyManager,
		usuarios:        usuarios,
		tokenExpiration: tokenExpiration,
		logger:          logger,
	}
}

// Login autentica um usuário e gera um token JWT.
// Usuário inexistente e senha incorreta retornam o mesmo erro, de propósito:
// a resposta não pode servir para enumerar usuários cadastrados.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, identity.Identity, error) {
	storedHash, tipo, err := s.usuarios.GetCredenciais(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUsuarioNotFound) {
			s.logger.Error("falha ao buscar credenciais", zap.String("username", username), zap.Error(err))
		}
		return "", identity.Identity{}, apperrors.ErrAccessDenied
	}

	if !security.CheckPassword(password, storedHash) {
		s.logger.Warn("falha na autenticação", zap.String("username", username))
		return "", identity.Identity{}, apperrors.ErrAccessDenied
	}

	token, err := s.keyManager.GenerateToken(username, string(tipo), s.tokenExpiration)
	if err != nil {
		s.logger.Error("falha ao gerar token", zap.String("username", username), zap.Error(err))
		return "", identity.Identity{}, err
	}

	ident := identity.Identity{Username: username, Tipo: tipo}
	s.logger.Info("login bem-sucedido", zap.String("username", username), zap.String("tipo", string(tipo)))
	return token, ident, nil
}

// ValidateToken valida um token JWT e devolve a identidade da requisição
func (s *AuthService) ValidateToken(tokenString string) (identity.Identity, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return identity.Identity{}, apperrors.Unauthorized("Token inválido ou expirado", err)
	}

	return identity.Identity{
		Username: claims.Username,
		Tipo:     model.Tipo(claims.Tipo),
	}, nil
}
