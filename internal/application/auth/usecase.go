package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-hojas/internal/application/dto"
	"github.com/jhoicas/inventario-hojas/internal/domain"
	"github.com/jhoicas/inventario-hojas/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret       string
	ExpMinutes   int
	Issuer       string
	PasswordHash string // bcrypt de la contraseña del operador
}

// AuthUseCase emite tokens para el único operador de la aplicación.
type AuthUseCase struct {
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{jwtCfg: jwtCfg}
}

// IssueToken verifica la contraseña contra el hash bcrypt y genera el JWT.
func (uc *AuthUseCase) IssueToken(in dto.TokenRequest) (*dto.TokenResponse, error) {
	if in.Password == "" || uc.jwtCfg.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.jwtCfg.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, expires, err := jwt.Generate(uc.jwtCfg.Secret, jwt.OperatorSubject, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: expires}, nil
}

// HashPassword genera el valor para AUTH_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
