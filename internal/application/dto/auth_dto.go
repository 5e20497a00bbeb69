package dto

import "time"

// TokenRequest entrada de POST /api/auth/token (contraseña del operador).
type TokenRequest struct {
	Password string `json:"password"`
}

// TokenResponse salida con token JWT.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
