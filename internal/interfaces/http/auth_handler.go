package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hojas/internal/application/auth"
	"github.com/jhoicas/inventario-hojas/internal/application/dto"
)

// AuthHandler emite tokens para el operador.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Token godoc
// @Summary      Obtener token de acceso
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TokenRequest  true  "password del operador"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.IssueToken(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
