package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-hojas/internal/application/dto"
	"github.com/jhoicas/inventario-hojas/internal/application/usecase"
)

// AdvisoryHandler maneja el panel de análisis inteligente.
type AdvisoryHandler struct {
	uc  *usecase.AdvisoryUseCase
	log zerolog.Logger
}

// NewAdvisoryHandler construye el handler.
func NewAdvisoryHandler(uc *usecase.AdvisoryUseCase, log zerolog.Logger) *AdvisoryHandler {
	return &AdvisoryHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Último análisis de IA
// @Tags         advisory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdvisoryResponse
// @Router       /api/advisory [get]
func (h *AdvisoryHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.FromAdvisory(h.uc.Current(), h.uc.IsAnalyzing()))
}

// Analyze godoc
// @Summary      Generar análisis de IA
// @Description  Envía el resumen de stock y los 10 movimientos más recientes al proveedor configurado.
// @Description  Un fallo del proveedor no es error HTTP: el texto fijo de error queda guardado (failed=true).
// @Description  Peticiones simultáneas comparten la misma llamada al proveedor.
// @Tags         advisory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdvisoryResponse
// @Router       /api/advisory [post]
func (h *AdvisoryHandler) Analyze(c *fiber.Ctx) error {
	advisory, err := h.uc.Analyze(c.UserContext())
	if err != nil {
		h.log.Warn().Err(err).Msg("análisis de IA con error; se devuelve el texto fijo")
	}
	return c.JSON(dto.FromAdvisory(advisory, h.uc.IsAnalyzing()))
}
