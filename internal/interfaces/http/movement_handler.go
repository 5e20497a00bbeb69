package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hojas/internal/application/dto"
	"github.com/jhoicas/inventario-hojas/internal/application/inventory"
	"github.com/jhoicas/inventario-hojas/internal/application/usecase"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

// MovementHandler maneja la hoja Movimientos.
type MovementHandler struct {
	exec  CommandExecutor
	query *usecase.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(exec CommandExecutor, query *usecase.QueryUseCase) *MovementHandler {
	return &MovementHandler{exec: exec, query: query}
}

// List godoc
// @Summary      Listar movimientos (más nuevos primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (0 = todos)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	movements, catalog := h.query.Movements()
	start, end := page.Bounds(len(movements))
	items := make([]dto.MovementResponse, 0, end-start)
	for _, m := range movements[start:end] {
		items = append(items, dto.FromMovement(m, catalog))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(movements)},
	})
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Antepone un movimiento del día para el primer producto. Con el catálogo vacío responde 422 CATALOG_EMPTY.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.MovementResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	res, err := h.exec.Execute(c.UserContext(), inventory.AddMovement{})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.response(*res.Movement))
}

// Update godoc
// @Summary      Editar un campo de un movimiento
// @Description  Cantidades no numéricas quedan en 0; negativas se recortan a 0.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateFieldRequest  true  "field: date | product_id | quantity_in | quantity_out | notes"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [patch]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	field := in.Field
	if mapped, ok := dto.MovementFieldNames[field]; ok {
		field = mapped
	}
	res, err := h.exec.Execute(c.UserContext(), inventory.UpdateMovement{
		ID: c.Params("id"), Field: field, Value: string(in.Value),
	})
	if err != nil {
		return writeError(c, err)
	}
	if !res.Changed {
		return notFound(c, "movimiento")
	}
	return c.JSON(h.response(*res.Movement))
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         movements
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.exec.Execute(c.UserContext(), inventory.DeleteMovement{ID: c.Params("id")}); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MovementHandler) response(m entity.Movement) dto.MovementResponse {
	_, catalog := h.query.Movements()
	return dto.FromMovement(m, catalog)
}
