package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hojas/internal/application/dto"
	"github.com/jhoicas/inventario-hojas/internal/application/inventory"
	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/application/usecase"
)

// CommandExecutor aplica comandos sobre el estado (inventory.Workbook).
type CommandExecutor interface {
	Execute(ctx context.Context, cmd inventory.Command) (inventory.Result, error)
}

// ProductHandler maneja la hoja Productos.
type ProductHandler struct {
	exec  CommandExecutor
	query *usecase.QueryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(exec CommandExecutor, query *usecase.QueryUseCase) *ProductHandler {
	return &ProductHandler{exec: exec, query: query}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Filtro por SKU o nombre (sin distinguir tildes)"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items := dto.FromProducts(h.query.Products(c.Query("q")))
	return c.JSON(dto.ProductListResponse{Items: items, Total: len(items)})
}

// Create godoc
// @Summary      Agregar producto
// @Description  Crea un producto con SKU provisional (SKU-NNN) y nombre "Nuevo Producto" al final del catálogo.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ProductResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	res, err := h.exec.Execute(c.UserContext(), inventory.AddProduct{})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(*res.Product))
}

// Update godoc
// @Summary      Editar un campo de un producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateFieldRequest  true  "field: sku | name"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.exec.Execute(c.UserContext(), inventory.UpdateProduct{
		ID: c.Params("id"), Field: in.Field, Value: string(in.Value),
	})
	if err != nil {
		return writeError(c, err)
	}
	if !res.Changed {
		return notFound(c, "producto")
	}
	return c.JSON(dto.FromProduct(*res.Product))
}

// Delete godoc
// @Summary      Eliminar producto y sus movimientos
// @Description  Requiere confirm=true. Sin confirmación responde 428 y no modifica nada.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true  "ID del producto"
// @Param        confirm  query  bool    true  "Confirmación explícita"
// @Success      200  {object}  dto.DeleteProductResponse
// @Success      204
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	confirmed := c.QueryBool("confirm", false)
	confirmer := ports.ConfirmFunc(func(context.Context, string) bool { return confirmed })
	res, err := h.exec.Execute(c.UserContext(), inventory.DeleteProduct{ID: c.Params("id"), Confirmer: confirmer})
	if err != nil {
		return writeError(c, err)
	}
	if !res.Changed {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(dto.DeleteProductResponse{ID: res.Product.ID, DeletedMovements: res.Cascaded})
}
