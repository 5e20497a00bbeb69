package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-hojas/internal/application/dto"
	"github.com/jhoicas/inventario-hojas/internal/application/usecase"
)

// StockHandler maneja la hoja Stock Actual y sus descargas.
type StockHandler struct {
	query   *usecase.QueryUseCase
	reports *usecase.ReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(query *usecase.QueryUseCase, reports *usecase.ReportUseCase) *StockHandler {
	return &StockHandler{query: query, reports: reports}
}

// Get godoc
// @Summary      Stock actual por producto
// @Description  Recalculado en cada lectura a partir del log de movimientos; el stock puede ser negativo.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	summaries, totals := h.query.Stock()
	return c.JSON(dto.StockResponse{Items: dto.FromSummaries(summaries), Totals: dto.FromTotals(totals)})
}

// ReportPDF godoc
// @Summary      Reporte PDF del stock
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) ReportPDF(c *fiber.Ctx) error {
	out, err := h.reports.StockPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment("stock", "pdf"))
	return c.Send(out)
}

// ExportXML godoc
// @Summary      Exportar las tres hojas (SpreadsheetML)
// @Tags         stock
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/export.xml [get]
func (h *StockHandler) ExportXML(c *fiber.Ctx) error {
	out, err := h.reports.Workbook(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	c.Set(fiber.HeaderContentDisposition, attachment("inventario", "xml"))
	return c.Send(out)
}

func attachment(name, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s-%s.%s"`, name, time.Now().Format("20060102"), ext)
}
