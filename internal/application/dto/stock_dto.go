package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

// StockSummaryResponse fila de la hoja Stock.
type StockSummaryResponse struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	TotalIn      decimal.Decimal `json:"total_in"`
	TotalOut     decimal.Decimal `json:"total_out"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}

// StockTotalsResponse cabecera de totales.
type StockTotalsResponse struct {
	Products     int             `json:"products"`
	TotalIn      decimal.Decimal `json:"total_in"`
	TotalOut     decimal.Decimal `json:"total_out"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	OutOfStock   int             `json:"out_of_stock"`
	LowStock     int             `json:"low_stock"`
}

// StockResponse salida de GET /api/stock.
type StockResponse struct {
	Items  []StockSummaryResponse `json:"items"`
	Totals StockTotalsResponse    `json:"totals"`
}

// StockChangedEvent mensaje publicado por websocket y por el bus de eventos tras cada mutación.
type StockChangedEvent struct {
	Type    string                 `json:"type"`
	Seq     uint64                 `json:"seq"`
	Command string                 `json:"command"`
	At      time.Time              `json:"at"`
	Items   []StockSummaryResponse `json:"items"`
}

// StockChangedType valor de StockChangedEvent.Type.
const StockChangedType = "stock.changed"

// FromSummaries mapea los resúmenes conservando el orden del catálogo.
func FromSummaries(summaries []entity.StockSummary) []StockSummaryResponse {
	out := make([]StockSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, StockSummaryResponse{
			ProductID:    s.ProductID,
			SKU:          s.SKU,
			Name:         s.Name,
			TotalIn:      s.TotalIn,
			TotalOut:     s.TotalOut,
			CurrentStock: s.CurrentStock,
		})
	}
	return out
}

// FromTotals mapea los totales.
func FromTotals(t entity.StockTotals) StockTotalsResponse {
	return StockTotalsResponse{
		Products:     t.Products,
		TotalIn:      t.TotalIn,
		TotalOut:     t.TotalOut,
		CurrentStock: t.CurrentStock,
		OutOfStock:   t.OutOfStock,
		LowStock:     t.LowStock,
	}
}

// NewStockChangedEvent construye el evento a partir del cambio emitido por el Workbook.
func NewStockChangedEvent(change ports.StockChange) StockChangedEvent {
	return StockChangedEvent{
		Type:    StockChangedType,
		Seq:     change.Seq,
		Command: change.Command,
		At:      change.At,
		Items:   FromSummaries(change.Summaries),
	}
}
