package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

// MovementResponse salida de un movimiento (fila de la hoja Movimientos).
// ProductSKU y ProductName quedan vacíos si el producto ya no existe.
type MovementResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	ProductID   string          `json:"product_id"`
	ProductSKU  string          `json:"product_sku,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	QuantityIn  decimal.Decimal `json:"quantity_in"`
	QuantityOut decimal.Decimal `json:"quantity_out"`
	Notes       string          `json:"notes"`
}

// MovementListResponse log de movimientos, del más nuevo al más antiguo.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// FromMovement mapea la entidad enriqueciendo con los datos del producto.
func FromMovement(m entity.Movement, catalog map[string]entity.Product) MovementResponse {
	out := MovementResponse{
		ID:          m.ID,
		Date:        m.Date,
		ProductID:   m.ProductID,
		QuantityIn:  m.QuantityIn,
		QuantityOut: m.QuantityOut,
		Notes:       m.Notes,
	}
	if p, ok := catalog[m.ProductID]; ok {
		out.ProductSKU = p.SKU
		out.ProductName = p.Name
	}
	return out
}

// MovementFieldNames traduce los nombres snake_case de la API a los campos del dominio.
var MovementFieldNames = map[string]string{
	"date":         entity.MovementFieldDate,
	"product_id":   entity.MovementFieldProductID,
	"quantity_in":  entity.MovementFieldQuantityIn,
	"quantity_out": entity.MovementFieldQuantityOut,
	"notes":        entity.MovementFieldNotes,
}
