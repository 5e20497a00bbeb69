package entity

import "github.com/shopspring/decimal"

func init() {
	// Las cantidades se guardan y se exponen como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout formato de fecha calendario de los movimientos (sin hora).
const DateLayout = "2006-01-02"

// Campos editables de Movement.
const (
	MovementFieldDate        = "date"
	MovementFieldProductID   = "productId"
	MovementFieldQuantityIn  = "quantityIn"
	MovementFieldQuantityOut = "quantityOut"
	MovementFieldNotes       = "notes"
)

// Movement representa una entrada y/o salida de stock de un producto (hoja Movimientos).
// QuantityIn y QuantityOut nunca son negativos; ver inventory.ParseQuantity.
type Movement struct {
	ID          string
	Date        string // YYYY-MM-DD
	ProductID   string
	QuantityIn  decimal.Decimal
	QuantityOut decimal.Decimal
	Notes       string
}
