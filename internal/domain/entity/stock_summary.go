package entity

import "github.com/shopspring/decimal"

// StockSummary resumen derivado de un producto (hoja Stock). No se persiste.
type StockSummary struct {
	ProductID    string
	SKU          string
	Name         string
	TotalIn      decimal.Decimal
	TotalOut     decimal.Decimal
	CurrentStock decimal.Decimal // TotalIn - TotalOut; negativo indica sobre-asignación
}

// StockTotals totales generales sobre todos los resúmenes.
type StockTotals struct {
	Products      int
	TotalIn       decimal.Decimal
	TotalOut      decimal.Decimal
	CurrentStock  decimal.Decimal
	OutOfStock    int // productos con stock <= 0
	LowStock      int // productos con stock > 0 y <= inventory.LowStockThreshold
}
