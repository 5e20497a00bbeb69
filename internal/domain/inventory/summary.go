package inventory

import (
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ComputeSummaries calcula el stock de cada producto a partir del log de movimientos.
// Devuelve exactamente un resumen por producto, en el orden del catálogo; productos
// sin movimientos quedan en cero. Movimientos que referencian productos inexistentes
// no aportan a ningún total. Función pura: no modifica sus entradas.
func ComputeSummaries(products []entity.Product, movements []entity.Movement) []entity.StockSummary {
	type totals struct{ in, out decimal.Decimal }
	byProduct := make(map[string]totals, len(products))
	for _, m := range movements {
		t := byProduct[m.ProductID]
		t.in = t.in.Add(m.QuantityIn)
		t.out = t.out.Add(m.QuantityOut)
		byProduct[m.ProductID] = t
	}

	summaries := make([]entity.StockSummary, 0, len(products))
	for _, p := range products {
		t := byProduct[p.ID]
		summaries = append(summaries, entity.StockSummary{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			TotalIn:      t.in,
			TotalOut:     t.out,
			CurrentStock: t.in.Sub(t.out),
		})
	}
	return summaries
}

// LowStockThreshold stock máximo que todavía se marca como bajo (naranja).
var LowStockThreshold = decimal.NewFromInt(5)

// StockLevel clasificación de un stock para resaltarlo en las vistas.
type StockLevel int

const (
	StockOK  StockLevel = iota
	StockLow            // 0 < stock <= LowStockThreshold
	StockOut            // stock <= 0
)

// LevelOf clasifica un stock actual.
func LevelOf(stock decimal.Decimal) StockLevel {
	switch {
	case stock.LessThanOrEqual(decimal.Zero):
		return StockOut
	case stock.LessThanOrEqual(LowStockThreshold):
		return StockLow
	default:
		return StockOK
	}
}

// ComputeTotals suma los resúmenes para la cabecera de la hoja Stock.
func ComputeTotals(summaries []entity.StockSummary) entity.StockTotals {
	totals := entity.StockTotals{Products: len(summaries)}
	for _, s := range summaries {
		totals.TotalIn = totals.TotalIn.Add(s.TotalIn)
		totals.TotalOut = totals.TotalOut.Add(s.TotalOut)
		totals.CurrentStock = totals.CurrentStock.Add(s.CurrentStock)
		switch LevelOf(s.CurrentStock) {
		case StockOut:
			totals.OutOfStock++
		case StockLow:
			totals.LowStock++
		}
	}
	return totals
}

// RecentMovements devuelve los n movimientos más recientes. El log se guarda del más
// nuevo al más antiguo, así que basta con tomar el prefijo.
func RecentMovements(movements []entity.Movement, n int) []entity.Movement {
	if n <= 0 {
		return []entity.Movement{}
	}
	if len(movements) < n {
		n = len(movements)
	}
	out := make([]entity.Movement, n)
	copy(out, movements[:n])
	return out
}
