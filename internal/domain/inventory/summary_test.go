package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	"github.com/jhoicas/inventario-hojas/internal/domain/inventory"
)

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func movement(id, productID string, in, out int64) entity.Movement {
	return entity.Movement{
		ID:          id,
		Date:        "2026-01-15",
		ProductID:   productID,
		QuantityIn:  qty(in),
		QuantityOut: qty(out),
	}
}

// Escenario de referencia: LAP-001 con entrada 10 y salida 3 → stock 7.
func TestComputeSummaries_EscenarioLaptop(t *testing.T) {
	products := []entity.Product{{ID: "1", SKU: "LAP-001", Name: "Laptop"}}
	movements := []entity.Movement{
		movement("101", "1", 10, 0),
		movement("102", "1", 0, 3),
	}

	got := inventory.ComputeSummaries(products, movements)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ProductID)
	assert.Equal(t, "LAP-001", got[0].SKU)
	assert.Equal(t, "Laptop", got[0].Name)
	assert.True(t, got[0].TotalIn.Equal(qty(10)))
	assert.True(t, got[0].TotalOut.Equal(qty(3)))
	assert.True(t, got[0].CurrentStock.Equal(qty(7)))
}

func TestComputeSummaries_LongitudYOrdenDelCatalogo(t *testing.T) {
	products := []entity.Product{
		{ID: "c", SKU: "C"},
		{ID: "a", SKU: "A"},
		{ID: "b", SKU: "B"},
	}
	movements := []entity.Movement{
		movement("1", "b", 5, 0),
		movement("2", "a", 1, 0),
	}

	got := inventory.ComputeSummaries(products, movements)

	require.Len(t, got, len(products))
	for i, p := range products {
		assert.Equal(t, p.ID, got[i].ProductID, "el orden debe seguir el catálogo")
	}
}

func TestComputeSummaries_ProductoSinMovimientosQuedaEnCero(t *testing.T) {
	products := []entity.Product{{ID: "1"}, {ID: "2"}}
	movements := []entity.Movement{movement("1", "1", 4, 1)}

	got := inventory.ComputeSummaries(products, movements)

	require.Len(t, got, 2)
	assert.True(t, got[1].TotalIn.IsZero())
	assert.True(t, got[1].TotalOut.IsZero())
	assert.True(t, got[1].CurrentStock.IsZero())
}

func TestComputeSummaries_StockNegativoEsValido(t *testing.T) {
	products := []entity.Product{{ID: "1"}}
	movements := []entity.Movement{
		movement("1", "1", 2, 0),
		movement("2", "1", 0, 5),
	}

	got := inventory.ComputeSummaries(products, movements)

	require.Len(t, got, 1)
	assert.True(t, got[0].CurrentStock.Equal(qty(-3)), "stock = %s", got[0].CurrentStock)
	assert.True(t, got[0].CurrentStock.Equal(got[0].TotalIn.Sub(got[0].TotalOut)))
}

func TestComputeSummaries_CantidadesDecimales(t *testing.T) {
	products := []entity.Product{{ID: "1"}}
	movements := []entity.Movement{
		{ID: "1", ProductID: "1", QuantityIn: decimal.RequireFromString("0.1")},
		{ID: "2", ProductID: "1", QuantityIn: decimal.RequireFromString("0.2")},
	}

	got := inventory.ComputeSummaries(products, movements)

	assert.True(t, got[0].TotalIn.Equal(decimal.RequireFromString("0.3")))
}

func TestComputeSummaries_IgnoraReferenciasHuerfanas(t *testing.T) {
	products := []entity.Product{{ID: "1"}}
	movements := []entity.Movement{
		movement("1", "1", 1, 0),
		movement("2", "fantasma", 100, 0),
	}

	got := inventory.ComputeSummaries(products, movements)

	require.Len(t, got, 1)
	assert.True(t, got[0].TotalIn.Equal(qty(1)))
}

func TestComputeSummaries_Idempotente(t *testing.T) {
	products := []entity.Product{{ID: "1", SKU: "X"}, {ID: "2", SKU: "Y"}}
	movements := []entity.Movement{
		movement("1", "1", 3, 1),
		movement("2", "2", 0, 4),
	}

	first := inventory.ComputeSummaries(products, movements)
	second := inventory.ComputeSummaries(products, movements)

	assert.Equal(t, first, second)
}

func TestComputeSummaries_CatalogoVacio(t *testing.T) {
	got := inventory.ComputeSummaries(nil, []entity.Movement{movement("1", "1", 1, 0)})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComputeTotals(t *testing.T) {
	summaries := inventory.ComputeSummaries(
		[]entity.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}},
		[]entity.Movement{
			movement("1", "1", 10, 3),
			movement("2", "2", 1, 4),
		},
	)

	totals := inventory.ComputeTotals(summaries)

	assert.Equal(t, 3, totals.Products)
	assert.True(t, totals.TotalIn.Equal(qty(11)))
	assert.True(t, totals.TotalOut.Equal(qty(7)))
	assert.True(t, totals.CurrentStock.Equal(qty(4)))
	assert.Equal(t, 2, totals.OutOfStock, "producto 2 (negativo) y producto 3 (cero)")
	assert.Equal(t, 0, totals.LowStock)
}

func TestComputeTotals_StockBajo(t *testing.T) {
	summaries := inventory.ComputeSummaries(
		[]entity.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}},
		[]entity.Movement{
			movement("a", "1", 5, 0),
			movement("b", "2", 6, 0),
			movement("c", "3", 1, 0),
			movement("d", "4", 2, 2),
			movement("e", "5", 0, 1),
		},
	)

	totals := inventory.ComputeTotals(summaries)

	assert.Equal(t, 2, totals.LowStock, "stock 5 y stock 1")
	assert.Equal(t, 2, totals.OutOfStock, "stock 0 y stock -1")
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		stock string
		want  inventory.StockLevel
	}{
		{"-1", inventory.StockOut},
		{"0", inventory.StockOut},
		{"0.5", inventory.StockLow},
		{"5", inventory.StockLow},
		{"5.01", inventory.StockOK},
		{"120", inventory.StockOK},
	}
	for _, tc := range tests {
		t.Run(tc.stock, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.LevelOf(decimal.RequireFromString(tc.stock)))
		})
	}
}

func TestRecentMovements(t *testing.T) {
	var movements []entity.Movement
	for i := 0; i < 12; i++ {
		movements = append(movements, movement(string(rune('a'+i)), "1", 1, 0))
	}

	recent := inventory.RecentMovements(movements, 10)

	require.Len(t, recent, 10)
	assert.Equal(t, "a", recent[0].ID, "el log está ordenado del más nuevo al más antiguo")
	assert.Equal(t, "j", recent[9].ID)

	assert.Len(t, inventory.RecentMovements(movements[:3], 10), 3)
	assert.Empty(t, inventory.RecentMovements(movements, 0))
}
