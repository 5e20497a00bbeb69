package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-hojas/internal/domain/inventory"
)

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"entero", "10", "10"},
		{"decimal", "2.5", "2.5"},
		{"espacios", "  7 ", "7"},
		{"texto no numérico", "abc", "0"},
		{"vacío", "", "0"},
		{"negativo se recorta", "-4", "0"},
		{"prefijo numérico", "12 cajas", "12"},
		{"exponente", "1e2", "100"},
		{"punto inicial", ".5", "0.5"},
		{"exponente enorme", "1e50000000", "0"},
		{"fuera de rango float64", "1e400", "0"},
		{"exponente negativo enorme", "1e-50000000", "0"},
		{"límite de float64", "1e308", "1e308"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.ParseQuantity(tc.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"ParseQuantity(%q) = %s, se esperaba %s", tc.raw, got, tc.want)
		})
	}
}

func TestNormalizeQuantity(t *testing.T) {
	cases := []struct {
		name string
		in   decimal.Decimal
		want decimal.Decimal
	}{
		{"normal", decimal.RequireFromString("12.5"), decimal.RequireFromString("12.5")},
		{"negativo", decimal.NewFromInt(-3), decimal.Zero},
		{"exponente enorme", decimal.New(1, 50000000), decimal.Zero},
		{"exponente negativo enorme", decimal.New(1, -50000000), decimal.Zero},
		{"fuera de rango float64", decimal.New(1, 399), decimal.Zero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.NormalizeQuantity(tc.in)
			assert.True(t, got.Equal(tc.want), "NormalizeQuantity(%s) = %s", tc.name, got)
			assert.Less(t, len(got.String()), 400, "la representación queda acotada")
		})
	}
}

func TestClampQuantity(t *testing.T) {
	assert.True(t, inventory.ClampQuantity(decimal.NewFromInt(-1)).IsZero())
	assert.True(t, inventory.ClampQuantity(decimal.NewFromInt(3)).Equal(decimal.NewFromInt(3)))
}
