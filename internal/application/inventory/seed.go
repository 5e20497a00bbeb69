package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

// DemoState datos de ejemplo que se cargan en el primer arranque (almacén vacío).
func DemoState(today time.Time) State {
	date := today.Format(entity.DateLayout)
	return State{
		Products: []entity.Product{
			{ID: "1", SKU: "LAP-001", Name: `Laptop Pro 14"`},
			{ID: "2", SKU: "MOU-002", Name: "Mouse Inalámbrico"},
		},
		Movements: []entity.Movement{
			{ID: "101", Date: date, ProductID: "1", QuantityIn: decimal.NewFromInt(10), QuantityOut: decimal.Zero, Notes: "Stock inicial"},
			{ID: "102", Date: date, ProductID: "2", QuantityIn: decimal.NewFromInt(50), QuantityOut: decimal.Zero, Notes: "Pedido proveedor"},
		},
	}
}
