package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-hojas/internal/domain/inventory"
)

// productRecord registro plano persistido en la clave products_v2.
type productRecord struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// movementRecord registro plano persistido en la clave movements_v2.
// In/Out son los nombres de campo de registros guardados por versiones anteriores.
type movementRecord struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	ProductID   string           `json:"productId"`
	QuantityIn  *decimal.Decimal `json:"quantityIn,omitempty"`
	QuantityOut *decimal.Decimal `json:"quantityOut,omitempty"`
	In          *decimal.Decimal `json:"in,omitempty"`
	Out         *decimal.Decimal `json:"out,omitempty"`
	Notes       string           `json:"notes"`
}

// EncodeProducts serializa el catálogo como arreglo JSON.
func EncodeProducts(products []entity.Product) (string, error) {
	records := make([]productRecord, 0, len(products))
	for _, p := range products {
		records = append(records, productRecord{ID: p.ID, SKU: p.SKU, Name: p.Name})
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("serializar productos: %w", err)
	}
	return string(b), nil
}

// DecodeProducts deserializa el catálogo.
func DecodeProducts(raw string) ([]entity.Product, error) {
	var records []productRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("deserializar productos: %w", err)
	}
	products := make([]entity.Product, 0, len(records))
	for _, r := range records {
		products = append(products, entity.Product{ID: r.ID, SKU: r.SKU, Name: r.Name})
	}
	return products, nil
}

// EncodeMovements serializa el log de movimientos como arreglo JSON.
func EncodeMovements(movements []entity.Movement) (string, error) {
	records := make([]movementRecord, 0, len(movements))
	for _, m := range movements {
		in, out := m.QuantityIn, m.QuantityOut
		records = append(records, movementRecord{
			ID:          m.ID,
			Date:        m.Date,
			ProductID:   m.ProductID,
			QuantityIn:  &in,
			QuantityOut: &out,
			Notes:       m.Notes,
		})
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("serializar movimientos: %w", err)
	}
	return string(b), nil
}

// DecodeMovements deserializa el log. Acepta registros con in/out y recorta
// cantidades negativas a cero.
func DecodeMovements(raw string) ([]entity.Movement, error) {
	var records []movementRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("deserializar movimientos: %w", err)
	}
	movements := make([]entity.Movement, 0, len(records))
	for _, r := range records {
		movements = append(movements, entity.Movement{
			ID:          r.ID,
			Date:        r.Date,
			ProductID:   r.ProductID,
			QuantityIn:  firstQuantity(r.QuantityIn, r.In),
			QuantityOut: firstQuantity(r.QuantityOut, r.Out),
			Notes:       r.Notes,
		})
	}
	return movements, nil
}

func firstQuantity(candidates ...*decimal.Decimal) decimal.Decimal {
	for _, q := range candidates {
		if q != nil {
			return invdomain.NormalizeQuantity(*q)
		}
	}
	return decimal.Zero
}
