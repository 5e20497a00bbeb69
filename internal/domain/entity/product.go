package entity

// Product representa un producto del catálogo (hoja Productos).
// El SKU no es único: dos productos pueden compartir código.
type Product struct {
	ID   string
	SKU  string
	Name string
}

// Campos editables de Product.
const (
	ProductFieldSKU  = "sku"
	ProductFieldName = "name"
)
