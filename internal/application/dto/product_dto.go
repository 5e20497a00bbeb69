package dto

import "github.com/jhoicas/inventario-hojas/internal/domain/entity"

// ProductResponse salida de un producto (fila de la hoja Productos).
type ProductResponse struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// ProductListResponse lista del catálogo en orden de inserción.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// FromProduct mapea la entidad.
func FromProduct(p entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, SKU: p.SKU, Name: p.Name}
}

// FromProducts mapea una lista conservando el orden.
func FromProducts(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

// DeleteProductResponse resultado de la eliminación en cascada.
type DeleteProductResponse struct {
	ID               string `json:"id"`
	DeletedMovements int    `json:"deleted_movements"`
}
