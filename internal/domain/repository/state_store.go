package repository

import "context"

// Claves del almacén de estado: una por colección, serializada como arreglo JSON.
const (
	KeyProducts  = "products_v2"
	KeyMovements = "movements_v2"
)

// StateStore define el puerto de persistencia clave-valor del estado de la aplicación (DIP).
// Get devuelve found=false (sin error) cuando la clave no existe.
type StateStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
