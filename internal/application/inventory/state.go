package inventory

import "github.com/jhoicas/inventario-hojas/internal/domain/entity"

// State colecciones de la aplicación: catálogo (orden de inserción) y log de
// movimientos (del más nuevo al más antiguo).
type State struct {
	Products  []entity.Product
	Movements []entity.Movement
}

// Clone copia ambas colecciones para que el llamador pueda leerlas sin el lock.
func (s State) Clone() State {
	out := State{
		Products:  make([]entity.Product, len(s.Products)),
		Movements: make([]entity.Movement, len(s.Movements)),
	}
	copy(out.Products, s.Products)
	copy(out.Movements, s.Movements)
	return out
}

func (s *State) productIndex(id string) int {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) movementIndex(id string) int {
	for i := range s.Movements {
		if s.Movements[i].ID == id {
			return i
		}
	}
	return -1
}
