package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/domain"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-hojas/internal/domain/inventory"
)

// Nombres de comando (se publican junto con cada StockChange).
const (
	CmdAddProduct     = "add_product"
	CmdUpdateProduct  = "update_product"
	CmdDeleteProduct  = "delete_product"
	CmdAddMovement    = "add_movement"
	CmdUpdateMovement = "update_movement"
	CmdDeleteMovement = "delete_movement"
)

// Command es una mutación del estado. Hay una variante por operación de las hojas
// Productos y Movimientos; Workbook.Execute las aplica de forma serializada.
type Command interface {
	Name() string
	apply(s *State, env *commandEnv) (Result, error)
}

// Result describe el efecto de un comando.
// Changed=false significa que el id no existía y el estado quedó intacto (no-op).
type Result struct {
	Changed  bool
	Product  *entity.Product
	Movement *entity.Movement
	// Cascaded cantidad de movimientos eliminados junto con el producto.
	Cascaded int
}

// commandEnv generadores inyectados por el Workbook (reloj, ids, SKU provisional).
type commandEnv struct {
	now    func() time.Time
	newID  func() string
	newSKU func() string
}

// ── Productos ─────────────────────────────────────────────────────────────────

// AddProduct agrega un producto con SKU y nombre provisionales al final del catálogo.
type AddProduct struct{}

// Name implementa Command.
func (AddProduct) Name() string { return CmdAddProduct }

func (AddProduct) apply(s *State, env *commandEnv) (Result, error) {
	p := entity.Product{
		ID:   env.newID(),
		SKU:  "SKU-" + env.newSKU(),
		Name: "Nuevo Producto",
	}
	s.Products = append(s.Products, p)
	return Result{Changed: true, Product: &p}, nil
}

// UpdateProduct reemplaza un campo (sku o name) de un producto. El valor no se valida.
type UpdateProduct struct {
	ID    string
	Field string
	Value string
}

// Name implementa Command.
func (UpdateProduct) Name() string { return CmdUpdateProduct }

func (c UpdateProduct) apply(s *State, _ *commandEnv) (Result, error) {
	if c.Field != entity.ProductFieldSKU && c.Field != entity.ProductFieldName {
		return Result{}, fmt.Errorf("campo de producto %q: %w", c.Field, domain.ErrInvalidInput)
	}
	i := s.productIndex(c.ID)
	if i < 0 {
		return Result{}, nil
	}
	switch c.Field {
	case entity.ProductFieldSKU:
		s.Products[i].SKU = c.Value
	case entity.ProductFieldName:
		s.Products[i].Name = c.Value
	}
	p := s.Products[i]
	return Result{Changed: true, Product: &p}, nil
}

// DeleteProduct elimina un producto y, en cascada, todos sus movimientos.
// Requiere la aprobación de Confirmer; sin Confirmer la eliminación se rechaza.
type DeleteProduct struct {
	ID        string
	Confirmer ports.Confirmer
}

// Name implementa Command.
func (DeleteProduct) Name() string { return CmdDeleteProduct }

func (c DeleteProduct) question() string { return domain.DeleteProductQuestion }

func (c DeleteProduct) confirmer() ports.Confirmer { return c.Confirmer }

func (c DeleteProduct) apply(s *State, _ *commandEnv) (Result, error) {
	i := s.productIndex(c.ID)
	if i < 0 {
		return Result{}, nil
	}
	removed := s.Products[i]
	s.Products = append(s.Products[:i:i], s.Products[i+1:]...)

	kept := make([]entity.Movement, 0, len(s.Movements))
	for _, m := range s.Movements {
		if m.ProductID != c.ID {
			kept = append(kept, m)
		}
	}
	cascaded := len(s.Movements) - len(kept)
	s.Movements = kept
	return Result{Changed: true, Product: &removed, Cascaded: cascaded}, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// AddMovement antepone un movimiento vacío del día para el primer producto del catálogo.
// Con el catálogo vacío devuelve domain.ErrCatalogEmpty sin modificar el log.
type AddMovement struct{}

// Name implementa Command.
func (AddMovement) Name() string { return CmdAddMovement }

func (AddMovement) apply(s *State, env *commandEnv) (Result, error) {
	if len(s.Products) == 0 {
		return Result{}, domain.ErrCatalogEmpty
	}
	m := entity.Movement{
		ID:          env.newID(),
		Date:        env.now().Format(entity.DateLayout),
		ProductID:   s.Products[0].ID,
		QuantityIn:  decimal.Zero,
		QuantityOut: decimal.Zero,
	}
	movements := make([]entity.Movement, 0, len(s.Movements)+1)
	movements = append(movements, m)
	s.Movements = append(movements, s.Movements...)
	return Result{Changed: true, Movement: &m}, nil
}

// UpdateMovement reemplaza un campo de un movimiento.
// Las cantidades pasan por invdomain.ParseQuantity: texto inválido queda en cero.
type UpdateMovement struct {
	ID    string
	Field string
	Value string
}

// Name implementa Command.
func (UpdateMovement) Name() string { return CmdUpdateMovement }

func (c UpdateMovement) apply(s *State, _ *commandEnv) (Result, error) {
	switch c.Field {
	case entity.MovementFieldDate, entity.MovementFieldProductID, entity.MovementFieldQuantityIn,
		entity.MovementFieldQuantityOut, entity.MovementFieldNotes:
	default:
		return Result{}, fmt.Errorf("campo de movimiento %q: %w", c.Field, domain.ErrInvalidInput)
	}
	i := s.movementIndex(c.ID)
	if i < 0 {
		return Result{}, nil
	}
	m := &s.Movements[i]
	switch c.Field {
	case entity.MovementFieldDate:
		if _, err := time.Parse(entity.DateLayout, c.Value); err != nil {
			return Result{}, fmt.Errorf("fecha %q: %w", c.Value, domain.ErrInvalidInput)
		}
		m.Date = c.Value
	case entity.MovementFieldProductID:
		if s.productIndex(c.Value) < 0 {
			return Result{}, fmt.Errorf("producto %q: %w", c.Value, domain.ErrNotFound)
		}
		m.ProductID = c.Value
	case entity.MovementFieldQuantityIn:
		m.QuantityIn = invdomain.ParseQuantity(c.Value)
	case entity.MovementFieldQuantityOut:
		m.QuantityOut = invdomain.ParseQuantity(c.Value)
	case entity.MovementFieldNotes:
		m.Notes = c.Value
	}
	updated := *m
	return Result{Changed: true, Movement: &updated}, nil
}

// DeleteMovement elimina un movimiento. No tiene efecto en cascada ni pide confirmación.
type DeleteMovement struct {
	ID string
}

// Name implementa Command.
func (DeleteMovement) Name() string { return CmdDeleteMovement }

func (c DeleteMovement) apply(s *State, _ *commandEnv) (Result, error) {
	i := s.movementIndex(c.ID)
	if i < 0 {
		return Result{}, nil
	}
	removed := s.Movements[i]
	s.Movements = append(s.Movements[:i:i], s.Movements[i+1:]...)
	return Result{Changed: true, Movement: &removed}, nil
}

// confirmable lo implementan los comandos destructivos que requieren confirmación previa.
type confirmable interface {
	question() string
	confirmer() ports.Confirmer
}

var _ confirmable = DeleteProduct{}
