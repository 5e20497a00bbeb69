package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-hojas/internal/domain/inventory"
)

// QueryUseCase lecturas de las tres hojas sobre una copia consistente del estado.
type QueryUseCase struct {
	source StateSource
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(source StateSource) *QueryUseCase {
	return &QueryUseCase{source: source}
}

// Products devuelve el catálogo en orden de inserción. Con q no vacío filtra por SKU
// o nombre sin distinguir mayúsculas ni tildes ("inalambrico" encuentra "Inalámbrico").
func (uc *QueryUseCase) Products(q string) []entity.Product {
	products := uc.source.Snapshot().Products
	needle := fold(q)
	if needle == "" {
		return products
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(fold(p.SKU), needle) || strings.Contains(fold(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Movements devuelve el log (del más nuevo al más antiguo) junto con el catálogo indexado por id.
func (uc *QueryUseCase) Movements() ([]entity.Movement, map[string]entity.Product) {
	state := uc.source.Snapshot()
	catalog := make(map[string]entity.Product, len(state.Products))
	for _, p := range state.Products {
		catalog[p.ID] = p
	}
	return state.Movements, catalog
}

// Stock recalcula el resumen y sus totales.
func (uc *QueryUseCase) Stock() ([]entity.StockSummary, entity.StockTotals) {
	state := uc.source.Snapshot()
	summaries := invdomain.ComputeSummaries(state.Products, state.Movements)
	return summaries, invdomain.ComputeTotals(summaries)
}

// fold normaliza para búsqueda: minúsculas y sin marcas diacríticas.
func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
