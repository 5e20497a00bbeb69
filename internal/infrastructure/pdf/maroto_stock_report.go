// Package pdf implementa el reporte imprimible de la hoja Stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / entradas / salidas / sin stock         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Entradas | Salidas | Stock          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ANÁLISIS IA (si existe)                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-hojas/internal/domain/inventory"
)

var _ ports.StockPDFGenerator = (*MarotoStockReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 79, Green: 70, Blue: 229}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
	colorDanger  = &props.Color{Red: 225, Green: 29, Blue: 72}
	colorWarning = &props.Color{Red: 249, Green: 115, Blue: 22}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStockReport implementa ports.StockPDFGenerator usando Maroto v2.
type MarotoStockReport struct{}

// NewMarotoStockReport construye el generador.
func NewMarotoStockReport() *MarotoStockReport { return &MarotoStockReport{} }

// GenerateStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) GenerateStockPDF(_ context.Context, report ports.StockReport) ([]byte, error) {
	title := nonEmpty(report.Title, "Inventario")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title+" - Stock Actual", true).
		WithAuthor(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report.Totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Summaries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay productos en el catálogo.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(report.Summaries) {
		m.AddRows(r)
	}

	if !report.Advisory.IsZero() {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range advisoryRows(report.Advisory) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, report ports.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock Actual", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// totalsRow: cinco indicadores de cabecera.
func totalsRow(t entity.StockTotals) core.Row {
	cell := func(size int, label, value string, c *props.Color) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Color: c, Align: align.Center, Top: 5}),
		)
	}
	outColor, lowColor := colorPrimary, colorPrimary
	if t.OutOfStock > 0 {
		outColor = colorDanger
	}
	if t.LowStock > 0 {
		lowColor = colorWarning
	}
	return row.New(14).Add(
		cell(2, "PRODUCTOS", fmt.Sprintf("%d", t.Products), colorPrimary),
		cell(3, "ENTRADAS", formatQuantity(t.TotalIn), colorPrimary),
		cell(3, "SALIDAS", formatQuantity(t.TotalOut), colorPrimary),
		cell(2, "SIN STOCK", fmt.Sprintf("%d", t.OutOfStock), outColor),
		cell(2, "STOCK BAJO", fmt.Sprintf("%d", t.LowStock), lowColor),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Entradas", 2, align.Right),
		h("Salidas", 2, align.Right),
		h("Stock", 2, align.Right),
	)
}

// tableDetailRows: una fila por producto; el stock agotado va en rojo y el bajo en naranja.
func tableDetailRows(summaries []entity.StockSummary) []core.Row {
	result := make([]core.Row, 0, len(summaries))
	for _, s := range summaries {
		stockColor := stockColorOf(s.CurrentStock)
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(s.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(s.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatQuantity(s.TotalIn), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatQuantity(s.TotalOut), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatQuantity(s.CurrentStock), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: stockColor,
			})),
		))
	}
	return result
}

func advisoryRows(a entity.Advisory) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("ANÁLISIS INTELIGENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for _, paragraph := range strings.Split(strings.TrimSpace(a.Text), "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		// Altura aproximada: ~110 caracteres por línea a 8 pt.
		height := 5.0 * float64(1+len([]rune(paragraph))/110)
		rows = append(rows, row.New(height).Add(col.New(12).Add(
			text.New(paragraph, props.Text{Size: 8, Top: 0.5}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stockColorOf(stock decimal.Decimal) *props.Color {
	switch invdomain.LevelOf(stock) {
	case invdomain.StockOut:
		return colorDanger
	case invdomain.StockLow:
		return colorWarning
	default:
		return colorPrimary
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQuantity inserta puntos de miles y usa coma decimal.
// Ej: 25000 → "25.000", 1234.5 → "1.234,5", -7 → "-7"
func formatQuantity(d decimal.Decimal) string {
	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := sign + string(buf)
	if hasFrac {
		out += "," + frac
	}
	return out
}
