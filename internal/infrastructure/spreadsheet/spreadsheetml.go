// Package spreadsheet exporta las hojas Productos, Movimientos y Stock Actual como
// un libro SpreadsheetML (XML 2003), que Excel y LibreOffice abren directamente.
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

var _ ports.WorkbookExporter = (*SpreadsheetML)(nil)

const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"

	// Nombres de las hojas tal como aparecen en la aplicación.
	SheetProducts  = "Productos"
	SheetMovements = "Movimientos"
	SheetStock     = "Stock Actual"

	styleHeader   = "header"
	styleNegative = "negative"
)

// SpreadsheetML implementa ports.WorkbookExporter con beevik/etree.
type SpreadsheetML struct{}

// NewSpreadsheetML construye el exportador.
func NewSpreadsheetML() *SpreadsheetML { return &SpreadsheetML{} }

// ExportWorkbook genera el libro con las tres hojas.
func (x *SpreadsheetML) ExportWorkbook(_ context.Context, report ports.StockReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	wb := doc.CreateElement("Workbook")
	wb.CreateAttr("xmlns", nsSpreadsheet)
	wb.CreateAttr("xmlns:ss", nsSpreadsheet)

	props := wb.CreateElement("DocumentProperties")
	props.CreateAttr("xmlns", "urn:schemas-microsoft-com:office:office")
	props.CreateElement("Title").SetText(report.Title)
	props.CreateElement("Created").SetText(report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))

	styles := wb.CreateElement("Styles")
	header := styles.CreateElement("Style")
	header.CreateAttr("ss:ID", styleHeader)
	header.CreateElement("Font").CreateAttr("ss:Bold", "1")
	negative := styles.CreateElement("Style")
	negative.CreateAttr("ss:ID", styleNegative)
	negFont := negative.CreateElement("Font")
	negFont.CreateAttr("ss:Color", "#E11D48")
	negFont.CreateAttr("ss:Bold", "1")

	productsSheet(wb, report.Products)
	movementsSheet(wb, report.Movements, report.Products)
	stockSheet(wb, report.Summaries)

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: serializar libro: %w", err)
	}
	return out, nil
}

// ── Hojas ─────────────────────────────────────────────────────────────────────

func productsSheet(wb *etree.Element, products []entity.Product) {
	table := newSheet(wb, SheetProducts, "ID", "SKU", "Nombre")
	for _, p := range products {
		r := table.CreateElement("Row")
		stringCell(r, p.ID)
		stringCell(r, p.SKU)
		stringCell(r, p.Name)
	}
}

func movementsSheet(wb *etree.Element, movements []entity.Movement, products []entity.Product) {
	catalog := make(map[string]entity.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	table := newSheet(wb, SheetMovements, "Fecha", "SKU", "Producto", "Entrada", "Salida", "Notas", "ID")
	for _, m := range movements {
		p := catalog[m.ProductID]
		r := table.CreateElement("Row")
		stringCell(r, m.Date)
		stringCell(r, p.SKU)
		stringCell(r, p.Name)
		numberCell(r, m.QuantityIn, "")
		numberCell(r, m.QuantityOut, "")
		stringCell(r, m.Notes)
		stringCell(r, m.ID)
	}
}

func stockSheet(wb *etree.Element, summaries []entity.StockSummary) {
	table := newSheet(wb, SheetStock, "SKU", "Producto", "Entradas", "Salidas", "Stock")
	for _, s := range summaries {
		style := ""
		if s.CurrentStock.LessThanOrEqual(decimal.Zero) {
			style = styleNegative
		}
		r := table.CreateElement("Row")
		stringCell(r, s.SKU)
		stringCell(r, s.Name)
		numberCell(r, s.TotalIn, "")
		numberCell(r, s.TotalOut, "")
		numberCell(r, s.CurrentStock, style)
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// newSheet crea la hoja con su fila de cabecera y devuelve el elemento Table.
func newSheet(wb *etree.Element, name string, headers ...string) *etree.Element {
	ws := wb.CreateElement("Worksheet")
	ws.CreateAttr("ss:Name", name)
	table := ws.CreateElement("Table")
	r := table.CreateElement("Row")
	r.CreateAttr("ss:StyleID", styleHeader)
	for _, h := range headers {
		stringCell(r, h)
	}
	return table
}

func stringCell(r *etree.Element, value string) {
	data := r.CreateElement("Cell").CreateElement("Data")
	data.CreateAttr("ss:Type", "String")
	data.SetText(value)
}

func numberCell(r *etree.Element, value decimal.Decimal, style string) {
	cell := r.CreateElement("Cell")
	if style != "" {
		cell.CreateAttr("ss:StyleID", style)
	}
	data := cell.CreateElement("Data")
	data.CreateAttr("ss:Type", "Number")
	data.SetText(value.String())
}
