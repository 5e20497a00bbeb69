package ports

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

// StockReport datos de las tres hojas tomados de una misma copia del estado.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	Products    []entity.Product
	Movements   []entity.Movement
	Summaries   []entity.StockSummary
	Totals      entity.StockTotals
	Advisory    entity.Advisory
}

// StockPDFGenerator genera el reporte imprimible de la hoja Stock.
type StockPDFGenerator interface {
	GenerateStockPDF(ctx context.Context, report StockReport) ([]byte, error)
}

// WorkbookExporter exporta las tres hojas a un formato de hoja de cálculo.
type WorkbookExporter interface {
	ExportWorkbook(ctx context.Context, report StockReport) ([]byte, error)
}
