package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-hojas/internal/domain/inventory"
)

// AdvisorySource último análisis disponible (AdvisoryUseCase).
type AdvisorySource interface {
	Current() entity.Advisory
}

// ReportUseCase genera los documentos descargables de las hojas.
type ReportUseCase struct {
	source   StateSource
	advisory AdvisorySource
	pdf      ports.StockPDFGenerator
	exporter ports.WorkbookExporter
	title    string
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso. advisory puede ser nil.
func NewReportUseCase(source StateSource, advisory AdvisorySource, pdf ports.StockPDFGenerator, exporter ports.WorkbookExporter, title string) *ReportUseCase {
	return &ReportUseCase{
		source:   source,
		advisory: advisory,
		pdf:      pdf,
		exporter: exporter,
		title:    title,
		now:      time.Now,
	}
}

// Build arma el reporte sobre una sola copia del estado.
func (uc *ReportUseCase) Build() ports.StockReport {
	state := uc.source.Snapshot()
	summaries := invdomain.ComputeSummaries(state.Products, state.Movements)
	report := ports.StockReport{
		Title:       uc.title,
		GeneratedAt: uc.now(),
		Products:    state.Products,
		Movements:   state.Movements,
		Summaries:   summaries,
		Totals:      invdomain.ComputeTotals(summaries),
	}
	if uc.advisory != nil {
		report.Advisory = uc.advisory.Current()
	}
	return report
}

// StockPDF genera el PDF de la hoja Stock Actual.
func (uc *ReportUseCase) StockPDF(ctx context.Context) ([]byte, error) {
	out, err := uc.pdf.GenerateStockPDF(ctx, uc.Build())
	if err != nil {
		return nil, fmt.Errorf("reporte PDF: %w", err)
	}
	return out, nil
}

// Workbook exporta las tres hojas.
func (uc *ReportUseCase) Workbook(ctx context.Context) ([]byte, error) {
	out, err := uc.exporter.ExportWorkbook(ctx, uc.Build())
	if err != nil {
		return nil, fmt.Errorf("exportar libro: %w", err)
	}
	return out, nil
}
