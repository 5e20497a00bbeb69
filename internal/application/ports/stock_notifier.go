package ports

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

// StockChange se emite después de cada mutación aplicada al estado.
// Summaries es el resumen recalculado completo, no un parche incremental.
// Seq crece con cada mutación: un cambio con Seq menor o igual al último visto es viejo.
type StockChange struct {
	Seq       uint64
	Command   string
	Summaries []entity.StockSummary
	At        time.Time
}

// StockNotifier observador de cambios (websocket, bus de eventos).
// Los cambios llegan en orden de Seq, uno a la vez; las implementaciones no deben
// bloquear al emisor por fallos propios.
type StockNotifier interface {
	StockChanged(ctx context.Context, change StockChange)
}

// Notifiers reparte un cambio a varios observadores.
type Notifiers []StockNotifier

// StockChanged implementa StockNotifier.
func (n Notifiers) StockChanged(ctx context.Context, change StockChange) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.StockChanged(ctx, change)
		}
	}
}
