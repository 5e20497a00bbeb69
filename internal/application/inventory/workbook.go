package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/jaevor/go-nanoid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/domain"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-hojas/internal/domain/inventory"
	"github.com/jhoicas/inventario-hojas/internal/domain/repository"
)

// Workbook es el dueño exclusivo del estado (catálogo + log de movimientos).
// Todas las mutaciones pasan por Execute bajo un único mutex, de modo que nunca se
// intercalan y los observadores siempre ven ambas colecciones consistentes.
// Después de cada mutación se persisten las dos claves y se recalcula el stock.
type Workbook struct {
	mu    sync.Mutex
	state State
	seq   uint64

	// notifyMu se toma antes de soltar mu: las notificaciones salen en el
	// mismo orden en que se aplicaron las mutaciones.
	notifyMu sync.Mutex

	store    repository.StateStore
	notifier ports.StockNotifier
	log      zerolog.Logger
	env      commandEnv
}

// Option configura un Workbook.
type Option func(*Workbook)

// WithClock reemplaza el reloj (fecha por defecto de los movimientos).
func WithClock(now func() time.Time) Option {
	return func(w *Workbook) { w.env.now = now }
}

// WithIDGenerator reemplaza el generador de ids (uuid por defecto).
func WithIDGenerator(newID func() string) Option {
	return func(w *Workbook) { w.env.newID = newID }
}

// WithSKUGenerator reemplaza el sufijo del SKU provisional.
func WithSKUGenerator(newSKU func() string) Option {
	return func(w *Workbook) { w.env.newSKU = newSKU }
}

// WithNotifier registra el observador de cambios de stock.
func WithNotifier(n ports.StockNotifier) Option {
	return func(w *Workbook) { w.notifier = n }
}

// WithLogger asigna el logger de la persistencia.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Workbook) { w.log = l }
}

// NewWorkbook construye el Workbook con estado vacío; llamar Load antes de usarlo.
func NewWorkbook(store repository.StateStore, opts ...Option) (*Workbook, error) {
	skuSuffix, err := gonanoid.CustomASCII("0123456789", 3)
	if err != nil {
		return nil, fmt.Errorf("generador de SKU: %w", err)
	}
	w := &Workbook{
		store: store,
		log:   zerolog.Nop(),
		env: commandEnv{
			now:    time.Now,
			newID:  func() string { return uuid.New().String() },
			newSKU: skuSuffix,
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Load lee ambas colecciones del almacén. Una clave ausente se inicializa con los
// datos de ejemplo si seed es true (y se persiste), o vacía en caso contrario.
// Un valor ilegible se registra y la colección arranca vacía.
func (w *Workbook) Load(ctx context.Context, seed bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	demo := DemoState(w.env.now())
	seeded := false

	rawProducts, found, err := w.store.Get(ctx, repository.KeyProducts)
	if err != nil {
		return fmt.Errorf("leer %s: %w", repository.KeyProducts, err)
	}
	switch {
	case found:
		products, err := DecodeProducts(rawProducts)
		if err != nil {
			w.log.Error().Err(err).Str("key", repository.KeyProducts).Msg("estado ilegible, se inicia vacío")
			products = []entity.Product{}
		}
		w.state.Products = products
	case seed:
		w.state.Products = demo.Products
		seeded = true
	default:
		w.state.Products = []entity.Product{}
	}

	rawMovements, found, err := w.store.Get(ctx, repository.KeyMovements)
	if err != nil {
		return fmt.Errorf("leer %s: %w", repository.KeyMovements, err)
	}
	switch {
	case found:
		movements, err := DecodeMovements(rawMovements)
		if err != nil {
			w.log.Error().Err(err).Str("key", repository.KeyMovements).Msg("estado ilegible, se inicia vacío")
			movements = []entity.Movement{}
		}
		w.state.Movements = movements
	case seed:
		w.state.Movements = demo.Movements
		seeded = true
	default:
		w.state.Movements = []entity.Movement{}
	}

	if seeded {
		w.saveLocked(ctx)
	}
	w.log.Info().
		Int("products", len(w.state.Products)).
		Int("movements", len(w.state.Movements)).
		Bool("seeded", seeded).
		Msg("estado cargado")
	return nil
}

// Execute aplica un comando. Los comandos destructivos consultan primero a su
// Confirmer (fuera del lock); un rechazo devuelve domain.ErrNotConfirmed.
// Un id inexistente no es error: Result.Changed queda en false.
func (w *Workbook) Execute(ctx context.Context, cmd Command) (Result, error) {
	if c, ok := cmd.(confirmable); ok {
		confirmer := c.confirmer()
		if confirmer == nil || !confirmer.Confirm(ctx, c.question()) {
			return Result{}, domain.ErrNotConfirmed
		}
	}

	w.mu.Lock()
	working := w.state.Clone()
	res, err := cmd.apply(&working, &w.env)
	if err != nil || !res.Changed {
		w.mu.Unlock()
		return res, err
	}
	w.state = working
	w.saveLocked(ctx)
	w.seq++
	change := ports.StockChange{
		Seq:       w.seq,
		Command:   cmd.Name(),
		Summaries: invdomain.ComputeSummaries(w.state.Products, w.state.Movements),
		At:        w.env.now(),
	}
	w.notifyMu.Lock()
	w.mu.Unlock()
	defer w.notifyMu.Unlock()

	w.log.Debug().Str("command", cmd.Name()).Uint64("seq", change.Seq).Int("cascaded", res.Cascaded).Msg("comando aplicado")
	if w.notifier != nil {
		// El notificador no debe volver a llamar al Workbook.
		w.notifier.StockChanged(ctx, change)
	}
	return res, nil
}

// Snapshot devuelve una copia del estado actual.
func (w *Workbook) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// Summaries recalcula el resumen de stock desde cero sobre el estado actual.
func (w *Workbook) Summaries() []entity.StockSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return invdomain.ComputeSummaries(w.state.Products, w.state.Movements)
}

// StockSnapshot devuelve el resumen actual con el Seq de la última mutación
// aplicada, para quien necesita sincronizarse con el flujo de cambios.
func (w *Workbook) StockSnapshot() ports.StockChange {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ports.StockChange{
		Seq:       w.seq,
		Command:   "snapshot",
		Summaries: invdomain.ComputeSummaries(w.state.Products, w.state.Movements),
		At:        w.env.now().UTC(),
	}
}

// saveLocked persiste ambas colecciones. Un fallo del almacén solo se registra:
// la mutación en memoria ya se aplicó y no se revierte.
func (w *Workbook) saveLocked(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	products, err := EncodeProducts(w.state.Products)
	if err == nil {
		err = w.store.Set(ctx, repository.KeyProducts, products)
	}
	if err != nil {
		w.log.Warn().Err(err).Str("key", repository.KeyProducts).Msg("no se pudo persistir el estado")
	}

	movements, err := EncodeMovements(w.state.Movements)
	if err == nil {
		err = w.store.Set(ctx, repository.KeyMovements, movements)
	}
	if err != nil {
		w.log.Warn().Err(err).Str("key", repository.KeyMovements).Msg("no se pudo persistir el estado")
	}
}
