package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/inventario-hojas/internal/application/inventory"
	"github.com/jhoicas/inventario-hojas/internal/application/ports"
	"github.com/jhoicas/inventario-hojas/internal/domain"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-hojas/internal/domain/inventory"
)

const (
	// DefaultAdvisoryTimeout límite superior de una llamada al LLM.
	DefaultAdvisoryTimeout = 60 * time.Second

	recentMovementsInPrompt = 10

	advisoryPrompt = `Actúa como un experto en logística. Analiza estos datos de inventario real:
Productos: %s.
Movimientos recientes: %s.
Dime en español:
1. ¿Qué productos están en riesgo de agotarse?
2. ¿Cuál tiene más rotación?
3. Una recomendación estratégica.
Usa un tono profesional y directo.`
)

// StateSource fuente del estado a analizar (inventory.Workbook).
type StateSource interface {
	Snapshot() inventory.State
}

// AdvisoryUseCase genera el comentario de IA sobre el stock.
// Solo hay un análisis en curso a la vez: las llamadas que llegan mientras otro
// está pendiente esperan y reciben el mismo resultado, sin una segunda llamada al proveedor.
type AdvisoryUseCase struct {
	source  StateSource
	llm     ports.LLMService
	model   string
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time

	group     singleflight.Group
	analyzing atomic.Bool

	mu      sync.RWMutex
	current entity.Advisory
}

// AdvisoryConfig parámetros del análisis.
type AdvisoryConfig struct {
	Model   string
	Timeout time.Duration
	Logger  zerolog.Logger
	Now     func() time.Time
}

// NewAdvisoryUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAdvisoryUseCase(source StateSource, llm ports.LLMService, cfg AdvisoryConfig) *AdvisoryUseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultAdvisoryTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &AdvisoryUseCase{
		source:  source,
		llm:     llm,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     cfg.Logger,
		now:     cfg.Now,
	}
}

// Current devuelve el último análisis guardado (cero si nunca se pidió uno).
func (uc *AdvisoryUseCase) Current() entity.Advisory {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.current
}

// IsAnalyzing indica si hay una llamada al proveedor en curso.
func (uc *AdvisoryUseCase) IsAnalyzing() bool {
	return uc.analyzing.Load()
}

// Analyze pide un análisis nuevo y lo guarda. El resultado siempre se guarda,
// incluso cuando falla (con el texto fijo de error); en ese caso también se
// devuelve un error que envuelve domain.ErrAnalysisUnavailable.
// La llamada se desacopla de la cancelación de ctx: una vez emitida termina o vence por timeout.
func (uc *AdvisoryUseCase) Analyze(ctx context.Context) (entity.Advisory, error) {
	v, err, shared := uc.group.Do("analyze", func() (interface{}, error) {
		uc.analyzing.Store(true)
		defer uc.analyzing.Store(false)
		return uc.run(context.WithoutCancel(ctx))
	})
	if shared {
		uc.log.Debug().Msg("análisis compartido con una llamada en curso")
	}
	return v.(entity.Advisory), err
}

func (uc *AdvisoryUseCase) run(ctx context.Context) (entity.Advisory, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var (
		advisory entity.Advisory
		failure  error
	)
	prompt, err := uc.buildPrompt()
	if err == nil {
		var text string
		text, err = uc.llm.GenerateText(ctx, uc.model, prompt)
		switch {
		case err != nil:
			failure = fmt.Errorf("llamada al proveedor: %w: %v", domain.ErrAnalysisUnavailable, err)
			advisory = entity.Advisory{Text: domain.AdvisoryConnectionFailed, Failed: true}
		case strings.TrimSpace(text) == "":
			failure = fmt.Errorf("respuesta vacía: %w", domain.ErrAnalysisUnavailable)
			advisory = entity.Advisory{Text: domain.AdvisoryEmptyAnswer, Failed: true}
		default:
			advisory = entity.Advisory{Text: text}
		}
	} else {
		failure = fmt.Errorf("construir prompt: %w: %v", domain.ErrAnalysisUnavailable, err)
		advisory = entity.Advisory{Text: domain.AdvisoryConnectionFailed, Failed: true}
	}
	advisory.UpdatedAt = uc.now()

	if failure != nil {
		uc.log.Error().Err(failure).Msg("análisis de IA fallido")
	} else {
		uc.log.Info().Int("chars", len(advisory.Text)).Msg("análisis de IA generado")
	}

	uc.mu.Lock()
	uc.current = advisory
	uc.mu.Unlock()
	return advisory, failure
}

// promptSummary registro del resumen con los nombres de campo de la hoja Stock.
// Las cantidades van como decimal: se serializan exactas y sin desbordar.
type promptSummary struct {
	ProductID    string          `json:"productId"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	TotalIn      decimal.Decimal `json:"totalIn"`
	TotalOut     decimal.Decimal `json:"totalOut"`
	CurrentStock decimal.Decimal `json:"currentStock"`
}

func (uc *AdvisoryUseCase) buildPrompt() (string, error) {
	state := uc.source.Snapshot()
	summaries := invdomain.ComputeSummaries(state.Products, state.Movements)

	rows := make([]promptSummary, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, promptSummary{
			ProductID:    s.ProductID,
			SKU:          s.SKU,
			Name:         s.Name,
			TotalIn:      s.TotalIn,
			TotalOut:     s.TotalOut,
			CurrentStock: s.CurrentStock,
		})
	}
	products, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	recent, err := inventory.EncodeMovements(invdomain.RecentMovements(state.Movements, recentMovementsInPrompt))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(advisoryPrompt, products, recent), nil
}
