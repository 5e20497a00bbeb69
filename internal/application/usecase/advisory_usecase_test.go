package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-hojas/internal/application/inventory"
	"github.com/jhoicas/inventario-hojas/internal/application/usecase"
	"github.com/jhoicas/inventario-hojas/internal/domain"
	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

// fakeLLM implementación de ports.LLMService controlable desde el test.
type fakeLLM struct {
	calls   atomic.Int32
	release chan struct{}
	text    string
	err     error

	mu      sync.Mutex
	prompts []string
	models  []string
	ctxErr  error
}

func (f *fakeLLM) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	f.ctxErr = ctx.Err()
	f.mu.Unlock()
	return f.text, f.err
}

type staticSource struct{ state inventory.State }

func (s staticSource) Snapshot() inventory.State { return s.state.Clone() }

var fixedNow = time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)

func sampleSource() staticSource {
	movements := make([]entity.Movement, 0, 12)
	for i := 0; i < 12; i++ {
		movements = append(movements, entity.Movement{
			ID:          "m" + string(rune('a'+i)),
			Date:        "2026-05-01",
			ProductID:   "1",
			QuantityIn:  decimal.NewFromInt(1),
			QuantityOut: decimal.Zero,
		})
	}
	return staticSource{state: inventory.State{
		Products:  []entity.Product{{ID: "1", SKU: "LAP-001", Name: "Laptop"}},
		Movements: movements,
	}}
}

func newAdvisory(llm *fakeLLM) *usecase.AdvisoryUseCase {
	return usecase.NewAdvisoryUseCase(sampleSource(), llm, usecase.AdvisoryConfig{
		Model: "gemini-3-flash-preview",
		Now:   func() time.Time { return fixedNow },
	})
}

func TestAnalyze_GuardaElTextoDelModelo(t *testing.T) {
	llm := &fakeLLM{text: "1. Ninguno en riesgo."}
	uc := newAdvisory(llm)
	require.True(t, uc.Current().IsZero())

	got, err := uc.Analyze(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1. Ninguno en riesgo.", got.Text)
	assert.False(t, got.Failed)
	assert.Equal(t, fixedNow, got.UpdatedAt)
	assert.Equal(t, got, uc.Current())
	assert.False(t, uc.IsAnalyzing())
	assert.Equal(t, []string{"gemini-3-flash-preview"}, llm.models)
}

func TestAnalyze_PromptConResumenYDiezMovimientos(t *testing.T) {
	llm := &fakeLLM{text: "ok"}
	uc := newAdvisory(llm)

	_, err := uc.Analyze(context.Background())
	require.NoError(t, err)

	prompt := llm.prompts[0]
	assert.True(t, strings.HasPrefix(prompt, "Actúa como un experto en logística."))
	assert.Contains(t, prompt, `"sku":"LAP-001"`)
	assert.Contains(t, prompt, `"currentStock":12`)
	assert.Contains(t, prompt, `"id":"mj"`, "décimo movimiento incluido")
	assert.NotContains(t, prompt, `"id":"mk"`, "solo los diez más recientes")
	assert.Contains(t, prompt, "Una recomendación estratégica.")
}

func TestAnalyze_CantidadFueraDeRangoFloatLlegaAlModelo(t *testing.T) {
	huge := decimal.New(1, 400)
	source := staticSource{state: inventory.State{
		Products: []entity.Product{{ID: "1", SKU: "LAP-001", Name: "Laptop"}},
		Movements: []entity.Movement{
			{ID: "m1", Date: "2026-05-01", ProductID: "1", QuantityIn: huge, QuantityOut: decimal.Zero},
		},
	}}
	llm := &fakeLLM{text: "ok"}
	uc := usecase.NewAdvisoryUseCase(source, llm, usecase.AdvisoryConfig{
		Now: func() time.Time { return fixedNow },
	})

	got, err := uc.Analyze(context.Background())

	require.NoError(t, err)
	assert.False(t, got.Failed)
	assert.Equal(t, "ok", got.Text)
	require.EqualValues(t, 1, llm.calls.Load())
	assert.Contains(t, llm.prompts[0], `"totalIn":1`+strings.Repeat("0", 400))
	assert.NotContains(t, llm.prompts[0], "Inf")
}

func TestAnalyze_FallosGuardanTextoFijo(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeLLM
		want string
	}{
		{"error de red", &fakeLLM{err: errors.New("connection refused")}, domain.AdvisoryConnectionFailed},
		{"respuesta vacía", &fakeLLM{text: "   "}, domain.AdvisoryEmptyAnswer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uc := newAdvisory(tc.llm)

			got, err := uc.Analyze(context.Background())

			assert.ErrorIs(t, err, domain.ErrAnalysisUnavailable)
			assert.True(t, got.Failed)
			assert.Equal(t, tc.want, got.Text)
			assert.Equal(t, got, uc.Current())
			assert.EqualValues(t, 1, tc.llm.calls.Load(), "sin reintentos")
		})
	}
}

func TestAnalyze_LlamadasSimultaneasComparten(t *testing.T) {
	llm := &fakeLLM{text: "análisis", release: make(chan struct{})}
	uc := newAdvisory(llm)

	var wg sync.WaitGroup
	results := make([]entity.Advisory, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = uc.Analyze(context.Background())
	}()
	require.Eventually(t, uc.IsAnalyzing, time.Second, time.Millisecond)

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = uc.Analyze(context.Background())
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(llm.release)
	wg.Wait()

	assert.EqualValues(t, 1, llm.calls.Load())
	for _, r := range results {
		assert.Equal(t, "análisis", r.Text)
	}
	assert.False(t, uc.IsAnalyzing())
}

func TestAnalyze_NoSeCancelaConElContextoDelLlamador(t *testing.T) {
	llm := &fakeLLM{text: "terminado", release: make(chan struct{})}
	uc := newAdvisory(llm)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan entity.Advisory)
	go func() {
		a, _ := uc.Analyze(ctx)
		done <- a
	}()
	require.Eventually(t, uc.IsAnalyzing, time.Second, time.Millisecond)
	cancel()
	close(llm.release)

	got := <-done
	assert.Equal(t, "terminado", got.Text)
	assert.NoError(t, llm.ctxErr)
}
