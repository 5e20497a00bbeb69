package ai

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-hojas/internal/application/ports"
)

// Proveedores soportados en AI_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// NewProvider elige el adaptador según el nombre del proveedor y devuelve también
// el modelo efectivo.
func NewProvider(provider, apiKey, model string) (ports.LLMService, string, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderGemini:
		s := NewGeminiService(apiKey, model)
		return s, s.model, nil
	case ProviderAnthropic:
		s := NewAnthropicService(apiKey, model)
		return s, s.model, nil
	default:
		return nil, "", fmt.Errorf("AI: proveedor desconocido %q", provider)
	}
}
