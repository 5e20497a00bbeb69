package ports

import "context"

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
type LLMService interface {
	// GenerateText envía el prompt al modelo indicado y devuelve el texto generado.
	// Si model está vacío el adaptador usa su modelo por defecto.
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}
