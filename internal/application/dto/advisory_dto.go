package dto

import (
	"time"

	"github.com/jhoicas/inventario-hojas/internal/domain/entity"
)

// AdvisoryResponse salida de GET/POST /api/advisory.
type AdvisoryResponse struct {
	Text      string     `json:"text"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Failed    bool       `json:"failed"`
	Analyzing bool       `json:"analyzing"`
}

// FromAdvisory mapea el análisis guardado.
func FromAdvisory(a entity.Advisory, analyzing bool) AdvisoryResponse {
	out := AdvisoryResponse{Text: a.Text, Failed: a.Failed, Analyzing: analyzing}
	if !a.UpdatedAt.IsZero() {
		at := a.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}
