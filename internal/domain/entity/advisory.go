package entity

import "time"

// Advisory último comentario generado por la IA sobre el inventario.
// Text es opaco: se guarda tal como lo devuelve el modelo o con el texto fijo de error.
type Advisory struct {
	Text      string
	UpdatedAt time.Time
	Failed    bool
}

// IsZero indica que todavía no se ha solicitado ningún análisis.
func (a Advisory) IsZero() bool { return a.Text == "" && a.UpdatedAt.IsZero() }
