package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PageRequest paginación opcional para listados. Limit=0 devuelve todo.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage normaliza valores fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Bounds devuelve el rango [start, end) a recortar sobre una lista de total elementos.
func (p PageRequest) Bounds(total int) (int, int) {
	start := p.Offset
	if start > total {
		start = total
	}
	end := total
	if p.Limit > 0 && start+p.Limit < total {
		end = start + p.Limit
	}
	return start, end
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LooseString acepta en JSON un string, un número o un booleano y lo conserva como texto.
// Las celdas de las hojas llegan así desde los clientes: "12", 12 o 12.5.
type LooseString string

// UnmarshalJSON implementa json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = LooseString(str)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = LooseString(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("valor de celda no soportado: %s", data)
		}
		*s = LooseString(n.String())
	}
	return nil
}

// UpdateFieldRequest body de PATCH sobre una fila: reemplaza un campo.
type UpdateFieldRequest struct {
	Field string      `json:"field"`
	Value LooseString `json:"value"`
}
