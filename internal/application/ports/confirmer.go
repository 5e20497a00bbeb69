package ports

import "context"

// Confirmer colaborador bloqueante de sí/no que se consulta antes de una acción destructiva.
type Confirmer interface {
	Confirm(ctx context.Context, question string) bool
}

// ConfirmFunc adapta una función al puerto Confirmer.
type ConfirmFunc func(ctx context.Context, question string) bool

// Confirm implementa Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, question string) bool { return f(ctx, question) }

// AlwaysConfirm y NeverConfirm respuestas fijas.
var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)
