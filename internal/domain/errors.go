package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")

	// ErrCatalogEmpty es una condición de guía, no un fallo: no se puede registrar
	// un movimiento sin al menos un producto en el catálogo.
	ErrCatalogEmpty = errors.New("catálogo de productos vacío")

	// ErrNotConfirmed indica que el colaborador de confirmación rechazó la eliminación.
	ErrNotConfirmed = errors.New("eliminación no confirmada")

	// ErrAnalysisUnavailable el proveedor de IA falló o devolvió una respuesta vacía.
	ErrAnalysisUnavailable = errors.New("análisis de IA no disponible")
)

// Mensajes visibles para el usuario asociados a las condiciones de guía.
const (
	CatalogEmptyMessage   = "Primero debes crear al menos un producto en la pestaña de Productos."
	DeleteProductQuestion = "¿Eliminar producto? Se borrarán sus movimientos asociados."

	AdvisoryConnectionFailed = "No se pudo conectar con la IA."
	AdvisoryEmptyAnswer      = "Error al generar análisis."
)
