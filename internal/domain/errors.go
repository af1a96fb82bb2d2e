package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Se envuelven con fmt.Errorf("...: %w", err); los llamadores comparan con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("transición de estado inválida")
	// ErrConflict es el único error que el llamador puede reintentar automáticamente.
	ErrConflict = errors.New("conflicto con el estado actual")
	ErrInternal = errors.New("error interno de almacenamiento")
)

// IsRetryable indica si la operación puede reintentarse sin riesgo.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
