package inventory

import (
	"fmt"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// SignedDelta traduce (tipo, cantidad) al efecto firmado sobre el saldo.
// Tipos direccionales exigen cantidad > 0; AJUSTE recibe el delta firmado y solo rechaza cero.
func SignedDelta(t entity.MovementType, quantity int64) (int64, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("tipo de movimiento %q: %w", t, domain.ErrInvalidInput)
	}
	if t == entity.MovementAjuste {
		if quantity == 0 {
			return 0, fmt.Errorf("ajuste con delta cero: %w", domain.ErrInvalidInput)
		}
		return quantity, nil
	}
	if quantity <= 0 {
		return 0, fmt.Errorf("cantidad debe ser positiva: %w", domain.ErrInvalidInput)
	}
	return t.Direction() * quantity, nil
}

// Magnitude valor absoluto de un delta.
func Magnitude(delta int64) int64 {
	if delta < 0 {
		return -delta
	}
	return delta
}

// ApplyDelta calcula el nuevo saldo; nunca deja el saldo por debajo de cero.
func ApplyDelta(current, delta int64) (int64, error) {
	next := current + delta
	if next < 0 {
		return current, fmt.Errorf("saldo %d, delta %d: %w", current, delta, domain.ErrInsufficientStock)
	}
	return next, nil
}

// ReplayBalance suma los deltas en orden de creación (el resultado debe igualar el saldo).
func ReplayBalance(movements []*entity.InventoryMovement) int64 {
	var total int64
	for _, m := range movements {
		total += m.Delta
	}
	return total
}
