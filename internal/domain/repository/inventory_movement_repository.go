package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar el libro; campos vacíos no filtran.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	UserID    string
	Reference string
	DateFrom  *time.Time
	DateTo    *time.Time
	// Desc invierte el orden (más recientes primero); por defecto orden de creación.
	Desc bool
}

// InventoryMovementRepository puerto del libro de movimientos (append-only: no hay Update ni Delete).
type InventoryMovementRepository interface {
	Create(ctx context.Context, mov *entity.InventoryMovement) error
	List(ctx context.Context, tenantID string, filter MovementFilter, page Page) ([]*entity.InventoryMovement, int, error)
	ExistsByReference(ctx context.Context, tenantID, productID string, t entity.MovementType, reference string) (bool, error)
	// SumByReference suma las magnitudes de un tipo que referencian a reference, por producto.
	SumByReference(ctx context.Context, tenantID string, t entity.MovementType, reference string) (map[string]int64, error)
	// SumByTypeSince suma las magnitudes de un tipo por producto desde since (inclusive).
	SumByTypeSince(ctx context.Context, tenantID string, t entity.MovementType, since time.Time) (map[string]int64, error)
	// SumDelta suma de todos los deltas del producto (debe igualar el saldo).
	SumDelta(ctx context.Context, tenantID, productID string) (int64, error)
}
