package repository

import (
	"context"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// InventoryRepository puerto de persistencia del saldo por (tenant, producto).
// Dentro de una transacción, GetForUpdate bloquea la fila hasta el commit.
type InventoryRepository interface {
	Create(ctx context.Context, rec *entity.InventoryRecord) error
	// Get devuelve (nil, nil) si el registro no existe.
	Get(ctx context.Context, tenantID, productID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, tenantID, productID string) (*entity.InventoryRecord, error)
	UpdateQuantity(ctx context.Context, rec *entity.InventoryRecord) error
	UpdateThresholds(ctx context.Context, rec *entity.InventoryRecord) error
	List(ctx context.Context, tenantID string, page Page) ([]*entity.InventoryRecord, int, error)
	// ListLowStock registros con quantity <= min_stock.
	ListLowStock(ctx context.Context, tenantID string) ([]*entity.InventoryRecord, error)
	ListProductIDs(ctx context.Context, tenantID string) ([]string, error)
	// ListTenants tenants con al menos un registro de inventario.
	ListTenants(ctx context.Context) ([]string, error)
}
