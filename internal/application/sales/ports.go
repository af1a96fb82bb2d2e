package sales

import (
	"context"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// SaleTxRunner ejecuta fn en una transacción con los repositorios de inventario y ventas.
// Venta y movimientos se confirman juntos o no se confirma nada.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		invRepo repository.InventoryRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// LedgerPoster motor de movimientos visto desde el coordinador.
type LedgerPoster interface {
	ApplyInTx(ctx context.Context, movRepo repository.InventoryMovementRepository, invRepo repository.InventoryRepository, in inventory.MovementInput) (*entity.InventoryRecord, error)
	AfterCommit(ctx context.Context, tenantID string, productIDs ...string)
}

var _ LedgerPoster = (*inventory.MovementUseCase)(nil)
