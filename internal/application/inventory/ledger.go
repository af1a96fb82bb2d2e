package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-inventory/internal/domain/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// lockRecord bloquea la fila de saldo (SELECT FOR UPDATE) dentro de la tx en curso.
func lockRecord(ctx context.Context, invRepo repository.InventoryRepository, tenantID, productID string) (*entity.InventoryRecord, error) {
	rec, err := invRepo.GetForUpdate(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("inventario de %s: %w", productID, domain.ErrNotFound)
	}
	return rec, nil
}

// appendMovement bloquea el saldo, descarta reenvíos de VENTA con la misma referencia y
// registra el movimiento. Devuelve mov == nil cuando el movimiento ya estaba aplicado.
func appendMovement(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	invRepo repository.InventoryRepository,
	in MovementInput,
	delta int64,
	now time.Time,
) (*entity.InventoryRecord, *entity.InventoryMovement, error) {
	rec, err := lockRecord(ctx, invRepo, in.TenantID, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if in.Type == entity.MovementVenda && in.Reference != "" {
		exists, err := movRepo.ExistsByReference(ctx, in.TenantID, in.ProductID, in.Type, in.Reference)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			return rec, nil, nil
		}
	}
	mov, err := postMovement(ctx, movRepo, invRepo, rec, in, delta, now)
	if err != nil {
		return nil, nil, err
	}
	return rec, mov, nil
}

// postMovement aplica delta sobre un saldo ya bloqueado y guarda el movimiento.
// Saldo y movimiento se escriben en la misma tx; rec queda con el saldo nuevo.
func postMovement(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	invRepo repository.InventoryRepository,
	rec *entity.InventoryRecord,
	in MovementInput,
	delta int64,
	now time.Time,
) (*entity.InventoryMovement, error) {
	next, err := domaininv.ApplyDelta(rec.Quantity, delta)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", rec.ProductID, err)
	}
	rec.Quantity = next
	rec.UpdatedAt = now
	if err := invRepo.UpdateQuantity(ctx, rec); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:           newID(),
		TenantID:     rec.TenantID,
		ProductID:    rec.ProductID,
		Type:         in.Type,
		Quantity:     domaininv.Magnitude(delta),
		Delta:        delta,
		BalanceAfter: next,
		Reason:       in.Reason,
		Reference:    in.Reference,
		Notes:        in.Notes,
		UserID:       in.UserID,
		CreatedAt:    now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
