package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// salesWindow ventana de ventas usada para priorizar la reposición.
const salesWindow = 90 * 24 * time.Hour

// ReplenishmentUseCase genera la lista de reposición del tenant.
// Parte de los saldos en o bajo el mínimo y prioriza por volumen vendido reciente.
type ReplenishmentUseCase struct {
	invRepo repository.InventoryRepository
	movRepo repository.InventoryMovementRepository
	now     func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		invRepo: invRepo,
		movRepo: movRepo,
		now:     time.Now,
	}
}

// GenerateReplenishmentList devuelve los productos a reponer con la cantidad sugerida.
// El stock ideal es el máximo configurado o, sin máximo, 1,5 veces el mínimo.
// Productos cuyo ideal no supera el saldo actual no se sugieren.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, tenantID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.invRepo.ListLowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	sold, err := uc.movRepo.SumByTypeSince(ctx, tenantID, entity.MovementVenda, uc.now().Add(-salesWindow))
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, rec := range low {
		ideal := idealStock(rec)
		qty := ideal - rec.Quantity
		if qty <= 0 {
			continue
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:           rec.ProductID,
			SKU:                 rec.ProductSKU,
			ProductName:         rec.ProductName,
			CurrentStock:        rec.Quantity,
			MinStock:            rec.MinStock,
			MaxStock:            rec.MaxStock,
			IdealStock:          ideal,
			SuggestedOrderQty:   qty,
			UnitsSoldLast90Days: sold[rec.ProductID],
		})
	}

	// Primero lo que más se vende; luego el mayor déficit bajo el mínimo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldLast90Days != b.UnitsSoldLast90Days {
			return a.UnitsSoldLast90Days > b.UnitsSoldLast90Days
		}
		defA, defB := a.MinStock-a.CurrentStock, b.MinStock-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.ProductID < b.ProductID
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func idealStock(rec *entity.InventoryRecord) int64 {
	if rec.MaxStock != nil {
		return *rec.MaxStock
	}
	return (rec.MinStock*3 + 1) / 2
}
