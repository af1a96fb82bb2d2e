package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre saldos y libro.
type QueryUseCase struct {
	invRepo   repository.InventoryRepository
	movRepo   repository.InventoryMovementRepository
	alertRepo repository.StockAlertRepository
	pdf       ReportPDFGenerator
	now       func() time.Time
}

// NewQueryUseCase construye el caso de uso. pdf puede ser nil si no se exponen reportes PDF.
func NewQueryUseCase(
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
	alertRepo repository.StockAlertRepository,
	pdf ReportPDFGenerator,
) *QueryUseCase {
	return &QueryUseCase{
		invRepo:   invRepo,
		movRepo:   movRepo,
		alertRepo: alertRepo,
		pdf:       pdf,
		now:       time.Now,
	}
}

// GetInventory saldo actual del producto.
func (uc *QueryUseCase) GetInventory(ctx context.Context, tenantID, productID string) (*entity.InventoryRecord, error) {
	rec, err := uc.invRepo.Get(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("inventario de %s: %w", productID, domain.ErrNotFound)
	}
	return rec, nil
}

// ListInventory saldos del tenant, paginados.
func (uc *QueryUseCase) ListInventory(ctx context.Context, tenantID string, page repository.Page) ([]*entity.InventoryRecord, int, error) {
	return uc.invRepo.List(ctx, tenantID, page.Normalize())
}

// ListLowStock saldos en o por debajo del mínimo.
func (uc *QueryUseCase) ListLowStock(ctx context.Context, tenantID string) ([]*entity.InventoryRecord, error) {
	return uc.invRepo.ListLowStock(ctx, tenantID)
}

// ListMovements libro del tenant en orden de creación.
func (uc *QueryUseCase) ListMovements(ctx context.Context, tenantID string, filter repository.MovementFilter, page repository.Page) ([]*entity.InventoryMovement, int, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, fmt.Errorf("tipo de movimiento %q: %w", filter.Type, domain.ErrInvalidInput)
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, 0, fmt.Errorf("rango de fechas: %w", domain.ErrInvalidInput)
	}
	return uc.movRepo.List(ctx, tenantID, filter, page.Normalize())
}

// GetProductMovementHistory movimientos de un producto, más recientes primero.
func (uc *QueryUseCase) GetProductMovementHistory(ctx context.Context, tenantID, productID string, page repository.Page) ([]*entity.InventoryMovement, int, error) {
	if _, err := uc.GetInventory(ctx, tenantID, productID); err != nil {
		return nil, 0, err
	}
	return uc.movRepo.List(ctx, tenantID, repository.MovementFilter{ProductID: productID, Desc: true}, page.Normalize())
}

// Report resumen del inventario del tenant.
func (uc *QueryUseCase) Report(ctx context.Context, tenantID string) (*dto.InventoryReportDTO, error) {
	report := &dto.InventoryReportDTO{
		TenantID:         tenantID,
		GeneratedAt:      uc.now(),
		LowStockProducts: []dto.InventoryRecordDTO{},
	}
	page := repository.Page{Page: 1, Limit: repository.MaxPageLimit}
	for {
		items, total, err := uc.invRepo.List(ctx, tenantID, page)
		if err != nil {
			return nil, err
		}
		for _, r := range items {
			report.TotalUnits += r.Quantity
			switch {
			case r.Quantity <= 0:
				report.OutOfStockCount++
			case r.IsLow():
				report.LowStockCount++
			}
			if r.IsOver() {
				report.OverstockCount++
			}
			if r.IsLow() {
				report.LowStockProducts = append(report.LowStockProducts, dto.InventoryRecordFromEntity(r))
			}
		}
		report.TotalProducts = total
		if len(items) == 0 || page.Page*page.Limit >= total {
			break
		}
		page.Page++
	}
	open, err := uc.alertRepo.CountOpen(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	report.OpenAlertsCount = open
	return report, nil
}

// ReportPDF resumen renderizado en PDF.
func (uc *QueryUseCase) ReportPDF(ctx context.Context, tenantID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador PDF no configurado: %w", domain.ErrInternal)
	}
	report, err := uc.Report(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(report)
}

// VerifyLedger compara el saldo con la suma de los deltas del libro.
func (uc *QueryUseCase) VerifyLedger(ctx context.Context, tenantID, productID string) (*dto.LedgerCheckDTO, error) {
	rec, err := uc.GetInventory(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	sum, err := uc.movRepo.SumDelta(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerCheckDTO{
		ProductID:   productID,
		Quantity:    rec.Quantity,
		LedgerTotal: sum,
		Consistent:  sum == rec.Quantity,
	}, nil
}
