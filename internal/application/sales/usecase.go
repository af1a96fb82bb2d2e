package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// SaleItemInput línea solicitada.
type SaleItemInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CreateSaleInput datos de una venta.
type CreateSaleInput struct {
	TenantID      string
	UserID        string
	CustomerID    string
	PaymentMethod entity.PaymentMethod
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Notes         string
	Items         []SaleItemInput
}

// RefundItemInput producto y cantidad a reembolsar.
type RefundItemInput struct {
	ProductID string
	Quantity  int64
}

// UseCase coordinador venta-libro: la venta y sus movimientos se confirman en una sola transacción.
type UseCase struct {
	txRunner    SaleTxRunner
	ledger      LedgerPoster
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	log         zerolog.Logger
	maxRetries  int
	now         func() time.Time
}

// NewUseCase construye el coordinador. saleRepo es el repositorio fuera de transacción (consultas).
func NewUseCase(
	txRunner SaleTxRunner,
	ledger LedgerPoster,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	log zerolog.Logger,
	maxRetries int,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		log:         log,
		maxRetries:  maxRetries,
		now:         time.Now,
	}
}

// CreateSale registra la venta COMPLETED y una VENTA por producto con referencia = id de la venta.
// Si cualquier línea falla (p. ej. stock insuficiente) no queda ni la venta ni ningún movimiento.
func (uc *UseCase) CreateSale(ctx context.Context, in CreateSaleInput) (*entity.Sale, error) {
	if err := uc.validateSale(ctx, in); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err := inventory.RetryOnConflict(ctx, uc.maxRetries, func() error {
		sale = uc.buildSale(in)
		qty := sale.QuantitiesByProduct()
		return uc.txRunner.RunSale(ctx, func(movRepo repository.InventoryMovementRepository, invRepo repository.InventoryRepository, saleRepo repository.SaleRepository) error {
			// la venta primero: los movimientos la referencian
			if err := saleRepo.Create(ctx, sale); err != nil {
				return err
			}
			for _, pid := range sortedProducts(qty) {
				_, err := uc.ledger.ApplyInTx(ctx, movRepo, invRepo, inventory.MovementInput{
					TenantID:  in.TenantID,
					ProductID: pid,
					UserID:    in.UserID,
					Type:      entity.MovementVenda,
					Quantity:  qty[pid],
					Reason:    "venda " + sale.SaleNumber,
					Reference: sale.ID,
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	}, nil)
	if err != nil {
		return nil, err
	}

	uc.ledger.AfterCommit(ctx, in.TenantID, sortedProducts(sale.QuantitiesByProduct())...)
	uc.log.Info().
		Str("tenant_id", in.TenantID).
		Str("sale_id", sale.ID).
		Str("sale_number", sale.SaleNumber).
		Str("total", sale.Total.String()).
		Msg("venta registrada")
	return sale, nil
}

// CancelSale anula una venta COMPLETED devolviendo al stock todo lo vendido.
func (uc *UseCase) CancelSale(ctx context.Context, tenantID, saleID, userID string) (*entity.Sale, error) {
	if tenantID == "" || saleID == "" {
		return nil, fmt.Errorf("anulación: %w", domain.ErrInvalidInput)
	}
	var (
		sale    *entity.Sale
		touched []string
	)
	err := inventory.RetryOnConflict(ctx, uc.maxRetries, func() error {
		return uc.txRunner.RunSale(ctx, func(movRepo repository.InventoryMovementRepository, invRepo repository.InventoryRepository, saleRepo repository.SaleRepository) error {
			s, err := lockSale(ctx, saleRepo, tenantID, saleID)
			if err != nil {
				return err
			}
			if !s.Status.CanCancel() {
				return fmt.Errorf("venta %s en estado %s no se puede anular: %w", saleID, s.Status, domain.ErrInvalidState)
			}
			qty := s.QuantitiesByProduct()
			touched = sortedProducts(qty)
			for _, pid := range touched {
				_, err := uc.ledger.ApplyInTx(ctx, movRepo, invRepo, inventory.MovementInput{
					TenantID:  tenantID,
					ProductID: pid,
					UserID:    userID,
					Type:      entity.MovementDevolucao,
					Quantity:  qty[pid],
					Reason:    "cancelamento " + s.SaleNumber,
					Reference: s.ID,
				})
				if err != nil {
					return err
				}
			}
			s.Status = entity.SaleStatusCancelled
			s.UpdatedAt = uc.now()
			if err := saleRepo.UpdateStatus(ctx, s); err != nil {
				return err
			}
			sale = s
			return nil
		})
	}, nil)
	if err != nil {
		return nil, err
	}
	uc.ledger.AfterCommit(ctx, tenantID, touched...)
	return sale, nil
}

// RefundSale reembolso parcial o total. Los reembolsos se acumulan: lo ya devuelto por producto
// es la suma de DEVOLUCAO que referencian la venta.
func (uc *UseCase) RefundSale(ctx context.Context, tenantID, saleID, userID string, items []RefundItemInput, reason string) (*entity.Sale, error) {
	if tenantID == "" || saleID == "" || len(items) == 0 {
		return nil, fmt.Errorf("reembolso sin líneas: %w", domain.ErrInvalidInput)
	}
	requested := make(map[string]int64, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("línea de reembolso inválida: %w", domain.ErrInvalidInput)
		}
		requested[it.ProductID] += it.Quantity
	}

	var sale *entity.Sale
	err := inventory.RetryOnConflict(ctx, uc.maxRetries, func() error {
		return uc.txRunner.RunSale(ctx, func(movRepo repository.InventoryMovementRepository, invRepo repository.InventoryRepository, saleRepo repository.SaleRepository) error {
			s, err := lockSale(ctx, saleRepo, tenantID, saleID)
			if err != nil {
				return err
			}
			if !s.Status.CanRefund() {
				return fmt.Errorf("venta %s en estado %s no admite reembolso: %w", saleID, s.Status, domain.ErrInvalidState)
			}
			sold := s.QuantitiesByProduct()
			refunded, err := movRepo.SumByReference(ctx, tenantID, entity.MovementDevolucao, s.ID)
			if err != nil {
				return err
			}
			for _, pid := range sortedProducts(requested) {
				q, ok := sold[pid]
				if !ok {
					return fmt.Errorf("producto %s no pertenece a la venta: %w", pid, domain.ErrInvalidInput)
				}
				if refunded[pid]+requested[pid] > q {
					return fmt.Errorf("estorno maior que vendido (%s): %w", pid, domain.ErrInvalidInput)
				}
			}
			for _, pid := range sortedProducts(requested) {
				_, err := uc.ledger.ApplyInTx(ctx, movRepo, invRepo, inventory.MovementInput{
					TenantID:  tenantID,
					ProductID: pid,
					UserID:    userID,
					Type:      entity.MovementDevolucao,
					Quantity:  requested[pid],
					Reason:    reason,
					Reference: s.ID,
				})
				if err != nil {
					return err
				}
			}
			s.Status = entity.SaleStatusRefunded
			s.UpdatedAt = uc.now()
			if err := saleRepo.UpdateStatus(ctx, s); err != nil {
				return err
			}
			sale = s
			return nil
		})
	}, nil)
	if err != nil {
		return nil, err
	}
	uc.ledger.AfterCommit(ctx, tenantID, sortedProducts(requested)...)
	return sale, nil
}

// GetSale venta con sus líneas.
func (uc *UseCase) GetSale(ctx context.Context, tenantID, saleID string) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
	}
	return s, nil
}

// ListSales ventas del tenant, más recientes primero.
func (uc *UseCase) ListSales(ctx context.Context, tenantID string, filter repository.SaleFilter, page repository.Page) ([]*entity.Sale, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("estado %q: %w", filter.Status, domain.ErrInvalidInput)
	}
	if filter.PaymentMethod != "" && !filter.PaymentMethod.Valid() {
		return nil, 0, fmt.Errorf("medio de pago %q: %w", filter.PaymentMethod, domain.ErrInvalidInput)
	}
	return uc.saleRepo.List(ctx, tenantID, filter, page.Normalize())
}

func (uc *UseCase) validateSale(ctx context.Context, in CreateSaleInput) error {
	if in.TenantID == "" || len(in.Items) == 0 {
		return fmt.Errorf("venta sin líneas: %w", domain.ErrInvalidInput)
	}
	if !in.PaymentMethod.Valid() {
		return fmt.Errorf("medio de pago %q: %w", in.PaymentMethod, domain.ErrInvalidInput)
	}
	if in.Discount.IsNegative() || in.Tax.IsNegative() {
		return fmt.Errorf("descuento o impuesto negativo: %w", domain.ErrInvalidInput)
	}
	subtotal := decimal.Zero
	checked := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return fmt.Errorf("línea de venta inválida: %w", domain.ErrInvalidInput)
		}
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
		if checked[it.ProductID] {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, in.TenantID, it.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		checked[it.ProductID] = true
	}
	if in.Discount.GreaterThan(subtotal) {
		return fmt.Errorf("descuento mayor que el subtotal: %w", domain.ErrInvalidInput)
	}
	return nil
}

// buildSale arma una venta nueva; se llama en cada intento para no arrastrar estado de un intento fallido.
func (uc *UseCase) buildSale(in CreateSaleInput) *entity.Sale {
	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		TenantID:      in.TenantID,
		UserID:        in.UserID,
		CustomerID:    in.CustomerID,
		Status:        entity.SaleStatusCompleted,
		PaymentMethod: in.PaymentMethod,
		Discount:      in.Discount,
		Tax:           in.Tax,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	subtotal := decimal.Zero
	for _, it := range in.Items {
		total := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		subtotal = subtotal.Add(total)
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     total,
			CreatedAt: now,
		})
	}
	sale.Subtotal = subtotal
	sale.Total = subtotal.Sub(in.Discount).Add(in.Tax)
	return sale
}

func lockSale(ctx context.Context, saleRepo repository.SaleRepository, tenantID, saleID string) (*entity.Sale, error) {
	s, err := saleRepo.GetForUpdate(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
	}
	return s, nil
}

// sortedProducts orden ascendente de ids: los bloqueos de fila se toman siempre en el mismo orden.
func sortedProducts(m map[string]int64) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
