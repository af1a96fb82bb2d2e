package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-inventory/internal/domain/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// MovementInput solicitud de movimiento. En AJUSTE Quantity es el delta firmado.
type MovementInput struct {
	TenantID  string
	ProductID string
	UserID    string
	Type      entity.MovementType
	Quantity  int64
	Reason    string
	Reference string
	Notes     string
}

// InitRecordInput alta del saldo de un producto recién creado en el catálogo.
type InitRecordInput struct {
	TenantID     string
	ProductID    string
	UserID       string
	InitialStock int64
	MinStock     int64
	MaxStock     *int64
}

// MovementUseCase motor de movimientos: única vía para cambiar un saldo.
// Cada movimiento se aplica en una transacción con la fila de saldo bloqueada.
type MovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	alerts      AlertEvaluator
	recorder    Recorder
	log         zerolog.Logger
	maxRetries  int
	now         func() time.Time
}

// NewMovementUseCase construye el motor. alerts puede ser nil (sin evaluación tras el commit).
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	alerts AlertEvaluator,
	recorder Recorder,
	log zerolog.Logger,
	maxRetries int,
) *MovementUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &MovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		alerts:      alerts,
		recorder:    recorder,
		log:         log,
		maxRetries:  maxRetries,
		now:         time.Now,
	}
}

// ApplyMovement valida, aplica el movimiento y devuelve el saldo resultante.
// Un reenvío de VENTA con la misma referencia devuelve el saldo actual sin segundo efecto.
func (uc *MovementUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*entity.InventoryRecord, error) {
	delta, err := uc.validate(ctx, in)
	if err != nil {
		uc.recorder.MovementRejected(in.Type, rejectReason(err))
		return nil, err
	}

	var (
		rec     *entity.InventoryRecord
		applied bool
	)
	err = RetryOnConflict(ctx, uc.maxRetries, func() error {
		return uc.txRunner.Run(ctx, func(movRepo repository.InventoryMovementRepository, invRepo repository.InventoryRepository) error {
			r, mov, err := appendMovement(ctx, movRepo, invRepo, in, delta, uc.now())
			if err != nil {
				return err
			}
			rec, applied = r, mov != nil
			return nil
		})
	}, uc.onRetry("apply_movement"))
	if err != nil {
		uc.recorder.MovementRejected(in.Type, rejectReason(err))
		return nil, err
	}
	if applied {
		uc.recorder.MovementApplied(in.Type)
		uc.AfterCommit(ctx, in.TenantID, in.ProductID)
	}
	return rec, nil
}

// ApplyInTx aplica el movimiento con los repositorios de una transacción abierta por el llamador
// (coordinador de ventas). No evalúa alertas: el llamador invoca AfterCommit tras el commit.
func (uc *MovementUseCase) ApplyInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	invRepo repository.InventoryRepository,
	in MovementInput,
) (*entity.InventoryRecord, error) {
	delta, err := domaininv.SignedDelta(in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}
	rec, mov, err := appendMovement(ctx, movRepo, invRepo, in, delta, uc.now())
	if err != nil {
		uc.recorder.MovementRejected(in.Type, rejectReason(err))
		return nil, err
	}
	if mov != nil {
		uc.recorder.MovementApplied(in.Type)
	}
	return rec, nil
}

// AfterCommit reevalúa alertas de los productos tocados. Los fallos se registran y no se propagan:
// el movimiento ya está confirmado.
func (uc *MovementUseCase) AfterCommit(ctx context.Context, tenantID string, productIDs ...string) {
	if uc.alerts == nil {
		return
	}
	for _, pid := range productIDs {
		if _, err := uc.alerts.Evaluate(ctx, tenantID, pid); err != nil {
			uc.log.Warn().Err(err).
				Str("tenant_id", tenantID).
				Str("product_id", pid).
				Msg("evaluación de alertas tras movimiento")
		}
	}
}

// AdjustInventory registra un AJUSTE con delta firmado.
func (uc *MovementUseCase) AdjustInventory(ctx context.Context, tenantID, productID, userID string, delta int64, reason string) (*entity.InventoryRecord, error) {
	return uc.ApplyMovement(ctx, MovementInput{
		TenantID:  tenantID,
		ProductID: productID,
		UserID:    userID,
		Type:      entity.MovementAjuste,
		Quantity:  delta,
		Reason:    reason,
	})
}

// SetQuantity lleva el saldo a target (conciliación) mediante un AJUSTE de (target - actual)
// calculado bajo el bloqueo. Si ya coincide no se registra movimiento.
func (uc *MovementUseCase) SetQuantity(ctx context.Context, tenantID, productID, userID string, target int64, reason string) (*entity.InventoryRecord, error) {
	if tenantID == "" || productID == "" || target < 0 {
		return nil, fmt.Errorf("conciliación: %w", domain.ErrInvalidInput)
	}
	if err := uc.ensureProduct(ctx, tenantID, productID); err != nil {
		return nil, err
	}
	var (
		rec     *entity.InventoryRecord
		applied bool
	)
	err := RetryOnConflict(ctx, uc.maxRetries, func() error {
		return uc.txRunner.Run(ctx, func(movRepo repository.InventoryMovementRepository, invRepo repository.InventoryRepository) error {
			r, err := lockRecord(ctx, invRepo, tenantID, productID)
			if err != nil {
				return err
			}
			rec, applied = r, false
			delta := target - r.Quantity
			if delta == 0 {
				return nil
			}
			in := MovementInput{TenantID: tenantID, ProductID: productID, UserID: userID, Type: entity.MovementAjuste, Quantity: delta, Reason: reason}
			if _, err := postMovement(ctx, movRepo, invRepo, r, in, delta, uc.now()); err != nil {
				return err
			}
			applied = true
			return nil
		})
	}, uc.onRetry("set_quantity"))
	if err != nil {
		uc.recorder.MovementRejected(entity.MovementAjuste, rejectReason(err))
		return nil, err
	}
	if applied {
		uc.recorder.MovementApplied(entity.MovementAjuste)
		uc.AfterCommit(ctx, tenantID, productID)
	}
	return rec, nil
}

// InitRecord crea el saldo de un producto. El stock inicial entra como ENTRADA
// para que la suma del libro coincida con el saldo desde el primer momento.
func (uc *MovementUseCase) InitRecord(ctx context.Context, in InitRecordInput) (*entity.InventoryRecord, error) {
	if in.TenantID == "" || in.ProductID == "" || in.InitialStock < 0 {
		return nil, fmt.Errorf("alta de inventario: %w", domain.ErrInvalidInput)
	}
	if err := validateThresholds(in.MinStock, in.MaxStock); err != nil {
		return nil, err
	}
	if err := uc.ensureProduct(ctx, in.TenantID, in.ProductID); err != nil {
		return nil, err
	}
	var rec *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(movRepo repository.InventoryMovementRepository, invRepo repository.InventoryRepository) error {
		existing, err := invRepo.Get(ctx, in.TenantID, in.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("inventario de %s: %w", in.ProductID, domain.ErrDuplicate)
		}
		now := uc.now()
		r := &entity.InventoryRecord{
			ID:        newID(),
			TenantID:  in.TenantID,
			ProductID: in.ProductID,
			MinStock:  in.MinStock,
			MaxStock:  in.MaxStock,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := invRepo.Create(ctx, r); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			mov := MovementInput{
				TenantID:  in.TenantID,
				ProductID: in.ProductID,
				UserID:    in.UserID,
				Type:      entity.MovementEntrada,
				Quantity:  in.InitialStock,
				Reason:    "estoque inicial",
			}
			if _, err := postMovement(ctx, movRepo, invRepo, r, mov, in.InitialStock, now); err != nil {
				return err
			}
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if in.InitialStock > 0 {
		uc.recorder.MovementApplied(entity.MovementEntrada)
	}
	uc.AfterCommit(ctx, in.TenantID, in.ProductID)
	return rec, nil
}

// UpdateThresholds cambia mínimo y máximo. La cantidad no es editable aquí.
func (uc *MovementUseCase) UpdateThresholds(ctx context.Context, tenantID, productID string, minStock int64, maxStock *int64) (*entity.InventoryRecord, error) {
	if tenantID == "" || productID == "" {
		return nil, fmt.Errorf("umbrales: %w", domain.ErrInvalidInput)
	}
	if err := validateThresholds(minStock, maxStock); err != nil {
		return nil, err
	}
	var rec *entity.InventoryRecord
	err := RetryOnConflict(ctx, uc.maxRetries, func() error {
		return uc.txRunner.Run(ctx, func(_ repository.InventoryMovementRepository, invRepo repository.InventoryRepository) error {
			r, err := lockRecord(ctx, invRepo, tenantID, productID)
			if err != nil {
				return err
			}
			r.MinStock = minStock
			r.MaxStock = maxStock
			r.UpdatedAt = uc.now()
			if err := invRepo.UpdateThresholds(ctx, r); err != nil {
				return err
			}
			rec = r
			return nil
		})
	}, uc.onRetry("update_thresholds"))
	if err != nil {
		return nil, err
	}
	uc.AfterCommit(ctx, tenantID, productID)
	return rec, nil
}

func (uc *MovementUseCase) validate(ctx context.Context, in MovementInput) (int64, error) {
	if in.TenantID == "" || in.ProductID == "" {
		return 0, fmt.Errorf("tenant y producto son obligatorios: %w", domain.ErrInvalidInput)
	}
	delta, err := domaininv.SignedDelta(in.Type, in.Quantity)
	if err != nil {
		return 0, err
	}
	if err := uc.ensureProduct(ctx, in.TenantID, in.ProductID); err != nil {
		return 0, err
	}
	return delta, nil
}

func (uc *MovementUseCase) ensureProduct(ctx context.Context, tenantID, productID string) error {
	p, err := uc.productRepo.GetByID(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}

func (uc *MovementUseCase) onRetry(op string) func(error) {
	return func(err error) {
		uc.recorder.ConflictRetried(op)
		uc.log.Debug().Err(err).Str("op", op).Msg("conflicto, reintentando")
	}
}

func validateThresholds(minStock int64, maxStock *int64) error {
	if minStock < 0 {
		return fmt.Errorf("min_stock negativo: %w", domain.ErrInvalidInput)
	}
	if maxStock != nil && *maxStock < minStock {
		return fmt.Errorf("max_stock menor que min_stock: %w", domain.ErrInvalidInput)
	}
	return nil
}

// rejectReason etiqueta corta del error para métricas.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
