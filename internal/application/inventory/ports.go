package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún efecto es visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		invRepo repository.InventoryRepository,
	) error) error
}

// AlertEvaluator reevalúa las alertas de un producto tras un commit.
type AlertEvaluator interface {
	Evaluate(ctx context.Context, tenantID, productID string) ([]*entity.StockAlert, error)
}

// Recorder recibe eventos del motor para métricas.
type Recorder interface {
	MovementApplied(t entity.MovementType)
	MovementRejected(t entity.MovementType, reason string)
	ConflictRetried(op string)
	AlertRaised(t entity.AlertType)
	AlertResolved(t entity.AlertType)
}

// ReportPDFGenerator renderiza el resumen de inventario.
type ReportPDFGenerator interface {
	Generate(report *dto.InventoryReportDTO) ([]byte, error)
}

// SweepLocker candado distribuido para que un solo proceso haga el barrido por intervalo.
type SweepLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// NopRecorder descarta los eventos.
type NopRecorder struct{}

func (NopRecorder) MovementApplied(entity.MovementType) {}
func (NopRecorder) MovementRejected(entity.MovementType, string) {}
func (NopRecorder) ConflictRetried(string) {}
func (NopRecorder) AlertRaised(entity.AlertType) {}
func (NopRecorder) AlertResolved(entity.AlertType) {}
