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

var _ AlertEvaluator = (*AlertMonitor)(nil)

// AlertMonitor deriva alertas a partir del saldo y los umbrales.
// A lo sumo una alerta abierta por (tenant, producto, tipo); el índice único parcial lo respalda.
type AlertMonitor struct {
	invRepo   repository.InventoryRepository
	alertRepo repository.StockAlertRepository
	recorder  Recorder
	log       zerolog.Logger
	now       func() time.Time
}

// NewAlertMonitor construye el monitor.
func NewAlertMonitor(invRepo repository.InventoryRepository, alertRepo repository.StockAlertRepository, recorder Recorder, log zerolog.Logger) *AlertMonitor {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &AlertMonitor{
		invRepo:   invRepo,
		alertRepo: alertRepo,
		recorder:  recorder,
		log:       log,
		now:       time.Now,
	}
}

// Evaluate levanta las alertas cuya condición se cumple y no están abiertas, y resuelve las
// abiertas cuya condición ya no se cumple. Devuelve las alertas que cambiaron.
// EXPIRED no se toca.
func (m *AlertMonitor) Evaluate(ctx context.Context, tenantID, productID string) ([]*entity.StockAlert, error) {
	rec, err := m.invRepo.Get(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("inventario de %s: %w", productID, domain.ErrNotFound)
	}

	want := make(map[entity.AlertType]bool)
	for _, t := range domaininv.AlertConditions(rec) {
		want[t] = true
	}
	open, err := m.alertRepo.ListOpenByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	var changed []*entity.StockAlert
	now := m.now()
	isOpen := make(map[entity.AlertType]bool, len(open))
	for _, a := range open {
		isOpen[a.AlertType] = true
		if !a.AlertType.AutoManaged() || want[a.AlertType] {
			continue
		}
		if err := m.alertRepo.Resolve(ctx, tenantID, a.ID, now); err != nil {
			return changed, err
		}
		a.IsResolved = true
		a.ResolvedAt = &now
		changed = append(changed, a)
		m.recorder.AlertResolved(a.AlertType)
	}

	for _, t := range domaininv.AlertConditions(rec) {
		if isOpen[t] {
			continue
		}
		alert := &entity.StockAlert{
			ID:        newID(),
			TenantID:  tenantID,
			ProductID: productID,
			AlertType: t,
			Message:   domaininv.AlertMessage(t, rec),
			CreatedAt: now,
		}
		if err := m.alertRepo.Create(ctx, alert); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				// otra evaluación concurrente ya la abrió
				continue
			}
			return changed, err
		}
		changed = append(changed, alert)
		m.recorder.AlertRaised(t)
	}
	return changed, nil
}

// MonitorAll evalúa todos los productos con saldo del tenant. Un fallo en un producto no
// detiene el resto; los errores se acumulan.
func (m *AlertMonitor) MonitorAll(ctx context.Context, tenantID string) ([]*entity.StockAlert, error) {
	ids, err := m.invRepo.ListProductIDs(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	var (
		changed []*entity.StockAlert
		errs    []error
	)
	for _, pid := range ids {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		c, err := m.Evaluate(ctx, tenantID, pid)
		changed = append(changed, c...)
		if err != nil {
			errs = append(errs, fmt.Errorf("producto %s: %w", pid, err))
		}
	}
	return changed, errors.Join(errs...)
}

// EvaluateAlerts evalúa un producto o, con productID vacío, todo el tenant.
func (m *AlertMonitor) EvaluateAlerts(ctx context.Context, tenantID, productID string) ([]*entity.StockAlert, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant obligatorio: %w", domain.ErrInvalidInput)
	}
	if productID == "" {
		return m.MonitorAll(ctx, tenantID)
	}
	return m.Evaluate(ctx, tenantID, productID)
}

// MarkRead marca la alerta como leída.
func (m *AlertMonitor) MarkRead(ctx context.Context, tenantID, alertID string) (*entity.StockAlert, error) {
	a, err := m.getAlert(ctx, tenantID, alertID)
	if err != nil {
		return nil, err
	}
	if a.IsRead {
		return a, nil
	}
	if err := m.alertRepo.MarkRead(ctx, tenantID, alertID); err != nil {
		return nil, err
	}
	a.IsRead = true
	return a, nil
}

// Resolve cierra la alerta por decisión del operador. Resolver una alerta ya resuelta no la cambia.
func (m *AlertMonitor) Resolve(ctx context.Context, tenantID, alertID string) (*entity.StockAlert, error) {
	a, err := m.getAlert(ctx, tenantID, alertID)
	if err != nil {
		return nil, err
	}
	if a.IsResolved {
		return a, nil
	}
	now := m.now()
	if err := m.alertRepo.Resolve(ctx, tenantID, alertID, now); err != nil {
		return nil, err
	}
	a.IsResolved = true
	a.ResolvedAt = &now
	m.recorder.AlertResolved(a.AlertType)
	return a, nil
}

// List alertas del tenant con filtros.
func (m *AlertMonitor) List(ctx context.Context, tenantID string, filter repository.AlertFilter, page repository.Page) ([]*entity.StockAlert, int, error) {
	if filter.AlertType != "" && !filter.AlertType.Valid() {
		return nil, 0, fmt.Errorf("tipo de alerta %q: %w", filter.AlertType, domain.ErrInvalidInput)
	}
	return m.alertRepo.List(ctx, tenantID, filter, page.Normalize())
}

func (m *AlertMonitor) getAlert(ctx context.Context, tenantID, alertID string) (*entity.StockAlert, error) {
	a, err := m.alertRepo.GetByID(ctx, tenantID, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("alerta %s: %w", alertID, domain.ErrNotFound)
	}
	return a, nil
}
