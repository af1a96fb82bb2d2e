package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// AlertFilter filtros opcionales del listado de alertas.
type AlertFilter struct {
	ProductID  string
	AlertType  entity.AlertType
	IsRead     *bool
	IsResolved *bool
}

// StockAlertRepository puerto de persistencia de alertas de stock.
type StockAlertRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe una alerta abierta del mismo (producto, tipo).
	Create(ctx context.Context, alert *entity.StockAlert) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.StockAlert, error)
	ListOpenByProduct(ctx context.Context, tenantID, productID string) ([]*entity.StockAlert, error)
	List(ctx context.Context, tenantID string, filter AlertFilter, page Page) ([]*entity.StockAlert, int, error)
	MarkRead(ctx context.Context, tenantID, id string) error
	Resolve(ctx context.Context, tenantID, id string, at time.Time) error
	CountOpen(ctx context.Context, tenantID string) (int, error)
}
