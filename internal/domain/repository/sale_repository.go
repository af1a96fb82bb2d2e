package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	Status        entity.SaleStatus
	PaymentMethod entity.PaymentMethod
	DateFrom      *time.Time
	DateTo        *time.Time
}

// SaleRepository puerto de persistencia de ventas (cabecera + líneas).
type SaleRepository interface {
	// Create inserta la venta y sus líneas; asigna SaleNumber.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera de la venta; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, tenantID string, filter SaleFilter, page Page) ([]*entity.Sale, int, error)
}
