package repository

import (
	"context"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// ProductRepository vista de solo lectura del catálogo que usan el motor y las ventas.
type ProductRepository interface {
	// GetByID devuelve (nil, nil) si el producto no existe en el tenant.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error)
}

// ProductCatalogRepository alta y consulta del catálogo.
type ProductCatalogRepository interface {
	ProductRepository
	// Create falla con domain.ErrDuplicate si el SKU o el código de barras ya existen en el tenant.
	Create(ctx context.Context, p *entity.Product) error
	// GetBySKU devuelve (nil, nil) si no existe.
	GetBySKU(ctx context.Context, tenantID, sku string) (*entity.Product, error)
	// List productos del tenant ordenados por SKU.
	List(ctx context.Context, tenantID string, page Page) ([]*entity.Product, int, error)
}
