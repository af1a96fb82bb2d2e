// Package seed catálogo de demostración para entornos locales.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// Item producto de demostración con sus umbrales de stock.
type Item struct {
	SKU          string
	Barcode      string
	Name         string
	Unit         string
	InitialStock int64
	MinStock     int64
	MaxStock     *int64
}

func ptr(v int64) *int64 { return &v }

// DemoItems catálogo fijo; algunos quedan bajo el mínimo a propósito para ver alertas.
var DemoItems = []Item{
	{SKU: "CAFE-500", Barcode: "7891000100103", Name: "Café tostado 500g", Unit: "UN", InitialStock: 40, MinStock: 10, MaxStock: ptr(120)},
	{SKU: "ACUCAR-1K", Barcode: "7896019100015", Name: "Azúcar refinada 1kg", Unit: "UN", InitialStock: 8, MinStock: 12},
	{SKU: "LEITE-1L", Barcode: "7896004000014", Name: "Leche entera 1L", Unit: "UN", InitialStock: 60, MinStock: 24, MaxStock: ptr(50)},
	{SKU: "PAO-FORMA", Name: "Pan de molde", Unit: "UN", InitialStock: 0, MinStock: 5},
	{SKU: "ARROZ-5K", Barcode: "7896006711117", Name: "Arroz tipo 1 5kg", Unit: "UN", InitialStock: 25, MinStock: 5},
}

// ProductWriter alta de productos en el catálogo.
type ProductWriter interface {
	Create(ctx context.Context, p *entity.Product) error
}

// ProductFromItem producto nuevo del tenant con id determinístico por SKU.
func ProductFromItem(tenantID string, it Item, now time.Time) *entity.Product {
	return &entity.Product{
		ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(tenantID+"/"+it.SKU)).String(),
		TenantID:  tenantID,
		SKU:       it.SKU,
		Barcode:   it.Barcode,
		Name:      it.Name,
		Unit:      it.Unit,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Load crea los productos y su inventario inicial. Reejecutar no duplica: lo existente se omite.
func Load(ctx context.Context, products ProductWriter, engine *inventory.MovementUseCase, tenantID, userID string) (int, error) {
	now := time.Now().UTC()
	created := 0
	for _, it := range DemoItems {
		p := ProductFromItem(tenantID, it, now)
		if err := products.Create(ctx, p); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return created, fmt.Errorf("producto %s: %w", it.SKU, err)
		}
		_, err := engine.InitRecord(ctx, inventory.InitRecordInput{
			TenantID:     tenantID,
			ProductID:    p.ID,
			UserID:       userID,
			InitialStock: it.InitialStock,
			MinStock:     it.MinStock,
			MaxStock:     it.MaxStock,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("inventario %s: %w", it.SKU, err)
		}
		created++
	}
	return created, nil
}
