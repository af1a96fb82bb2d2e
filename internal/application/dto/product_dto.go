package dto

import (
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// CreateProductRequest alta de producto con su saldo inicial y umbrales.
type CreateProductRequest struct {
	SKU          string `json:"sku"`
	Barcode      string `json:"barcode,omitempty"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	InitialStock int64  `json:"initial_stock"`
	MinStock     int64  `json:"min_stock"`
	MaxStock     *int64 `json:"max_stock,omitempty"`
}

// ProductResponse salida de un producto. Inventory solo viene en el alta.
type ProductResponse struct {
	ID        string              `json:"id"`
	SKU       string              `json:"sku"`
	Barcode   string              `json:"barcode,omitempty"`
	Name      string              `json:"name"`
	Unit      string              `json:"unit"`
	IsActive  bool                `json:"is_active"`
	Inventory *InventoryRecordDTO `json:"inventory,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ProductFromEntity convierte la entidad a su DTO.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Barcode:   p.Barcode,
		Name:      p.Name,
		Unit:      p.Unit,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
