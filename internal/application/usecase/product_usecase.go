package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// StockInitializer crea el saldo de un producto nuevo.
type StockInitializer interface {
	InitRecord(ctx context.Context, in inventory.InitRecordInput) (*entity.InventoryRecord, error)
}

// ProductUseCase catálogo mínimo. La cantidad en stock solo cambia vía movimientos.
type ProductUseCase struct {
	repo  repository.ProductCatalogRepository
	stock StockInitializer
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductCatalogRepository, stock StockInitializer) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock, now: time.Now}
}

// Create da de alta el producto y su saldo inicial (el stock inicial queda como ENTRADA en el libro).
func (uc *ProductUseCase) Create(ctx context.Context, tenantID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("sku y name son requeridos: %w", domain.ErrInvalidInput)
	}
	if in.Unit == "" {
		in.Unit = entity.UnitUnit
	}
	in.Unit = strings.ToUpper(in.Unit)
	if !entity.ValidUnit(in.Unit) {
		return nil, fmt.Errorf("unidad %q: %w", in.Unit, domain.ErrInvalidInput)
	}
	if in.InitialStock < 0 || in.MinStock < 0 || (in.MaxStock != nil && *in.MaxStock < in.MinStock) {
		return nil, fmt.Errorf("stock inicial o umbrales: %w", domain.ErrInvalidInput)
	}

	existing, err := uc.repo.GetBySKU(ctx, tenantID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("sku %s: %w", in.SKU, domain.ErrDuplicate)
	}

	now := uc.now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		SKU:       in.SKU,
		Barcode:   strings.TrimSpace(in.Barcode),
		Name:      in.Name,
		Unit:      in.Unit,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	rec, err := uc.stock.InitRecord(ctx, inventory.InitRecordInput{
		TenantID:     tenantID,
		ProductID:    product.ID,
		UserID:       userID,
		InitialStock: in.InitialStock,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
	})
	if err != nil {
		return nil, fmt.Errorf("saldo inicial de %s: %w", product.ID, err)
	}

	out := dto.ProductFromEntity(product)
	recDTO := dto.InventoryRecordFromEntity(rec)
	recDTO.ProductName, recDTO.ProductSKU = product.Name, product.SKU
	out.Inventory = &recDTO
	return &out, nil
}

// GetByID obtiene un producto del tenant.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// List lista productos del tenant con paginación.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string, page repository.Page) (*dto.ProductListResponse, error) {
	page = page.Normalize()
	list, total, err := uc.repo.List(ctx, tenantID, page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFromEntity(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page.Page, page.Limit, total),
	}, nil
}
