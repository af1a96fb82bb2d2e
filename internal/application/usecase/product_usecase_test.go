package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/application/usecase"
	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/memory"
)

func newCatalog(t *testing.T) (*usecase.ProductUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	engine := inventory.NewMovementUseCase(store, store.Products(), nil, nil, zerolog.Nop(), inventory.DefaultMaxRetries)
	return usecase.NewProductUseCase(store.Products(), engine), store
}

func TestProductUseCase_CreateConSaldoInicial(t *testing.T) {
	uc, store := newCatalog(t)
	ctx := context.Background()
	maxStock := int64(30)

	out, err := uc.Create(ctx, "t1", "u1", dto.CreateProductRequest{
		SKU: " CAFE-250 ", Name: "Café 250g", Unit: "unit", InitialStock: 12, MinStock: 4, MaxStock: &maxStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAFE-250", out.SKU)
	assert.Equal(t, "UNIT", out.Unit)
	require.NotNil(t, out.Inventory)
	assert.Equal(t, int64(12), out.Inventory.Quantity)
	assert.Equal(t, "CAFE-250", out.Inventory.ProductSKU)

	sum, err := store.Movements().SumDelta(ctx, "t1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), sum, "el stock inicial queda en el libro")

	got, err := uc.GetByID(ctx, "t1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Café 250g", got.Name)
	_, err = uc.GetByID(ctx, "t2", out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_Validaciones(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	lowMax := int64(1)

	tests := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"sin sku", dto.CreateProductRequest{Name: "x"}, domain.ErrInvalidInput},
		{"unidad desconocida", dto.CreateProductRequest{SKU: "A", Name: "x", Unit: "BARRIL"}, domain.ErrInvalidInput},
		{"stock negativo", dto.CreateProductRequest{SKU: "A", Name: "x", InitialStock: -1}, domain.ErrInvalidInput},
		{"max menor que min", dto.CreateProductRequest{SKU: "A", Name: "x", MinStock: 5, MaxStock: &lowMax}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, "t1", "u1", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := uc.Create(ctx, "t1", "u1", dto.CreateProductRequest{SKU: "A", Name: "x"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "t1", "u1", dto.CreateProductRequest{SKU: "A", Name: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, "t2", "u1", dto.CreateProductRequest{SKU: "A", Name: "y"})
	assert.NoError(t, err, "el SKU es único por tenant")
}

func TestProductUseCase_List(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	for _, sku := range []string{"C", "A", "B"} {
		_, err := uc.Create(ctx, "t1", "u1", dto.CreateProductRequest{SKU: sku, Name: "Producto " + sku})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, "t1", repository.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "A", out.Items[0].SKU)
	assert.Equal(t, "B", out.Items[1].SKU)
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, 2, out.Page.Pages)
}
