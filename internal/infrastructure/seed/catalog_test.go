package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/seed"
)

func TestLoad_CreaCatalogoEInventario(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	monitor := inventory.NewAlertMonitor(store.Inventory(), store.Alerts(), nil, zerolog.Nop())
	engine := inventory.NewMovementUseCase(store, store.Products(), monitor, nil, zerolog.Nop(), inventory.DefaultMaxRetries)

	n, err := seed.Load(ctx, store.Products(), engine, "demo", "seed")
	require.NoError(t, err)
	assert.Equal(t, len(seed.DemoItems), n)

	// reejecutar no duplica
	n, err = seed.Load(ctx, store.Products(), engine, "demo", "seed")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, total, err := store.Inventory().List(ctx, "demo", repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, len(seed.DemoItems), total)

	open, _, err := store.Alerts().List(ctx, "demo", repository.AlertFilter{}, repository.Page{Limit: 100})
	require.NoError(t, err)
	types := map[entity.AlertType]int{}
	for _, a := range open {
		types[a.AlertType]++
	}
	assert.Equal(t, 1, types[entity.AlertOutOfStock], "pan de molde sin stock")
	assert.Equal(t, 1, types[entity.AlertLowStock], "azúcar bajo el mínimo")
	assert.Equal(t, 1, types[entity.AlertOverstock], "leche sobre el máximo")
}

func TestProductFromItem_IDDeterministico(t *testing.T) {
	now := time.Now()
	a := seed.ProductFromItem("t1", seed.DemoItems[0], now)
	b := seed.ProductFromItem("t1", seed.DemoItems[0], now)
	c := seed.ProductFromItem("t2", seed.DemoItems[0], now)
	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
}
