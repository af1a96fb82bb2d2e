package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/application/sales"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/seed"
	"github.com/jhoicas/pos-inventory/pkg/config"
	"github.com/jhoicas/pos-inventory/pkg/logger"
)

// storage repositorios fuera de tx y ejecutores de tx del backend elegido.
type storage struct {
	tx        inventory.TxRunner
	saleTx    sales.SaleTxRunner
	products  repository.ProductCatalogRepository
	inventory repository.InventoryRepository
	movements repository.InventoryMovementRepository
	alerts    repository.StockAlertRepository
	sales     repository.SaleRepository

	// seedDemo carga el catálogo demo (solo modo memory).
	seedDemo func(ctx context.Context, engine *inventory.MovementUseCase) (int, error)
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.App.Storage {
	case "memory":
		log.Warn().Msg("APP_STORAGE=memory: los datos no persisten entre reinicios")
		store := memory.NewStore()
		return &storage{
			tx:        store,
			saleTx:    store,
			products:  store.Products(),
			inventory: store.Inventory(),
			movements: store.Movements(),
			alerts:    store.Alerts(),
			sales:     store.Sales(),
			seedDemo: func(ctx context.Context, engine *inventory.MovementUseCase) (int, error) {
				return seed.Load(ctx, store.Products(), engine, cfg.App.DemoTenantID, "seed")
			},
			close: func() {},
		}, nil
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), "up"); err != nil {
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &storage{
			tx:        postgres.NewTxRunner(pool),
			saleTx:    postgres.NewTxRunner(pool),
			products:  postgres.NewProductRepository(pool),
			inventory: postgres.NewInventoryRepository(pool),
			movements: postgres.NewInventoryMovementRepository(pool),
			alerts:    postgres.NewStockAlertRepository(pool),
			sales:     postgres.NewSaleRepository(pool),
			close:     pool.Close,
		}, nil
	}
}
