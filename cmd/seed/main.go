// seed carga el catálogo de demostración con su inventario inicial en PostgreSQL.
//
// Uso: go run ./cmd/seed [tenant_id]
// Por defecto usa DEMO_TENANT_ID. Reejecutar no duplica productos ni saldos.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/seed"
	"github.com/jhoicas/pos-inventory/pkg/config"
	"github.com/jhoicas/pos-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tenantID := cfg.App.DemoTenantID
	if len(os.Args) > 1 {
		tenantID = os.Args[1]
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	ctx := context.Background()

	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), "up"); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	zl := log.Zerolog()
	monitor := inventory.NewAlertMonitor(postgres.NewInventoryRepository(pool), postgres.NewStockAlertRepository(pool), nil, zl)
	engine := inventory.NewMovementUseCase(postgres.NewTxRunner(pool), postgres.NewProductRepository(pool), monitor, nil, zl, cfg.Ledger.MaxRetries)

	n, err := seed.Load(ctx, postgres.NewProductRepository(pool), engine, tenantID, "seed")
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	log.Info().Int("productos", n).Str("tenant_id", tenantID).Msg("catálogo demo cargado")
}
