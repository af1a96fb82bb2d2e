// migrate aplica las migraciones goose embebidas.
//
// Uso: go run ./cmd/migrate [up|down|reset|status|version]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/pos-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-inventory/pkg/config"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(context.Background(), cfg.DB.ConnectionString(), command); err != nil {
		fmt.Fprintf(os.Stderr, "Migrar: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("migración %q completada\n", command)
}
