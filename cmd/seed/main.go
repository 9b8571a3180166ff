// seed crea el esquema y siembra los datos demo (seis usuarios con contraseña
// fija y el catálogo inicial) si las tablas están vacías.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_HOST, etc.).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/cafe-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/cafe-stock/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "crear esquema: %v\n", err)
		os.Exit(1)
	}
	if err := postgres.SeedDemo(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "seed demo: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("esquema y datos demo listos")
}
