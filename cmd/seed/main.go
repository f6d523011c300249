// seed aplica el esquema y carga productos de demostración.
//
// Uso: go run ./cmd/seed [ruta/schema.sql]
// Por defecto busca scripts/schema.sql en el directorio actual.
// Lee la conexión de las mismas variables de entorno que la API (DB_*, DATABASE_URL).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Entradas-api/internal/domain/entity"
	"github.com/jhoicas/Entradas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Entradas-api/pkg/config"
)

func main() {
	schemaPath := "scripts/schema.sql"
	if len(os.Args) > 1 {
		schemaPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer esquema: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		fmt.Fprintf(os.Stderr, "Aplicar esquema: %v\n", err)
		os.Exit(1)
	}

	repo := postgres.NewProductRepository(pool)
	demo := []*entity.Product{
		{Description: "Teclado mecánico", Cost: dec("85.00"), Price: dec("129.90")},
		{Description: "Mouse inalámbrico", Cost: dec("22.50"), Price: dec("39.90")},
		{Description: "Monitor 24\"", Cost: dec("410.00"), Price: dec("599.00")},
	}
	for _, p := range demo {
		if err := repo.Create(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "Insertar producto %q: %v\n", p.Description, err)
			os.Exit(1)
		}
		fmt.Printf("producto %d: %s\n", p.ID, p.Description)
	}
	fmt.Println("esquema aplicado y datos de demostración cargados")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
