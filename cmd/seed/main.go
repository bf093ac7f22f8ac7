// seed carga el catálogo inicial de items.
//
// Uso: go run ./cmd/seed [--csv items.csv [--latin1]]
// Sin --csv carga el catálogo de demostración. Los códigos existentes se omiten,
// así que ejecutarlo dos veces no duplica nada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	csvPath := pflag.String("csv", "", "archivo CSV code,name,purchase_price,sale_price,category,stock")
	latin1 := pflag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "stock-ledger-seed"})

	catalog := defaultCatalog()
	if *csvPath != "" {
		f, err := os.Open(*csvPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *csvPath).Msg("abrir CSV")
		}
		catalog, err = readCatalog(f, *latin1)
		_ = f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("leer CSV")
		}
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	uc := usecase.NewItemUseCase(store.TxRunner, store.Items, log)
	created, skipped, err := seed(ctx, uc, catalog)
	if err != nil {
		log.Error().Err(err).Msg("seed interrumpido")
		store.Close()
		os.Exit(1)
	}
	log.Info().Int("creados", created).Int("omitidos", skipped).Msg("seed completado")
}

// seed crea cada item vía el registro (el stock inicial queda como movimiento de entrada).
func seed(ctx context.Context, uc *usecase.ItemUseCase, catalog []dto.CreateItemRequest) (created, skipped int, err error) {
	for _, in := range catalog {
		if _, err := uc.Create(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicateCode) {
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("item %s: %w", in.Code, err)
		}
		created++
	}
	return created, skipped, nil
}
