// Package storage selecciona el adaptador de persistencia según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Storage puertos de persistencia listos para inyectar en los casos de uso.
type Storage struct {
	TxRunner  ledger.TxRunner
	Items     repository.ItemRepository
	Movements repository.MovementRepository
	Reports   repository.ReportRepository

	closeFn func()
}

// Close libera conexiones. Seguro de llamar más de una vez.
func (s *Storage) Close() {
	if s.closeFn != nil {
		s.closeFn()
		s.closeFn = nil
	}
}

// Open abre el almacenamiento configurado y aplica el esquema si cfg.Migrate.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.Info().Str("driver", cfg.Driver).Msg("almacenamiento listo")
		return &Storage{
			TxRunner:  postgres.NewTxRunner(pool),
			Items:     postgres.NewItemRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Reports:   postgres.NewReportRepository(pool),
			closeFn:   pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("almacenamiento listo")
		return &Storage{
			TxRunner:  sqlite.NewTxRunner(db),
			Items:     sqlite.NewItemRepository(db),
			Movements: sqlite.NewMovementRepository(db),
			Reports:   sqlite.NewReportRepository(db),
			closeFn:   func() { _ = db.Close() },
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn().Str("driver", cfg.Driver).Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Storage{
			TxRunner:  store,
			Items:     store.Items(),
			Movements: store.Movements(),
			Reports:   store.Reports(),
		}, nil
	}
	return nil, fmt.Errorf("driver de base de datos desconocido: %q", cfg.Driver)
}
