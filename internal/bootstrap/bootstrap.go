// Package bootstrap arma almacenamiento y casos de uso a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/analytics"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/seed"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// Container casos de uso listos para el router y los comandos.
type Container struct {
	ItemUC      *usecase.ItemUseCase
	LedgerUC    *inventory.LedgerUseCase
	DashboardUC *analytics.DashboardUseCase
	MISUC       *analytics.MISUseCase
	Seeder      *seed.Seeder

	closeFn func()
}

// Close libera el almacenamiento (pool de PostgreSQL).
func (c *Container) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

type stores struct {
	items   repository.ItemRepository
	inward  repository.InwardRepository
	outward repository.OutwardRepository
	tx      inventory.TxRunner
	close   func()
}

// Build abre el almacenamiento elegido por STORE_DRIVER y construye los casos de uso.
// now nil = time.Now.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, now func() time.Time) (*Container, error) {
	if now == nil {
		now = time.Now
	}
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	itemUC := usecase.NewItemUseCase(st.items, st.tx, cfg.Valuation.DefaultUnitCost)
	ledgerUC := inventory.NewLedgerUseCase(st.tx, st.inward, st.outward, inventory.LedgerOptions{
		StrictItems: cfg.Ledger.StrictItems,
		Now:         now,
	}, log.Named("ledger"))
	src := analytics.Sources{Items: st.items, Inward: st.inward, Outward: st.outward}

	return &Container{
		ItemUC:      itemUC,
		LedgerUC:    ledgerUC,
		DashboardUC: analytics.NewDashboardUseCase(src, now),
		MISUC: analytics.NewMISUseCase(src, analytics.MISOptions{
			Window:       cfg.MIS.Window(),
			SummaryTopN:  cfg.MIS.SummaryTopN,
			VelocityTopN: cfg.MIS.VelocityTopN,
			Now:          now,
		}),
		Seeder:  seed.NewSeeder(itemUC, ledgerUC, log.Named("seed")),
		closeFn: st.close,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		s := memory.NewStore()
		log.Info().Str("driver", cfg.Store.Driver).Msg("almacenamiento en memoria")
		return &stores{items: s.Items(), inward: s.Inward(), outward: s.Outward(), tx: s, close: func() {}}, nil
	case config.StoreDriverPostgres:
		if cfg.Store.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Named("migrate")); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		log.Info().Str("driver", cfg.Store.Driver).Msg("almacenamiento PostgreSQL")
		return &stores{
			items:   postgres.NewItemRepository(pool),
			inward:  postgres.NewInwardRepository(pool),
			outward: postgres.NewOutwardRepository(pool),
			tx:      postgres.NewTxRunner(pool),
			close:   pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER no soportado: %q", cfg.Store.Driver)
	}
}
