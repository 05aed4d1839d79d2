//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bodega-api/pkg/config"
)

// newTestDB levanta PostgreSQL en un contenedor, aplica migraciones y devuelve la configuración.
func newTestDB(t *testing.T) config.DBConfig {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("bodega_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor PostgreSQL")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, postgres.Migrate(dsn, zerolog.Nop()))
	require.NoError(t, postgres.Migrate(dsn, zerolog.Nop()), "migrar dos veces no es error")

	return config.DBConfig{DatabaseURL: dsn, MaxConns: 5, MinConns: 1, MaxConnLifetime: time.Hour, MaxConnIdleTime: time.Minute}
}

func TestPostgres_LedgerCompleto(t *testing.T) {
	cfg := newTestDB(t)
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	items := postgres.NewItemRepository(pool)
	inwardRepo := postgres.NewInwardRepository(pool)
	outwardRepo := postgres.NewOutwardRepository(pool)

	item := &entity.InventoryItem{
		SKU: "EL001", Name: "Wireless Mouse", Category: "Electronics", Location: "Rack A1",
		Quantity: 10, MinQuantity: 5, UnitCost: decimal.NewFromInt(10), CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, items.Create(ctx, item))
	assert.NotZero(t, item.ID)

	dup := *item
	assert.True(t, errors.Is(items.Create(ctx, &dup), domain.ErrDuplicate))

	found, err := items.List(ctx, entity.ItemFilter{Search: "MOUSE", Status: "in_stock"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	none, err := items.List(ctx, entity.ItemFilter{Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, none, "los comodines de LIKE se buscan literalmente")

	uc := inventory.NewLedgerUseCase(postgres.NewTxRunner(pool), inwardRepo, outwardRepo, inventory.LedgerOptions{}, zerolog.Nop())

	cost := decimal.NewFromInt(20)
	in, err := uc.CreateInward(ctx, dto.CreateInwardRequest{
		GRNNo: "GRN-1", Supplier: "Tech Supplies Inc",
		Items: []dto.MovementLineDTO{{ItemID: item.ID, Quantity: 10, UnitCost: &cost}, {ItemID: 999, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.AdjustmentSkippedNotFound, in.Adjustments[1].Status)

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Quantity)
	assert.True(t, got.UnitCost.Equal(decimal.NewFromInt(15)), "costo %s", got.UnitCost)
	require.NotNil(t, got.LastMovedAt)

	_, err = uc.CreateOutward(ctx, dto.CreateOutwardRequest{
		DispatchNo: "DSP-1", Customer: "Acme Corp",
		Items: []dto.MovementLineDTO{{ItemID: item.ID, Quantity: 25}},
	})
	require.NoError(t, err)
	got, err = items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	_, err = uc.CreateOutward(ctx, dto.CreateOutwardRequest{
		DispatchNo: "DSP-1", Customer: "Acme Corp",
		Items: []dto.MovementLineDTO{{ItemID: item.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	entries, err := inwardRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Items, 2)
	require.NotNil(t, entries[0].Items[0].UnitCost)
	assert.True(t, entries[0].Items[0].UnitCost.Equal(cost))
	assert.Equal(t, 11, entries[0].TotalItems)
}

func TestPostgres_RollbackEnModoEstricto(t *testing.T) {
	cfg := newTestDB(t)
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	items := postgres.NewItemRepository(pool)
	item := &entity.InventoryItem{
		SKU: "EL001", Name: "Wireless Mouse", Category: "Electronics", Location: "Rack A1",
		MinQuantity: 5, UnitCost: decimal.NewFromInt(10), CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, items.Create(ctx, item))

	uc := inventory.NewLedgerUseCase(postgres.NewTxRunner(pool),
		postgres.NewInwardRepository(pool), postgres.NewOutwardRepository(pool),
		inventory.LedgerOptions{StrictItems: true}, zerolog.Nop())

	_, err = uc.CreateInward(ctx, dto.CreateInwardRequest{
		GRNNo: "GRN-1", Supplier: "s",
		Items: []dto.MovementLineDTO{{ItemID: item.ID, Quantity: 5}, {ItemID: 999, Quantity: 1}},
	})
	require.Error(t, err)

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	entry, err := postgres.NewInwardRepository(pool).GetByGRN(ctx, "GRN-1")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestPostgres_CantidadesGrandes(t *testing.T) {
	cfg := newTestDB(t)
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	items := postgres.NewItemRepository(pool)
	item := &entity.InventoryItem{
		SKU: "BULK01", Name: "Tornillo", Category: "Hardware", Location: "Rack Z9",
		MinQuantity: 5, UnitCost: decimal.NewFromInt(1), CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, items.Create(ctx, item))

	uc := inventory.NewLedgerUseCase(postgres.NewTxRunner(pool),
		postgres.NewInwardRepository(pool), postgres.NewOutwardRepository(pool),
		inventory.LedgerOptions{}, zerolog.Nop())

	for _, grn := range []string{"GRN-BULK-1", "GRN-BULK-2"} {
		_, err := uc.CreateInward(ctx, dto.CreateInwardRequest{
			GRNNo: grn, Supplier: "Mayorista",
			Items: []dto.MovementLineDTO{{ItemID: item.ID, Quantity: 2_000_000_000}},
		})
		require.NoError(t, err, grn)
	}

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4_000_000_000, got.Quantity, "la suma supera el rango de int4")
}

func TestPostgres_UpdateArticuloBloqueaFila(t *testing.T) {
	cfg := newTestDB(t)
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	txRunner := postgres.NewTxRunner(pool)
	itemUC := usecase.NewItemUseCase(postgres.NewItemRepository(pool), txRunner, decimal.NewFromInt(10))
	created, err := itemUC.Create(ctx, dto.CreateItemRequest{
		SKU: "EL001", Name: "Wireless Mouse", Category: "Electronics", Location: "Rack A1",
	})
	require.NoError(t, err)

	ledger := inventory.NewLedgerUseCase(txRunner,
		postgres.NewInwardRepository(pool), postgres.NewOutwardRepository(pool),
		inventory.LedgerOptions{}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, err := ledger.CreateInward(ctx, dto.CreateInwardRequest{
				GRNNo: fmt.Sprintf("GRN-%02d", n), Supplier: "s",
				Items: []dto.MovementLineDTO{{ItemID: created.ID, Quantity: 3}},
			})
			assert.NoError(t, err)
		}(i)
		go func(n int) {
			defer wg.Done()
			_, err := itemUC.Update(ctx, created.ID, dto.UpdateItemRequest{Location: strPtr(fmt.Sprintf("Rack %d", n))})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := itemUC.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Quantity)
}

func strPtr(s string) *string { return &s }
