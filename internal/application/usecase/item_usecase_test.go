package usecase_test

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

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	appinv "github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/memory"
)

func newItemUC() *usecase.ItemUseCase {
	store := memory.NewStore()
	return usecase.NewItemUseCase(store.Items(), store, decimal.NewFromInt(10))
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func createItem(t *testing.T, uc *usecase.ItemUseCase, sku, name, category string, qty, minQty int) *dto.ItemResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateItemRequest{
		SKU: sku, Name: name, Category: category, Location: "Rack A1",
		Quantity: intPtr(qty), MinQuantity: intPtr(minQty),
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_ValoresPorDefecto(t *testing.T) {
	uc := newItemUC()

	out, err := uc.Create(context.Background(), dto.CreateItemRequest{
		SKU: "EL001", Name: "Wireless Mouse", Category: "Electronics", Location: "Rack A1",
	})
	require.NoError(t, err)

	assert.NotZero(t, out.ID)
	assert.Equal(t, 0, out.Quantity)
	assert.Equal(t, 5, out.MinQuantity)
	assert.True(t, out.UnitCost.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "out_of_stock", out.Status)
	assert.Nil(t, out.LastMovedAt)
	assert.False(t, out.CreatedAt.IsZero())
}

func TestItemCreate_SKUDuplicado(t *testing.T) {
	uc := newItemUC()
	createItem(t, uc, "EL001", "Wireless Mouse", "Electronics", 50, 10)

	_, err := uc.Create(context.Background(), dto.CreateItemRequest{
		SKU: "EL001", Name: "Otro", Category: "Electronics", Location: "Rack A2",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "sku", verr.Field)
}

func TestItemCreate_CamposRequeridos(t *testing.T) {
	uc := newItemUC()
	cases := []struct {
		name  string
		in    dto.CreateItemRequest
		field string
	}{
		{"sin sku", dto.CreateItemRequest{Name: "n", Category: "c", Location: "l"}, "sku"},
		{"sin nombre", dto.CreateItemRequest{SKU: "s", Category: "c", Location: "l"}, "name"},
		{"sin categoría", dto.CreateItemRequest{SKU: "s", Name: "n", Location: "l"}, "category"},
		{"sin ubicación", dto.CreateItemRequest{SKU: "s", Name: "n", Category: "c"}, "location"},
		{"cantidad negativa", dto.CreateItemRequest{SKU: "s", Name: "n", Category: "c", Location: "l", Quantity: intPtr(-1)}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// List / Get
// ──────────────────────────────────────────────────────────────────────────────

func TestItemList_FiltrosYOrden(t *testing.T) {
	uc := newItemUC()
	ctx := context.Background()
	createItem(t, uc, "EL001", "Wireless Mouse", "Electronics", 50, 10)
	createItem(t, uc, "EL002", "Mechanical Keyboard", "Electronics", 3, 5)
	createItem(t, uc, "FU003", "Filing Cabinet", "Furniture", 0, 2)

	all, err := uc.List(ctx, dto.ListItemsRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "FU003", all[0].SKU, "el más reciente primero")
	assert.Equal(t, "EL001", all[2].SKU)

	again, err := uc.List(ctx, dto.ListItemsRequest{})
	require.NoError(t, err)
	assert.Equal(t, all, again, "listar no modifica el catálogo")

	bySearch, err := uc.List(ctx, dto.ListItemsRequest{Search: "MOUSE"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "EL001", bySearch[0].SKU)

	bySKU, err := uc.List(ctx, dto.ListItemsRequest{Search: "el00"})
	require.NoError(t, err)
	assert.Len(t, bySKU, 2)

	low, err := uc.List(ctx, dto.ListItemsRequest{Status: "low_stock"})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "EL002", low[0].SKU)

	none, err := uc.List(ctx, dto.ListItemsRequest{Search: "mouse", Status: "out_of_stock"})
	require.NoError(t, err)
	assert.Empty(t, none, "search y status se combinan con AND")

	_, err = uc.List(ctx, dto.ListItemsRequest{Status: "unknown"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestItemGetByID_NoExiste(t *testing.T) {
	uc := newItemUC()
	out, err := uc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUpdate_Parcial(t *testing.T) {
	uc := newItemUC()
	ctx := context.Background()
	created := createItem(t, uc, "EL001", "Wireless Mouse", "Electronics", 50, 10)

	cost := decimal.RequireFromString("12.5")
	out, err := uc.Update(ctx, created.ID, dto.UpdateItemRequest{
		Location: strPtr("Rack B2"),
		Quantity: intPtr(4),
		UnitCost: &cost,
		SKU:      strPtr("EL001"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rack B2", out.Location)
	assert.Equal(t, "Wireless Mouse", out.Name, "los campos ausentes no cambian")
	assert.Equal(t, 4, out.Quantity)
	assert.Equal(t, "low_stock", out.Status)
	assert.True(t, out.UnitCost.Equal(cost))

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, out, got)
}

func TestItemUpdate_NoExiste(t *testing.T) {
	uc := newItemUC()
	_, err := uc.Update(context.Background(), 99, dto.UpdateItemRequest{Name: strPtr("x")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemUpdate_SKUInmutable(t *testing.T) {
	uc := newItemUC()
	created := createItem(t, uc, "EL001", "Wireless Mouse", "Electronics", 50, 10)

	_, err := uc.Update(context.Background(), created.ID, dto.UpdateItemRequest{SKU: strPtr("EL999")})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "sku", verr.Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update concurrente con movimientos del ledger
// ──────────────────────────────────────────────────────────────────────────────

// lockHookTx envuelve un TxRunner y ejecuta onLock una vez, justo después del primer GetForUpdate.
type lockHookTx struct {
	inner  appinv.TxRunner
	onLock func()
}

func (h *lockHookTx) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	inwardRepo repository.InwardRepository,
	outwardRepo repository.OutwardRepository,
) error) error {
	return h.inner.Run(ctx, func(i repository.ItemRepository, in repository.InwardRepository, out repository.OutwardRepository) error {
		return fn(&lockHookItems{ItemRepository: i, tx: h}, in, out)
	})
}

type lockHookItems struct {
	repository.ItemRepository
	tx *lockHookTx
}

func (r *lockHookItems) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	item, err := r.ItemRepository.GetForUpdate(ctx, id)
	if hook := r.tx.onLock; hook != nil {
		r.tx.onLock = nil
		hook()
	}
	return item, err
}

func TestItemUpdate_NoPisaEntradaConcurrente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	ledger := appinv.NewLedgerUseCase(store, store.Inward(), store.Outward(), appinv.LedgerOptions{}, zerolog.Nop())
	tx := &lockHookTx{inner: store}
	uc := usecase.NewItemUseCase(store.Items(), tx, decimal.NewFromInt(10))
	created := createItem(t, uc, "EL001", "Wireless Mouse", "Electronics", 10, 5)

	// La entrada se dispara entre la lectura del artículo y su escritura.
	inwardDone := make(chan error, 1)
	tx.onLock = func() {
		go func() {
			_, err := ledger.CreateInward(ctx, dto.CreateInwardRequest{
				GRNNo:    "GRN-RACE-1",
				Supplier: "Proveedor",
				Items:    []dto.MovementLineDTO{{ItemID: created.ID, Quantity: 5}},
			})
			inwardDone <- err
		}()
		time.Sleep(20 * time.Millisecond)
	}

	out, err := uc.Update(ctx, created.ID, dto.UpdateItemRequest{Name: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", out.Name)

	select {
	case err := <-inwardDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("la entrada concurrente no terminó")
	}

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, 15, got.Quantity, "el cambio de nombre no debe borrar la entrada +5")
	assert.NotNil(t, got.LastMovedAt)
}

func TestItemUpdate_ConcurrenteConSalidas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	ledger := appinv.NewLedgerUseCase(store, store.Inward(), store.Outward(), appinv.LedgerOptions{}, zerolog.Nop())
	uc := usecase.NewItemUseCase(store.Items(), store, decimal.NewFromInt(10))
	created := createItem(t, uc, "EL001", "Wireless Mouse", "Electronics", 100, 5)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, err := ledger.CreateOutward(ctx, dto.CreateOutwardRequest{
				DispatchNo: fmt.Sprintf("DSP-%02d", n),
				Customer:   "Cliente",
				Items:      []dto.MovementLineDTO{{ItemID: created.ID, Quantity: 2}},
			})
			assert.NoError(t, err)
		}(i)
		go func(n int) {
			defer wg.Done()
			_, err := uc.Update(ctx, created.ID, dto.UpdateItemRequest{Location: strPtr(fmt.Sprintf("Rack %d", n))})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, got.Quantity)
}
