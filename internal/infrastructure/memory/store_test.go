package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/memory"
)

func newItem(sku string, qty int) *entity.InventoryItem {
	return &entity.InventoryItem{
		SKU: sku, Name: "Item " + sku, Category: "Electronics", Location: "Rack A1",
		Quantity: qty, MinQuantity: 5, UnitCost: decimal.NewFromInt(10), CreatedAt: time.Now(),
	}
}

func TestItemRepo_DevuelveCopias(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	it := newItem("EL001", 10)
	require.NoError(t, store.Items().Create(ctx, it))

	got, err := store.Items().GetByID(ctx, it.ID)
	require.NoError(t, err)
	got.Quantity = 999

	again, err := store.Items().GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Quantity, "mutar el resultado no altera el store")
}

func TestItemRepo_SKUDuplicado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Items().Create(ctx, newItem("EL001", 1)))
	err := store.Items().Create(ctx, newItem("EL001", 2))
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestItemRepo_UpdateNoExiste(t *testing.T) {
	store := memory.NewStore()
	err := store.Items().Update(context.Background(), &entity.InventoryItem{ID: 7})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_RunRestauraEstadoSiFalla(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	it := newItem("EL001", 10)
	require.NoError(t, store.Items().Create(ctx, it))

	boom := errors.New("boom")
	err := store.Run(ctx, func(items repository.ItemRepository, inward repository.InwardRepository, _ repository.OutwardRepository) error {
		require.NoError(t, inward.Create(ctx, &entity.InwardEntry{GRNNo: "GRN-1", Date: time.Now(), Items: []entity.MovementLine{{ItemID: it.ID, Quantity: 5}}}))
		require.NoError(t, items.UpdateStock(ctx, it.ID, 15, it.UnitCost, time.Now()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Items().GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	assert.Nil(t, got.LastMovedAt)
	entry, err := store.Inward().GetByGRN(ctx, "GRN-1")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestStore_RunConfirmaSiNoFalla(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.Run(ctx, func(_ repository.ItemRepository, _ repository.InwardRepository, outward repository.OutwardRepository) error {
		return outward.Create(ctx, &entity.OutwardEntry{DispatchNo: "DSP-1", Date: time.Now()})
	})
	require.NoError(t, err)

	entry, err := store.Outward().GetByDispatchNo(ctx, "DSP-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(1), entry.ID)
}

func TestStore_RunContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Run(ctx, func(repository.ItemRepository, repository.InwardRepository, repository.OutwardRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
