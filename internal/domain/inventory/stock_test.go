package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		name     string
		qty, min int
		want     inventory.StockStatus
	}{
		{"agotado", 0, 5, inventory.StatusOutOfStock},
		{"bajo", 3, 5, inventory.StatusLowStock},
		{"bajo en el límite", 5, 5, inventory.StatusLowStock},
		{"en stock", 10, 5, inventory.StatusInStock},
		{"min cero con una unidad", 1, 0, inventory.StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.ClassifyStock(tc.qty, tc.min))
		})
	}
}

func TestApplyDelta_RecortaEnCero(t *testing.T) {
	next, clamped := inventory.ApplyDelta(10, 5)
	assert.Equal(t, 15, next)
	assert.False(t, clamped)

	next, clamped = inventory.ApplyDelta(5, -7)
	assert.Equal(t, 0, next, "una salida mayor al disponible deja el stock en cero")
	assert.True(t, clamped)

	next, clamped = inventory.ApplyDelta(5, -5)
	assert.Equal(t, 0, next)
	assert.False(t, clamped, "consumir exactamente lo disponible no es un recorte")
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock muerto: ventana de 90 días con límite exclusivo
// ──────────────────────────────────────────────────────────────────────────────

func TestIsDeadStock_Limites(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		ts := now.AddDate(0, 0, -d)
		return &ts
	}

	assert.True(t, inventory.IsDeadStock(nil, now, inventory.DeadStockWindow), "sin movimientos es stock muerto")
	assert.True(t, inventory.IsDeadStock(daysAgo(91), now, inventory.DeadStockWindow))
	assert.False(t, inventory.IsDeadStock(daysAgo(90), now, inventory.DeadStockWindow), "exactamente 90 días no es stock muerto")
	assert.False(t, inventory.IsDeadStock(daysAgo(89), now, inventory.DeadStockWindow))
}

func TestMatchesFilter(t *testing.T) {
	item := &entity.InventoryItem{SKU: "EL001", Name: "Wireless Mouse", Quantity: 3, MinQuantity: 5}

	assert.True(t, inventory.MatchesFilter(item, entity.ItemFilter{}))
	assert.True(t, inventory.MatchesFilter(item, entity.ItemFilter{Search: "mouse"}))
	assert.True(t, inventory.MatchesFilter(item, entity.ItemFilter{Search: "el00"}))
	assert.True(t, inventory.MatchesFilter(item, entity.ItemFilter{Search: "MOUSE", Status: "low_stock"}))
	assert.False(t, inventory.MatchesFilter(item, entity.ItemFilter{Search: "MOUSE", Status: "in_stock"}))
	assert.False(t, inventory.MatchesFilter(item, entity.ItemFilter{Search: "keyboard"}))
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// (10*10 + 10*20) / 20 = 15
	got := inventory.CostCalculator(
		decimal.NewFromInt(10), decimal.NewFromInt(10),
		decimal.NewFromInt(10), decimal.NewFromInt(20),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(15)), "costo esperado 15, obtenido %s", got)

	zero := inventory.CostCalculator(decimal.Zero, decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(20))
	assert.True(t, zero.IsZero())
}
