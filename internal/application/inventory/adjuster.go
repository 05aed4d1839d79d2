package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// StockAdjuster aplica los deltas de las líneas de un movimiento sobre el catálogo.
// Vive dentro de la transacción del movimiento: bloquea cada artículo una sola vez
// y en orden ascendente de ID para evitar deadlocks entre movimientos concurrentes.
type StockAdjuster struct {
	itemRepo repository.ItemRepository
	locked   map[int64]*entity.InventoryItem
	now      time.Time
}

// NewStockAdjuster construye el ajustador atado a los repositorios de la tx.
func NewStockAdjuster(itemRepo repository.ItemRepository, now time.Time) *StockAdjuster {
	return &StockAdjuster{
		itemRepo: itemRepo,
		locked:   make(map[int64]*entity.InventoryItem),
		now:      now,
	}
}

// Lock bloquea (SELECT FOR UPDATE) los artículos referenciados por las líneas.
// Los IDs inexistentes quedan registrados como nil y se omiten en ApplyDelta.
func (a *StockAdjuster) Lock(ctx context.Context, lines []entity.MovementLine) error {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, seen := a.locked[l.ItemID]; seen {
			continue
		}
		a.locked[l.ItemID] = nil
		ids = append(ids, l.ItemID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		item, err := a.itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock item %d: %w", id, err)
		}
		a.locked[id] = item
	}
	return nil
}

// ApplyDelta aplica delta al artículo: nueva cantidad = max(0, actual + delta) y lastMovedAt = ahora.
// En entradas con costo unitario recalcula el costo promedio ponderado.
// Un artículo inexistente no es error: el resultado queda como skipped_not_found.
func (a *StockAdjuster) ApplyDelta(ctx context.Context, itemID int64, delta int, inCost *decimal.Decimal) (dto.AdjustmentResultDTO, error) {
	res := dto.AdjustmentResultDTO{ItemID: itemID, Delta: delta}
	if delta < 0 {
		res.Requested = -delta
	} else {
		res.Requested = delta
	}

	item, ok := a.locked[itemID]
	if !ok {
		var err error
		if item, err = a.itemRepo.GetForUpdate(ctx, itemID); err != nil {
			return res, fmt.Errorf("lock item %d: %w", itemID, err)
		}
		a.locked[itemID] = item
	}
	if item == nil {
		res.Status = dto.AdjustmentSkippedNotFound
		return res, nil
	}

	next, clamped := domaininv.ApplyDelta(item.Quantity, delta)
	cost := item.UnitCost
	if delta > 0 && inCost != nil {
		cost = domaininv.CostCalculator(
			decimal.NewFromInt(int64(item.Quantity)), item.UnitCost,
			decimal.NewFromInt(int64(delta)), *inCost,
		)
	}
	if err := a.itemRepo.UpdateStock(ctx, itemID, next, cost, a.now); err != nil {
		return res, err
	}

	res.PreviousQuantity = item.Quantity
	res.NewQuantity = next
	res.Clamped = clamped
	res.Status = dto.AdjustmentApplied

	movedAt := a.now
	item.Quantity = next
	item.UnitCost = cost
	item.LastMovedAt = &movedAt
	return res, nil
}
