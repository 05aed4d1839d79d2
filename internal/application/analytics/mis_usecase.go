package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
)

const (
	defaultSummaryTopN  = 10
	defaultVelocityTopN = 5
	noTopItem           = "N/A"
	neverMoved          = "Never"
)

// MISOptions parámetros del reporte MIS.
type MISOptions struct {
	Window       time.Duration // ventana de rotación y stock muerto (90 días por defecto)
	SummaryTopN  int           // artículos en inventorySummary
	VelocityTopN int           // artículos en fastMoving / slowMoving
	Now          func() time.Time
}

// MISUseCase genera el reporte MIS: KPIs del día, rotación, stock muerto y valorización.
type MISUseCase struct {
	src  Sources
	opts MISOptions
}

// NewMISUseCase construye el caso de uso aplicando valores por defecto.
func NewMISUseCase(src Sources, opts MISOptions) *MISUseCase {
	if opts.Window <= 0 {
		opts.Window = inventory.DeadStockWindow
	}
	if opts.SummaryTopN <= 0 {
		opts.SummaryTopN = defaultSummaryTopN
	}
	if opts.VelocityTopN <= 0 {
		opts.VelocityTopN = defaultVelocityTopN
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &MISUseCase{src: src, opts: opts}
}

// GetStats construye el MISStatsDTO.
//
// La rotación cuenta las líneas de entrada y salida de cada artículo dentro de la ventana;
// solo se rankean artículos con al menos un movimiento. Empates por nombre.
func (uc *MISUseCase) GetStats(ctx context.Context) (*dto.MISStatsDTO, error) {
	snap, err := uc.src.load(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.opts.Now()
	todayStart, todayEnd := dayRange(now)
	windowStart := now.Add(-uc.opts.Window)
	byID := snap.itemsByID()

	out := &dto.MISStatsDTO{
		DailyStats: dto.DailyStatsDTO{
			TotalInwardValuation:  decimal.Zero,
			TotalOutwardValuation: decimal.Zero,
			TopItem:               noTopItem,
		},
	}

	movements := make(map[int64]int)
	dispatchedToday := make(map[int64]int)

	for _, e := range snap.inward {
		inWindow := !e.Date.Before(windowStart)
		today := within(e.Date.In(now.Location()), todayStart, todayEnd)
		for _, l := range e.Items {
			if inWindow {
				movements[l.ItemID]++
			}
			if !today {
				continue
			}
			cost := decimal.Zero
			if l.UnitCost != nil {
				cost = *l.UnitCost
			} else if it, ok := byID[l.ItemID]; ok {
				cost = it.UnitCost
			}
			out.DailyStats.TotalInwardValuation = out.DailyStats.TotalInwardValuation.
				Add(inventory.Valuation(l.Quantity, cost))
		}
	}
	for _, e := range snap.outward {
		inWindow := !e.Date.Before(windowStart)
		today := within(e.Date.In(now.Location()), todayStart, todayEnd)
		for _, l := range e.Items {
			if inWindow {
				movements[l.ItemID]++
			}
			if !today {
				continue
			}
			dispatchedToday[l.ItemID] += l.Quantity
			if it, ok := byID[l.ItemID]; ok {
				out.DailyStats.TotalOutwardValuation = out.DailyStats.TotalOutwardValuation.
					Add(inventory.Valuation(l.Quantity, it.UnitCost))
			}
		}
	}
	out.DailyStats.TotalInwardValuation = out.DailyStats.TotalInwardValuation.Round(2)
	out.DailyStats.TotalOutwardValuation = out.DailyStats.TotalOutwardValuation.Round(2)
	out.DailyStats.TopItem = topDispatched(dispatchedToday, byID)

	out.MovementAnalysis.DeadStock = deadStock(snap.items, now, uc.opts.Window)
	out.DailyStats.DeadStockCount = len(out.MovementAnalysis.DeadStock)
	out.MovementAnalysis.FastMoving, out.MovementAnalysis.SlowMoving = velocity(snap.items, movements, uc.opts.VelocityTopN)
	out.InventorySummary = summary(snap.items, uc.opts.SummaryTopN)
	out.ValuationReport = valuationByCategory(snap.items)

	return out, nil
}

func topDispatched(units map[int64]int, byID map[int64]*entity.InventoryItem) string {
	best, bestUnits := noTopItem, 0
	for id, n := range units {
		it, ok := byID[id]
		if !ok {
			continue
		}
		if n > bestUnits || (n == bestUnits && it.Name < best) {
			best, bestUnits = it.Name, n
		}
	}
	return best
}

func deadStock(items []*entity.InventoryItem, now time.Time, window time.Duration) []dto.DeadStockDTO {
	out := make([]dto.DeadStockDTO, 0)
	for _, it := range items {
		if !inventory.IsDeadStock(it.LastMovedAt, now, window) {
			continue
		}
		last := neverMoved
		if it.LastMovedAt != nil {
			last = it.LastMovedAt.Format(time.RFC3339)
		}
		out = append(out, dto.DeadStockDTO{Name: it.Name, LastMoved: last})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// velocity: fast = los topN más movidos; slow = los menos movidos del resto, ascendente.
func velocity(items []*entity.InventoryItem, movements map[int64]int, topN int) (fast, slow []dto.MovementCountDTO) {
	ranked := make([]dto.MovementCountDTO, 0, len(movements))
	for _, it := range items {
		if n := movements[it.ID]; n > 0 {
			ranked = append(ranked, dto.MovementCountDTO{Name: it.Name, Movements: n})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Movements != ranked[j].Movements {
			return ranked[i].Movements > ranked[j].Movements
		}
		return ranked[i].Name < ranked[j].Name
	})

	nFast := min(topN, len(ranked))
	fast = append(make([]dto.MovementCountDTO, 0, nFast), ranked[:nFast]...)

	rest := ranked[nFast:]
	nSlow := min(topN, len(rest))
	slow = make([]dto.MovementCountDTO, 0, nSlow)
	for i := len(rest) - 1; i >= len(rest)-nSlow; i-- {
		slow = append(slow, rest[i])
	}
	return fast, slow
}

func summary(items []*entity.InventoryItem, topN int) []dto.InventorySummaryDTO {
	sorted := append([]*entity.InventoryItem(nil), items...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Quantity != sorted[j].Quantity {
			return sorted[i].Quantity > sorted[j].Quantity
		}
		return sorted[i].Name < sorted[j].Name
	})
	n := min(topN, len(sorted))
	out := make([]dto.InventorySummaryDTO, 0, n)
	for _, it := range sorted[:n] {
		out = append(out, dto.InventorySummaryDTO{
			Name:  it.Name,
			Stock: it.Quantity,
			Value: inventory.Valuation(it.Quantity, it.UnitCost).Round(2),
		})
	}
	return out
}

func valuationByCategory(items []*entity.InventoryItem) []dto.CategoryValueDTO {
	totals := make(map[string]decimal.Decimal)
	for _, it := range items {
		totals[it.Category] = totals[it.Category].Add(inventory.Valuation(it.Quantity, it.UnitCost))
	}
	out := make([]dto.CategoryValueDTO, 0, len(totals))
	for cat, v := range totals {
		out = append(out, dto.CategoryValueDTO{Category: cat, Value: v.Round(2)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
