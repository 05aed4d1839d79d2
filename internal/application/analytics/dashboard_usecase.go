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

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DashboardUseCase genera el snapshot del dashboard de la bodega.
//
// Fuente de datos: Sources (lecturas completas, sin caché).
type DashboardUseCase struct {
	src Sources
	now func() time.Time
}

// NewDashboardUseCase construye el caso de uso. now nil = time.Now.
func NewDashboardUseCase(src Sources, now func() time.Time) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{src: src, now: now}
}

// GetStats construye el DashboardStatsDTO.
//
//   - valuation: Σ quantity * unitCost del artículo.
//   - weeklyActivity: unidades por día de la semana en curso (lunes a domingo).
//   - totales de hoy: unidades de los movimientos fechados hoy.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	snap, err := uc.src.load(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	todayStart, todayEnd := dayRange(now)
	weekStart := todayStart.AddDate(0, 0, -mondayIndex(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	out := &dto.DashboardStatsDTO{
		TotalItems: len(snap.items),
		Valuation:  decimal.Zero,
	}

	byCategory := make(map[string]int)
	for _, it := range snap.items {
		if inventory.IsLowStock(it.Quantity, it.MinQuantity) {
			out.LowStockItems++
		}
		out.Valuation = out.Valuation.Add(inventory.Valuation(it.Quantity, it.UnitCost))
		byCategory[it.Category]++
	}
	out.Valuation = out.Valuation.Round(2)

	out.InventoryByCategory = make([]dto.NameValueDTO, 0, len(byCategory))
	for name, n := range byCategory {
		out.InventoryByCategory = append(out.InventoryByCategory, dto.NameValueDTO{Name: name, Value: n})
	}
	sort.Slice(out.InventoryByCategory, func(i, j int) bool {
		return out.InventoryByCategory[i].Name < out.InventoryByCategory[j].Name
	})

	var week [7]dto.WeeklyBucketDTO
	for i := range week {
		week[i].Name = weekdayLabels[i]
	}
	for _, e := range snap.inward {
		units := entity.SumQuantities(e.Items)
		d := e.Date.In(now.Location())
		if within(d, todayStart, todayEnd) {
			out.TotalInwardToday += units
		}
		if within(d, weekStart, weekEnd) {
			week[mondayIndex(d.Weekday())].Inward += units
		}
	}
	for _, e := range snap.outward {
		units := entity.SumQuantities(e.Items)
		d := e.Date.In(now.Location())
		if within(d, todayStart, todayEnd) {
			out.TotalOutwardToday += units
		}
		if within(d, weekStart, weekEnd) {
			week[mondayIndex(d.Weekday())].Outward += units
		}
	}
	out.WeeklyActivity = week[:]

	return out, nil
}

// mondayIndex lunes = 0 ... domingo = 6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
