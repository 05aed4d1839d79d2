// Package seed carga el catálogo y los movimientos de demostración cuando la bodega está vacía.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

type demoItem struct {
	sku, name, category, location string
	quantity, minQuantity         int
}

var demoItems = []demoItem{
	{"EL001", "Wireless Mouse", "Electronics", "Rack A1", 50, 10},
	{"EL002", "Mechanical Keyboard", "Electronics", "Rack A2", 30, 5},
	{"EL003", `Monitor 24"`, "Electronics", "Rack A3", 15, 5},
	{"FU001", "Office Chair", "Furniture", "Zone B", 20, 5},
	{"FU002", "Desk Lamp", "Furniture", "Zone B", 40, 10},
	{"ST001", "Notebook A5", "Stationery", "Shelf C1", 100, 20},
	{"ST002", "Ballpoint Pen Box", "Stationery", "Shelf C2", 200, 50},
	{"EL004", "USB-C Cable", "Electronics", "Rack A1", 80, 20},
	{"EL005", "Power Strip", "Electronics", "Rack A4", 25, 5},
	{"FU003", "Filing Cabinet", "Furniture", "Zone B", 5, 2},
}

// Seeder usa los mismos casos de uso que la API, por lo que los movimientos ajustan el stock.
type Seeder struct {
	items  *usecase.ItemUseCase
	ledger *inventory.LedgerUseCase
	log    zerolog.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(items *usecase.ItemUseCase, ledger *inventory.LedgerUseCase, log zerolog.Logger) *Seeder {
	return &Seeder{items: items, ledger: ledger, log: log}
}

// Run siembra solo si el catálogo está vacío. Devuelve true si sembró.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	existing, err := s.items.List(ctx, dto.ListItemsRequest{})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		s.log.Debug().Int("items", len(existing)).Msg("catálogo con datos, seed omitido")
		return false, nil
	}

	ids := make([]int64, 0, len(demoItems))
	for _, d := range demoItems {
		qty, minQty := d.quantity, d.minQuantity
		out, err := s.items.Create(ctx, dto.CreateItemRequest{
			SKU:         d.sku,
			Name:        d.name,
			Category:    d.category,
			Location:    d.location,
			Quantity:    &qty,
			MinQuantity: &minQty,
		})
		if err != nil {
			return false, fmt.Errorf("seed item %s: %w", d.sku, err)
		}
		ids = append(ids, out.ID)
	}

	inwards := []dto.CreateInwardRequest{
		{
			GRNNo:    "GRN-2023-001",
			Supplier: "Tech Supplies Inc",
			Status:   entity.InwardStatusReceived,
			Date:     day(2023, time.October, 1),
			Items: []dto.MovementLineDTO{
				{ItemID: ids[0], Quantity: 20},
				{ItemID: ids[1], Quantity: 10},
			},
			TotalItems: 30,
		},
		{
			GRNNo:      "GRN-2023-002",
			Supplier:   "Office Depot",
			Status:     entity.InwardStatusStored,
			Date:       day(2023, time.October, 5),
			Items:      []dto.MovementLineDTO{{ItemID: ids[5], Quantity: 50}},
			TotalItems: 50,
		},
	}
	for _, in := range inwards {
		if _, err := s.ledger.CreateInward(ctx, in); err != nil {
			return false, fmt.Errorf("seed inward %s: %w", in.GRNNo, err)
		}
	}

	_, err = s.ledger.CreateOutward(ctx, dto.CreateOutwardRequest{
		DispatchNo: "DSP-2023-001",
		Customer:   "Acme Corp",
		Status:     entity.OutwardStatusDispatched,
		Date:       day(2023, time.October, 3),
		Items:      []dto.MovementLineDTO{{ItemID: ids[0], Quantity: 5}},
		TotalItems: 5,
	})
	if err != nil {
		return false, fmt.Errorf("seed outward DSP-2023-001: %w", err)
	}

	s.log.Info().Int("items", len(ids)).Int("inward", len(inwards)).Int("outward", 1).Msg("datos de ejemplo cargados")
	return true, nil
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
