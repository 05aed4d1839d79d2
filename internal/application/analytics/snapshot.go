// Package analytics contiene los casos de uso de estadísticas del dashboard y del reporte MIS.
// Ambos son de solo lectura y recorren catálogo y ledger completos en cada llamada.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// Sources repositorios de lectura que alimentan las estadísticas.
type Sources struct {
	Items   repository.ItemRepository
	Inward  repository.InwardRepository
	Outward repository.OutwardRepository
}

type snapshot struct {
	items   []*entity.InventoryItem
	inward  []*entity.InwardEntry
	outward []*entity.OutwardEntry
}

// load lee catálogo, entradas y despachos en paralelo (tres lecturas independientes).
func (s Sources) load(ctx context.Context) (*snapshot, error) {
	type itemsResult struct {
		rows []*entity.InventoryItem
		err  error
	}
	type inwardResult struct {
		rows []*entity.InwardEntry
		err  error
	}
	type outwardResult struct {
		rows []*entity.OutwardEntry
		err  error
	}

	itemsCh := make(chan itemsResult, 1)
	inwardCh := make(chan inwardResult, 1)
	outwardCh := make(chan outwardResult, 1)

	go func() {
		rows, err := s.Items.List(ctx, entity.ItemFilter{})
		itemsCh <- itemsResult{rows, err}
	}()
	go func() {
		rows, err := s.Inward.List(ctx)
		inwardCh <- inwardResult{rows, err}
	}()
	go func() {
		rows, err := s.Outward.List(ctx)
		outwardCh <- outwardResult{rows, err}
	}()

	items := <-itemsCh
	inward := <-inwardCh
	outward := <-outwardCh

	if items.err != nil {
		return nil, fmt.Errorf("estadísticas: catálogo: %w", items.err)
	}
	if inward.err != nil {
		return nil, fmt.Errorf("estadísticas: entradas: %w", inward.err)
	}
	if outward.err != nil {
		return nil, fmt.Errorf("estadísticas: despachos: %w", outward.err)
	}
	return &snapshot{items: items.rows, inward: inward.rows, outward: outward.rows}, nil
}

func (s *snapshot) itemsByID() map[int64]*entity.InventoryItem {
	m := make(map[int64]*entity.InventoryItem, len(s.items))
	for _, it := range s.items {
		m[it.ID] = it
	}
	return m
}

// dayRange devuelve [00:00 de hoy, 00:00 de mañana) en la zona de now.
func dayRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
