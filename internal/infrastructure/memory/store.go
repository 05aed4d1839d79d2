// Package memory implementa los puertos de persistencia en memoria (fixtures, desarrollo y tests).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// data estado completo del store. Todo acceso pasa por Store.mu.
type data struct {
	items     map[int64]*entity.InventoryItem
	skus      map[string]int64
	inward    []*entity.InwardEntry
	grns      map[string]int64
	outward   []*entity.OutwardEntry
	dispatchs map[string]int64

	nextItemID    int64
	nextInwardID  int64
	nextOutwardID int64
}

func newData() *data {
	return &data{
		items:     make(map[int64]*entity.InventoryItem),
		skus:      make(map[string]int64),
		grns:      make(map[string]int64),
		dispatchs: make(map[string]int64),
	}
}

func (d *data) clone() *data {
	c := newData()
	for id, it := range d.items {
		c.items[id] = copyItem(it)
	}
	for k, v := range d.skus {
		c.skus[k] = v
	}
	for k, v := range d.grns {
		c.grns[k] = v
	}
	for k, v := range d.dispatchs {
		c.dispatchs[k] = v
	}
	c.inward = make([]*entity.InwardEntry, 0, len(d.inward))
	for _, e := range d.inward {
		c.inward = append(c.inward, copyInward(e))
	}
	c.outward = make([]*entity.OutwardEntry, 0, len(d.outward))
	for _, e := range d.outward {
		c.outward = append(c.outward, copyOutward(e))
	}
	c.nextItemID, c.nextInwardID, c.nextOutwardID = d.nextItemID, d.nextInwardID, d.nextOutwardID
	return c
}

// Store guarda catálogo y ledger en memoria protegidos por un RWMutex.
// Run serializa las transacciones y restaura el estado previo si fn falla.
type Store struct {
	mu sync.RWMutex
	d  *data
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// Items repositorio de artículos fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Inward repositorio de entradas fuera de transacción.
func (s *Store) Inward() *InwardRepo { return &InwardRepo{s: s} }

// Outward repositorio de despachos fuera de transacción.
func (s *Store) Outward() *OutwardRepo { return &OutwardRepo{s: s} }

// Run ejecuta fn con el lock exclusivo tomado durante toda la transacción.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	inwardRepo repository.InwardRepository,
	outwardRepo repository.OutwardRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.d.clone()
	err := fn(&ItemRepo{s: s, locked: true}, &InwardRepo{s: s, locked: true}, &OutwardRepo{s: s, locked: true})
	if err != nil {
		s.d = backup
		return err
	}
	return nil
}

// read ejecuta fn con lock de lectura salvo que la tx ya tenga el lock exclusivo.
func (s *Store) read(locked bool, fn func(d *data)) {
	if !locked {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.d)
}

func (s *Store) write(locked bool, fn func(d *data) error) error {
	if !locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.d)
}

func copyItem(it *entity.InventoryItem) *entity.InventoryItem {
	if it == nil {
		return nil
	}
	c := *it
	if it.LastMovedAt != nil {
		t := *it.LastMovedAt
		c.LastMovedAt = &t
	}
	return &c
}

func copyLines(lines []entity.MovementLine) []entity.MovementLine {
	out := make([]entity.MovementLine, len(lines))
	for i, l := range lines {
		out[i] = l
		if l.UnitCost != nil {
			cost := *l.UnitCost
			out[i].UnitCost = &cost
		}
	}
	return out
}

func copyInward(e *entity.InwardEntry) *entity.InwardEntry {
	if e == nil {
		return nil
	}
	c := *e
	c.Items = copyLines(e.Items)
	return &c
}

func copyOutward(e *entity.OutwardEntry) *entity.OutwardEntry {
	if e == nil {
		return nil
	}
	c := *e
	c.Items = copyLines(e.Items)
	return &c
}
