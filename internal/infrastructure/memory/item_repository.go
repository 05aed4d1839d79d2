package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository. Devuelve copias, nunca punteros internos.
type ItemRepo struct {
	s      *Store
	locked bool
}

// Create asigna el siguiente ID y guarda una copia del artículo.
func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.s.write(r.locked, func(d *data) error {
		if _, ok := d.skus[item.SKU]; ok {
			return domain.ErrDuplicate
		}
		d.nextItemID++
		item.ID = d.nextItemID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now()
		}
		d.items[item.ID] = copyItem(item)
		d.skus[item.SKU] = item.ID
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.s.read(r.locked, func(d *data) {
		out = copyItem(d.items[id])
	})
	return out, nil
}

// GetBySKU devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.s.read(r.locked, func(d *data) {
		if id, ok := d.skus[sku]; ok {
			out = copyItem(d.items[id])
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: dentro de Run el lock exclusivo ya está tomado.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza los campos editables. El SKU y CreatedAt no cambian.
func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.s.write(r.locked, func(d *data) error {
		cur, ok := d.items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = item.Name
		cur.Category = item.Category
		cur.Location = item.Location
		cur.Quantity = item.Quantity
		cur.MinQuantity = item.MinQuantity
		cur.UnitCost = item.UnitCost
		return nil
	})
}

// UpdateStock actualiza cantidad, costo y último movimiento.
func (r *ItemRepo) UpdateStock(_ context.Context, id int64, quantity int, unitCost decimal.Decimal, movedAt time.Time) error {
	return r.s.write(r.locked, func(d *data) error {
		cur, ok := d.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Quantity = quantity
		cur.UnitCost = unitCost
		t := movedAt
		cur.LastMovedAt = &t
		return nil
	})
}

// List filtra y ordena por created_at descendente (ID descendente como desempate).
func (r *ItemRepo) List(_ context.Context, filter entity.ItemFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	r.s.read(r.locked, func(d *data) {
		out = make([]*entity.InventoryItem, 0, len(d.items))
		for _, it := range d.items {
			if inventory.MatchesFilter(it, filter) {
				out = append(out, copyItem(it))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
