package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var (
	_ repository.InwardRepository  = (*InwardRepo)(nil)
	_ repository.OutwardRepository = (*OutwardRepo)(nil)
)

// InwardRepo implementación en memoria de InwardRepository.
type InwardRepo struct {
	s      *Store
	locked bool
}

// Create asigna ID y guarda una copia de la entrada.
func (r *InwardRepo) Create(_ context.Context, entry *entity.InwardEntry) error {
	return r.s.write(r.locked, func(d *data) error {
		if _, ok := d.grns[entry.GRNNo]; ok {
			return domain.ErrDuplicate
		}
		d.nextInwardID++
		entry.ID = d.nextInwardID
		d.inward = append(d.inward, copyInward(entry))
		d.grns[entry.GRNNo] = entry.ID
		return nil
	})
}

// GetByGRN devuelve (nil, nil) si no existe.
func (r *InwardRepo) GetByGRN(_ context.Context, grnNo string) (*entity.InwardEntry, error) {
	var out *entity.InwardEntry
	r.s.read(r.locked, func(d *data) {
		id, ok := d.grns[grnNo]
		if !ok {
			return
		}
		for _, e := range d.inward {
			if e.ID == id {
				out = copyInward(e)
				return
			}
		}
	})
	return out, nil
}

// List ordena por fecha descendente (ID descendente como desempate).
func (r *InwardRepo) List(_ context.Context) ([]*entity.InwardEntry, error) {
	var out []*entity.InwardEntry
	r.s.read(r.locked, func(d *data) {
		out = make([]*entity.InwardEntry, 0, len(d.inward))
		for _, e := range d.inward {
			out = append(out, copyInward(e))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// OutwardRepo implementación en memoria de OutwardRepository.
type OutwardRepo struct {
	s      *Store
	locked bool
}

// Create asigna ID y guarda una copia del despacho.
func (r *OutwardRepo) Create(_ context.Context, entry *entity.OutwardEntry) error {
	return r.s.write(r.locked, func(d *data) error {
		if _, ok := d.dispatchs[entry.DispatchNo]; ok {
			return domain.ErrDuplicate
		}
		d.nextOutwardID++
		entry.ID = d.nextOutwardID
		d.outward = append(d.outward, copyOutward(entry))
		d.dispatchs[entry.DispatchNo] = entry.ID
		return nil
	})
}

// GetByDispatchNo devuelve (nil, nil) si no existe.
func (r *OutwardRepo) GetByDispatchNo(_ context.Context, dispatchNo string) (*entity.OutwardEntry, error) {
	var out *entity.OutwardEntry
	r.s.read(r.locked, func(d *data) {
		id, ok := d.dispatchs[dispatchNo]
		if !ok {
			return
		}
		for _, e := range d.outward {
			if e.ID == id {
				out = copyOutward(e)
				return
			}
		}
	})
	return out, nil
}

// List ordena por fecha descendente (ID descendente como desempate).
func (r *OutwardRepo) List(_ context.Context) ([]*entity.OutwardEntry, error) {
	var out []*entity.OutwardEntry
	r.s.read(r.locked, func(d *data) {
		out = make([]*entity.OutwardEntry, 0, len(d.outward))
		for _, e := range d.outward {
			out = append(out, copyOutward(e))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
