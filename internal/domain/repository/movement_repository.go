package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// InwardRepository define el puerto de persistencia para entradas (GRN).
type InwardRepository interface {
	// Create asigna ID y persiste. Devuelve domain.ErrDuplicate si el grnNo ya existe.
	Create(ctx context.Context, entry *entity.InwardEntry) error
	GetByGRN(ctx context.Context, grnNo string) (*entity.InwardEntry, error)
	// List devuelve todas las entradas ordenadas por fecha descendente.
	List(ctx context.Context) ([]*entity.InwardEntry, error)
}

// OutwardRepository define el puerto de persistencia para despachos.
type OutwardRepository interface {
	// Create asigna ID y persiste. Devuelve domain.ErrDuplicate si el dispatchNo ya existe.
	Create(ctx context.Context, entry *entity.OutwardEntry) error
	GetByDispatchNo(ctx context.Context, dispatchNo string) (*entity.OutwardEntry, error)
	// List devuelve todos los despachos ordenados por fecha descendente.
	List(ctx context.Context) ([]*entity.OutwardEntry, error)
}
