package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// Las lecturas por clave devuelven (nil, nil) cuando no existe el registro.
type ItemRepository interface {
	// Create asigna ID y persiste. Devuelve domain.ErrDuplicate si el SKU ya existe.
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*entity.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea el artículo hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.InventoryItem, error)
	// Update persiste los campos editables (name, category, location, quantity, min_quantity, unit_cost).
	Update(ctx context.Context, item *entity.InventoryItem) error
	// UpdateStock usado por el motor de ajustes: cantidad, costo y fecha de último movimiento.
	UpdateStock(ctx context.Context, id int64, quantity int, unitCost decimal.Decimal, movedAt time.Time) error
	// List devuelve los artículos filtrados, ordenados por created_at descendente.
	List(ctx context.Context, filter entity.ItemFilter) ([]*entity.InventoryItem, error)
}
