package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinQuantity punto de reorden por defecto cuando el alta no lo indica.
const DefaultMinQuantity = 5

// InventoryItem representa un artículo del catálogo de la bodega.
// Quantity nunca es negativa; solo cambia por actualización explícita o por movimientos.
type InventoryItem struct {
	ID          int64
	SKU         string // único, inmutable después del alta
	Name        string
	Category    string
	Location    string // rack / bin
	Quantity    int
	MinQuantity int
	UnitCost    decimal.Decimal // costo promedio ponderado por unidad
	LastMovedAt *time.Time      // nil si nunca tuvo movimientos
	CreatedAt   time.Time
}

// ItemFilter filtros del listado del catálogo. Los campos vacíos no filtran.
type ItemFilter struct {
	Search string // subcadena de name o sku, sin distinguir mayúsculas
	Status string // in_stock | low_stock | out_of_stock
}
