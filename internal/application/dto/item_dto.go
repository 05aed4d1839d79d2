package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para dar de alta un artículo.
// Quantity y MinQuantity son opcionales (0 y 5 por defecto); UnitCost usa el costo por defecto configurado.
type CreateItemRequest struct {
	SKU         string           `json:"sku" validate:"required,min=1,max=100"`
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Category    string           `json:"category" validate:"required,min=1,max=100"`
	Location    string           `json:"location" validate:"required,min=1,max=100"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
	MinQuantity *int             `json:"minQuantity" validate:"omitempty,gte=0"`
	UnitCost    *decimal.Decimal `json:"unitCost"`
}

// UpdateItemRequest actualización parcial; solo se aplican los campos presentes.
// SKU es inmutable: se acepta únicamente si coincide con el actual.
type UpdateItemRequest struct {
	SKU         *string          `json:"sku" validate:"omitempty,min=1"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Location    *string          `json:"location" validate:"omitempty,min=1,max=100"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
	MinQuantity *int             `json:"minQuantity" validate:"omitempty,gte=0"`
	UnitCost    *decimal.Decimal `json:"unitCost"`
}

// ListItemsRequest filtros de GET /api/inventory.
type ListItemsRequest struct {
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=in_stock low_stock out_of_stock"`
}

// ItemResponse salida de un artículo. Status es derivado de quantity/minQuantity.
type ItemResponse struct {
	ID          int64           `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Status      string          `json:"status"`
	LastMovedAt *time.Time      `json:"lastMovedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
}
