package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cada línea en el resultado multi-estado de un movimiento.
const (
	AdjustmentApplied         = "applied"
	AdjustmentSkippedNotFound = "skipped_not_found"
)

// MovementLineDTO línea de entrada o salida.
type MovementLineDTO struct {
	ItemID   int64            `json:"itemId" validate:"required,gt=0"`
	Quantity int              `json:"quantity" validate:"required,gt=0"`
	UnitCost *decimal.Decimal `json:"unitCost,omitempty"`
}

// CreateInwardRequest entrada para registrar una recepción (GRN).
// Date vacío = ahora; TotalItems 0 = suma de las líneas.
type CreateInwardRequest struct {
	GRNNo      string            `json:"grnNo" validate:"required,min=1,max=100"`
	Supplier   string            `json:"supplier" validate:"required,min=1,max=200"`
	Date       *time.Time        `json:"date"`
	Status     string            `json:"status" validate:"max=50"`
	Items      []MovementLineDTO `json:"items" validate:"required,min=1,dive"`
	TotalItems int               `json:"totalItems" validate:"gte=0"`
}

// CreateOutwardRequest entrada para registrar un despacho.
type CreateOutwardRequest struct {
	DispatchNo string            `json:"dispatchNo" validate:"required,min=1,max=100"`
	Customer   string            `json:"customer" validate:"required,min=1,max=200"`
	Date       *time.Time        `json:"date"`
	Status     string            `json:"status" validate:"max=50"`
	Items      []MovementLineDTO `json:"items" validate:"required,min=1,dive"`
	TotalItems int               `json:"totalItems" validate:"gte=0"`
}

// AdjustmentResultDTO resultado del ajuste de stock de una línea.
type AdjustmentResultDTO struct {
	Line             int    `json:"line"`
	ItemID           int64  `json:"itemId"`
	Requested        int    `json:"requested"`
	Delta            int    `json:"delta"`
	PreviousQuantity int    `json:"previousQuantity"`
	NewQuantity      int    `json:"newQuantity"`
	Clamped          bool   `json:"clamped"`
	Status           string `json:"status"`
}

// InwardEntryResponse salida de una recepción. Adjustments solo viene en la creación.
type InwardEntryResponse struct {
	ID          int64                 `json:"id"`
	GRNNo       string                `json:"grnNo"`
	Supplier    string                `json:"supplier"`
	Date        time.Time             `json:"date"`
	Status      string                `json:"status"`
	Items       []MovementLineDTO     `json:"items"`
	TotalItems  int                   `json:"totalItems"`
	Adjustments []AdjustmentResultDTO `json:"adjustments,omitempty"`
}

// OutwardEntryResponse salida de un despacho.
type OutwardEntryResponse struct {
	ID          int64                 `json:"id"`
	DispatchNo  string                `json:"dispatchNo"`
	Customer    string                `json:"customer"`
	Date        time.Time             `json:"date"`
	Status      string                `json:"status"`
	Items       []MovementLineDTO     `json:"items"`
	TotalItems  int                   `json:"totalItems"`
	Adjustments []AdjustmentResultDTO `json:"adjustments,omitempty"`
}
