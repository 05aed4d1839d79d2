package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados habituales de entradas y salidas (el servidor acepta cualquier texto).
const (
	InwardStatusReceived  = "Received"
	InwardStatusQCPending = "QC Pending"
	InwardStatusStored    = "Stored"

	OutwardStatusPacked     = "Packed"
	OutwardStatusDispatched = "Dispatched"
	OutwardStatusDelivered  = "Delivered"
)

// MovementLine línea de un movimiento: artículo + cantidad. Referencia débil al artículo.
// Se persiste embebida en la entrada (JSONB), por eso lleva tags json.
type MovementLine struct {
	ItemID   int64            `json:"itemId"`
	Quantity int              `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unitCost,omitempty"` // solo en entradas; recalcula el costo promedio
}

// InwardEntry recepción de mercancía (GRN). Inmutable una vez creada.
type InwardEntry struct {
	ID         int64
	GRNNo      string
	Supplier   string
	Date       time.Time
	Status     string
	Items      []MovementLine
	TotalItems int
}

// OutwardEntry despacho a cliente. Misma forma que InwardEntry.
type OutwardEntry struct {
	ID         int64
	DispatchNo string
	Customer   string
	Date       time.Time
	Status     string
	Items      []MovementLine
	TotalItems int
}

// SumQuantities suma las cantidades de las líneas.
func SumQuantities(lines []MovementLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}
