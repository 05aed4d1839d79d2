package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"golang.org/x/text/cases"
)

// StockStatus clasificación del nivel de stock de un artículo.
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// DeadStockWindow ventana sin movimientos a partir de la cual un artículo es stock muerto.
const DeadStockWindow = 90 * 24 * time.Hour

// ValidStatus indica si s es un filtro de estado reconocido.
func ValidStatus(s string) bool {
	switch StockStatus(s) {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

// ClassifyStock: out_of_stock si q == 0, low_stock si 0 < q <= min, in_stock si q > min.
func ClassifyStock(quantity, minQuantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= minQuantity:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// IsLowStock criterio del dashboard: q <= min (incluye los agotados).
func IsLowStock(quantity, minQuantity int) bool {
	return quantity <= minQuantity
}

// ApplyDelta calcula la nueva cantidad recortando en cero.
// clamped es true cuando la salida pedida superaba lo disponible.
func ApplyDelta(current, delta int) (next int, clamped bool) {
	next = current + delta
	if next < 0 {
		return 0, true
	}
	return next, false
}

// IsDeadStock: sin movimientos nunca, o el último fue hace más de window (límite exclusivo).
func IsDeadStock(lastMovedAt *time.Time, now time.Time, window time.Duration) bool {
	if lastMovedAt == nil {
		return true
	}
	return now.Sub(*lastMovedAt) > window
}

// MatchesSearch compara sin distinguir mayúsculas la subcadena contra name o sku.
func MatchesSearch(item *entity.InventoryItem, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	fold := cases.Fold()
	needle := fold.String(search)
	return strings.Contains(fold.String(item.Name), needle) ||
		strings.Contains(fold.String(item.SKU), needle)
}

// MatchesFilter aplica search y status con AND. Usado por los adaptadores sin SQL.
func MatchesFilter(item *entity.InventoryItem, filter entity.ItemFilter) bool {
	if !MatchesSearch(item, filter.Search) {
		return false
	}
	if filter.Status != "" && ClassifyStock(item.Quantity, item.MinQuantity) != StockStatus(filter.Status) {
		return false
	}
	return true
}
