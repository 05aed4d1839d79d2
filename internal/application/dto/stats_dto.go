package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/stats/dashboard.
// LowStockItems cuenta quantity <= minQuantity; los totales de hoy son unidades, no documentos.
type DashboardStatsDTO struct {
	TotalItems          int               `json:"totalItems"`
	LowStockItems       int               `json:"lowStockItems"`
	TotalInwardToday    int               `json:"totalInwardToday"`
	TotalOutwardToday   int               `json:"totalOutwardToday"`
	Valuation           decimal.Decimal   `json:"valuation"`
	InventoryByCategory []NameValueDTO    `json:"inventoryByCategory"`
	WeeklyActivity      []WeeklyBucketDTO `json:"weeklyActivity"` // siempre 7 buckets Mon..Sun
}

// NameValueDTO par nombre/conteo para gráficos.
type NameValueDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// WeeklyBucketDTO unidades de entrada/salida de un día de la semana en curso.
type WeeklyBucketDTO struct {
	Name    string `json:"name"`
	Inward  int    `json:"inward"`
	Outward int    `json:"outward"`
}

// MISStatsDTO respuesta de GET /api/stats/mis.
type MISStatsDTO struct {
	DailyStats       DailyStatsDTO         `json:"dailyStats"`
	InventorySummary []InventorySummaryDTO `json:"inventorySummary"`
	MovementAnalysis MovementAnalysisDTO   `json:"movementAnalysis"`
	ValuationReport  []CategoryValueDTO    `json:"valuationReport"`
}

// DailyStatsDTO KPIs del día.
type DailyStatsDTO struct {
	TotalInwardValuation  decimal.Decimal `json:"totalInwardValuation"`
	TotalOutwardValuation decimal.Decimal `json:"totalOutwardValuation"`
	TopItem               string          `json:"topItem"`
	DeadStockCount        int             `json:"deadStockCount"`
}

// InventorySummaryDTO artículo del top por stock.
type InventorySummaryDTO struct {
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Value decimal.Decimal `json:"value"`
}

// MovementAnalysisDTO rotación de inventario en la ventana de análisis.
type MovementAnalysisDTO struct {
	FastMoving []MovementCountDTO `json:"fastMoving"`
	SlowMoving []MovementCountDTO `json:"slowMoving"`
	DeadStock  []DeadStockDTO     `json:"deadStock"`
}

// MovementCountDTO número de líneas de movimiento de un artículo.
type MovementCountDTO struct {
	Name      string `json:"name"`
	Movements int    `json:"movements"`
}

// DeadStockDTO artículo sin movimiento; LastMoved es RFC3339 o "Never".
type DeadStockDTO struct {
	Name      string `json:"name"`
	LastMoved string `json:"lastMoved"`
}

// CategoryValueDTO valorización por categoría.
type CategoryValueDTO struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}
