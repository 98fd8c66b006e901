package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO un producto en o bajo su nivel mínimo.
type LowStockItemDTO struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Quantity      int64  `json:"quantity"`
	MinStockLevel int64  `json:"min_stock_level"`
	Status        string `json:"status"` // out o low
}

// ValuationResponse valoración del inventario: total y desglose por categoría.
type ValuationResponse struct {
	TotalValue   decimal.Decimal        `json:"total_value"`
	ByCategory   []CategoryValuationDTO `json:"by_category"`
}

// CategoryValuationDTO valoración de una categoría.
type CategoryValuationDTO struct {
	Category     string          `json:"category"`
	ProductCount int64           `json:"product_count"`
	TotalUnits   int64           `json:"total_units"`
	Value        decimal.Decimal `json:"value"`
}

// ActivityItemDTO movimiento reciente listo para mostrar (producto + actor resueltos).
type ActivityItemDTO struct {
	MovementID  string    `json:"movement_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Se calcula fresco en cada llamada; ningún resumen cacheado es autoritativo.
type DashboardSummaryDTO struct {
	TotalProducts  int64             `json:"total_products"`
	TotalUnits     int64             `json:"total_units"`
	LowStockCount  int64             `json:"low_stock_count"`
	InventoryValue decimal.Decimal   `json:"inventory_value"` // Σ cost * quantity
	RecentActivity []ActivityItemDTO `json:"recent_activity"`
}
