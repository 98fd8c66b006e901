package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain/ledger"
)

// LowStockItem resultado crudo del repositorio para un producto en o bajo su nivel mínimo.
type LowStockItem struct {
	ProductID     string
	SKU           string
	Name          string
	Quantity      int64
	MinStockLevel int64
}

// CategoryValuation valoración agregada de una categoría.
type CategoryValuation struct {
	Category     string // "Sin categoría" para productos sin categoría
	ProductCount int64
	TotalUnits   int64
	Value        decimal.Decimal // Σ cost * quantity
}

// ActivityItem movimiento unido con nombre/SKU del producto y username del actor,
// listo para mostrar.
type ActivityItem struct {
	MovementID  string
	ProductID   string
	ProductName string
	SKU         string
	Kind        ledger.MovementKind
	Magnitude   int64
	Reason      string
	Username    string
	CreatedAt   time.Time
}

// ReportRepository define el puerto de consultas read-only para las vistas
// derivadas. Ninguna de estas lecturas toma locks ni bloquea escritores;
// reflejan el último estado confirmado del ledger.
type ReportRepository interface {
	// GetLowStock devuelve los productos con estado Low u Out, la cantidad
	// ascendente primero (los más críticos arriba).
	GetLowStock(ctx context.Context) ([]LowStockItem, error)
	CountLowStock(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	SumUnitsOnHand(ctx context.Context) (int64, error)
	GetTotalValuation(ctx context.Context) (decimal.Decimal, error)
	GetValuationByCategory(ctx context.Context) ([]CategoryValuation, error)
	// GetRecentActivity devuelve los últimos limit movimientos (timestamp descendente).
	// Un ledger vacío produce un slice vacío, nunca error.
	GetRecentActivity(ctx context.Context, limit int) ([]ActivityItem, error)
	GetActivityByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]ActivityItem, error)
}
