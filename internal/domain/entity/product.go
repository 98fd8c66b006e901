package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles de un producto.
const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// Product representa un producto o SKU del catálogo.
// La cantidad en existencia NO vive aquí: la mantiene el ledger en StockBalance
// y solo cambia a través de movimientos.
type Product struct {
	ID            string
	SKU           string // código único, visible para humanos
	Name          string
	Description   string
	CategoryID    string          // vacío si no tiene categoría
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // costo unitario (base de la valoración)
	MinStockLevel int64           // nivel mínimo para alertas de stock bajo (>= 0)
	Status        string          // active, inactive, discontinued
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
