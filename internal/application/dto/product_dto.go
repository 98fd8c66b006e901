package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// El balance de stock se crea en 0; las existencias solo cambian vía movimientos.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	MinStockLevel int64           `json:"min_stock_level"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	MinStockLevel *int64           `json:"min_stock_level,omitempty"`
	Status        *string          `json:"status,omitempty"`
}

// ProductResponse representación HTTP de un producto, con su existencia actual
// y el estado calculado con la definición única de StockStatus.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	MinStockLevel int64           `json:"min_stock_level"`
	Status        string          `json:"status"`
	Quantity      int64           `json:"quantity"`
	StockStatus   string          `json:"stock_status"` // out, low, normal
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}
