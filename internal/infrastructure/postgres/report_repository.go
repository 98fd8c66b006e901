package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only para las vistas derivadas. Ninguna toma locks:
// los reportes leen el último estado confirmado y nunca bloquean al ledger.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// lowStockWhere: quantity <= min_stock_level cubre exactamente Low ∪ Out
// (quantity = 0 siempre califica porque min_stock_level >= 0).
const lowStockWhere = `b.quantity <= p.min_stock_level`

// GetLowStock productos en o bajo su nivel mínimo, los más críticos primero.
func (r *ReportRepo) GetLowStock(ctx context.Context) ([]repository.LowStockItem, error) {
	query := `
		SELECT p.id, p.sku, p.name, b.quantity, p.min_stock_level
		FROM products p
		JOIN stock_balances b ON b.product_id = p.id
		WHERE ` + lowStockWhere + `
		ORDER BY b.quantity ASC, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get low stock: %w", err)
	}
	defer rows.Close()
	var items []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.Name, &it.Quantity, &it.MinStockLevel); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountLowStock conteo de productos con estado Low u Out.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM products p
		JOIN stock_balances b ON b.product_id = p.id
		WHERE ` + lowStockWhere
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// CountProducts total de productos del catálogo.
func (r *ReportRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// SumUnitsOnHand unidades totales en existencia.
func (r *ReportRepo) SumUnitsOnHand(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM stock_balances`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum units on hand: %w", err)
	}
	return n, nil
}

// GetTotalValuation Σ cost × quantity sobre todos los productos.
func (r *ReportRepo) GetTotalValuation(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.cost * b.quantity), 0)
		FROM products p
		JOIN stock_balances b ON b.product_id = p.id`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total valuation: %w", err)
	}
	return total, nil
}

// GetValuationByCategory valoración agrupada por categoría, mayor valor primero.
func (r *ReportRepo) GetValuationByCategory(ctx context.Context) ([]repository.CategoryValuation, error) {
	query := `
		SELECT COALESCE(c.name, 'Sin categoría') AS category,
		       COUNT(p.id), COALESCE(SUM(b.quantity), 0), COALESCE(SUM(p.cost * b.quantity), 0)
		FROM products p
		JOIN stock_balances b ON b.product_id = p.id
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY c.name
		ORDER BY COALESCE(SUM(p.cost * b.quantity), 0) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("valuation by category: %w", err)
	}
	defer rows.Close()
	var groups []repository.CategoryValuation
	for rows.Next() {
		var g repository.CategoryValuation
		if err := rows.Scan(&g.Category, &g.ProductCount, &g.TotalUnits, &g.Value); err != nil {
			return nil, fmt.Errorf("scan category valuation: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

const activityColumns = `
	m.id, m.product_id, p.name, p.sku, m.kind, m.magnitude, m.reason,
	COALESCE(u.username, ''), m.created_at`

// GetRecentActivity últimos limit movimientos con producto y actor resueltos.
func (r *ReportRepo) GetRecentActivity(ctx context.Context, limit int) ([]repository.ActivityItem, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.actor_id
		ORDER BY m.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()
	return scanActivity(rows)
}

// GetActivityByDateRange movimientos dentro de [from, to], paginados.
func (r *ReportRepo) GetActivityByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]repository.ActivityItem, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.actor_id
		WHERE m.created_at >= $1 AND m.created_at <= $2
		ORDER BY m.created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("activity by date range: %w", err)
	}
	defer rows.Close()
	return scanActivity(rows)
}

func scanActivity(rows pgx.Rows) ([]repository.ActivityItem, error) {
	var items []repository.ActivityItem
	for rows.Next() {
		var it repository.ActivityItem
		var kind string
		if err := rows.Scan(
			&it.MovementID, &it.ProductID, &it.ProductName, &it.SKU,
			&kind, &it.Magnitude, &it.Reason, &it.Username, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity item: %w", err)
		}
		it.Kind = ledger.MovementKind(kind)
		items = append(items, it)
	}
	return items, rows.Err()
}
