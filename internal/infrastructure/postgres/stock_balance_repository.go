package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx). Las mutaciones son UPDATE condicionales con RETURNING:
// la fila se verifica y se escribe en la misma sentencia, así dos salidas
// concurrentes no pueden validar contra un balance obsoleto.
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el balance actual de un producto, o nil si no hay fila.
func (r *StockBalanceRepo) Get(ctx context.Context, productID string) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, quantity, updated_at
		FROM stock_balances WHERE product_id = $1`
	var b entity.StockBalance
	err := r.q.QueryRow(ctx, query, productID).Scan(&b.ProductID, &b.Quantity, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// GetMany obtiene las cantidades de varios productos en una sola consulta.
func (r *StockBalanceRepo) GetMany(ctx context.Context, productIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT product_id, quantity
		FROM stock_balances WHERE product_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get stock balances: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var quantity int64
		if err := rows.Scan(&id, &quantity); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		result[id] = quantity
	}
	return result, rows.Err()
}

// Init crea la fila de balance en 0 al crear el producto. Idempotente.
func (r *StockBalanceRepo) Init(ctx context.Context, productID string) error {
	query := `
		INSERT INTO stock_balances (product_id, quantity, updated_at)
		VALUES ($1, 0, now())
		ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, productID); err != nil {
		return fmt.Errorf("init stock balance: %w", err)
	}
	return nil
}

// Add suma delta a la cantidad y devuelve el resultado.
func (r *StockBalanceRepo) Add(ctx context.Context, productID string, delta int64) (int64, error) {
	query := `
		UPDATE stock_balances
		SET quantity = quantity + $2, updated_at = now()
		WHERE product_id = $1
		RETURNING quantity`
	var quantity int64
	err := r.q.QueryRow(ctx, query, productID, delta).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("add stock: %w", err)
	}
	return quantity, nil
}

// SubtractIfEnough resta delta SOLO si el resultado queda >= 0, en una única
// sentencia. Si el UPDATE no encuentra fila, distingue producto inexistente de
// fondos insuficientes con una lectura puntual dentro de la misma transacción.
func (r *StockBalanceRepo) SubtractIfEnough(ctx context.Context, productID string, delta int64) (int64, error) {
	query := `
		UPDATE stock_balances
		SET quantity = quantity - $2, updated_at = now()
		WHERE product_id = $1 AND quantity >= $2
		RETURNING quantity`
	var quantity int64
	err := r.q.QueryRow(ctx, query, productID, delta).Scan(&quantity)
	if err == nil {
		return quantity, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("subtract stock: %w", err)
	}
	balance, err := r.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	if balance == nil {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// Set fija la cantidad exactamente en target.
func (r *StockBalanceRepo) Set(ctx context.Context, productID string, target int64) (int64, error) {
	query := `
		UPDATE stock_balances
		SET quantity = $2, updated_at = now()
		WHERE product_id = $1
		RETURNING quantity`
	var quantity int64
	err := r.q.QueryRow(ctx, query, productID, target).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("set stock: %w", err)
	}
	return quantity, nil
}
