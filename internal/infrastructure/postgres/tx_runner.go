package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	appledger "github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ appledger.TxRunner = (*TxRunner)(nil)

// txTimeout cota superior de una transacción del ledger. Dentro de la tx solo
// ocurren el update del balance y el insert del movimiento; nunca se espera a
// un sistema externo con la fila tomada.
const txTimeout = 5 * time.Second

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción acotada por timeout, ejecuta fn con repos atados a
// la tx y hace Commit o Rollback. Los fallos de begin/commit/deadline se
// reportan como domain.ErrUnavailable: ningún efecto parcial queda escrito y el
// caller decide si reintenta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	productRepo repository.ProductRepository,
) error) error {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %v: %w", err, domain.ErrUnavailable)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	balanceRepo := NewStockBalanceRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(movRepo, balanceRepo, productRepo); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("transacción expirada: %w", domain.ErrUnavailable)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %v: %w", err, domain.ErrUnavailable)
	}
	return nil
}
