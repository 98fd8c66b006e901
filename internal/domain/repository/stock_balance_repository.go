package repository

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// StockBalanceRepository define el puerto para la fila de balance por producto.
//
// Las tres mutaciones son actualizaciones condicionales atómicas que devuelven la
// cantidad resultante: la verificación de fondos y la escritura ocurren en la misma
// sentencia, nunca como read-then-check-then-write. Se usan siempre dentro de la
// transacción del TxRunner junto con el insert del movimiento.
type StockBalanceRepository interface {
	// Get devuelve el balance actual, o nil si el producto no tiene fila.
	Get(ctx context.Context, productID string) (*entity.StockBalance, error)
	// GetMany devuelve las cantidades de varios productos en una sola consulta
	// (para listados); los productos sin fila simplemente no aparecen en el mapa.
	GetMany(ctx context.Context, productIDs []string) (map[string]int64, error)
	// Init crea la fila en 0 al crear el producto. Idempotente.
	Init(ctx context.Context, productID string) error
	// Add suma delta y devuelve la nueva cantidad. ErrNotFound si no hay fila.
	Add(ctx context.Context, productID string, delta int64) (int64, error)
	// SubtractIfEnough resta delta solo si el resultado queda >= 0.
	// ErrInsufficientStock si no alcanza; ErrNotFound si no hay fila.
	SubtractIfEnough(ctx context.Context, productID string, delta int64) (int64, error)
	// Set fija la cantidad exactamente en target (>= 0). ErrNotFound si no hay fila.
	Set(ctx context.Context, productID string, target int64) (int64, error)
}
