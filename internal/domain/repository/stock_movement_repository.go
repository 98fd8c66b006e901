package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del historial de
// movimientos. Solo hay append y lecturas acotadas: las filas jamás se
// actualizan ni se borran.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByDateRange(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
