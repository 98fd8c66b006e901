package entity

import (
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain/ledger"
)

// StockMovement es una entrada del historial de movimientos (append-only).
// Inmutable una vez escrita: es la pista de auditoría y la fuente de verdad
// para reconstruir el balance de un producto.
type StockMovement struct {
	ID        string
	ProductID string
	Kind      ledger.MovementKind
	Magnitude int64  // delta para in/out, valor objetivo para set; siempre > 0
	Reason    string // categoría libre: Purchase, Sale, Return, Damage/Loss, Inventory Count, Other
	ActorID   string // UserID resuelto por la capa de auth; el ledger solo lo registra
	CreatedAt time.Time
}
