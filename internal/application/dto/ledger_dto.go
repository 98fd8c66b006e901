package dto

import "time"

// ApplyMovementRequest body para POST /api/stock/movements.
// type: "in" (suma), "out" (resta) o "set" (fija el valor absoluto).
// quantity siempre es un entero positivo; para "set" es el valor objetivo.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
}

// ApplyMovementResponse resultado de un movimiento aplicado.
type ApplyMovementResponse struct {
	MovementID  string `json:"movement_id"`
	ProductID   string `json:"product_id"`
	NewQuantity int64  `json:"new_quantity"`
}

// BalanceResponse respuesta de GET /api/stock/balance/:productId.
type BalanceResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Status    string `json:"status"` // out, low, normal
}

// MovementResponse una fila del historial de movimientos de un producto.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	ActorID   string    `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}
