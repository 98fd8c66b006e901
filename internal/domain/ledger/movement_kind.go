// Package ledger contiene los servicios de dominio puros del motor de stock:
// el conjunto cerrado de tipos de movimiento y el cálculo de estado de stock.
package ledger

import "fmt"

// MovementKind es el conjunto cerrado de tipos de movimiento. Distinguir "set"
// de los deltas en el tipo evita que un mismo campo de cantidad se reinterprete
// según disciplina del caller.
type MovementKind string

const (
	// KindInbound suma Magnitude al balance (entrada).
	KindInbound MovementKind = "in"
	// KindOutbound resta Magnitude del balance (salida); falla si dejaría el balance negativo.
	KindOutbound MovementKind = "out"
	// KindAbsoluteSet fija el balance exactamente en Magnitude (conteo físico).
	KindAbsoluteSet MovementKind = "set"
)

// ParseMovementKind valida un tipo de movimiento recibido por la API.
func ParseMovementKind(s string) (MovementKind, error) {
	switch MovementKind(s) {
	case KindInbound, KindOutbound, KindAbsoluteSet:
		return MovementKind(s), nil
	}
	return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
}

// IsValid reporta si k pertenece al conjunto cerrado.
func (k MovementKind) IsValid() bool {
	_, err := ParseMovementKind(string(k))
	return err == nil
}
