package entity

import "time"

// Category representa una categoría de productos. El ledger la trata como opaca;
// solo los reportes de valoración agrupan por ella.
type Category struct {
	ID        string
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
