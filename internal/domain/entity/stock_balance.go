package entity

import "time"

// StockBalance es la cantidad actual en existencia de un producto (una fila por producto).
// Se crea en 0 al crear el producto y SOLO muta a través de ApplyMovement; debe coincidir
// siempre con la reproducción de todos sus StockMovement en orden de timestamp.
type StockBalance struct {
	ProductID string
	Quantity  int64 // invariante: >= 0 en todo estado confirmado
	UpdatedAt time.Time
}
