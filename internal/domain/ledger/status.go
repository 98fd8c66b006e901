package ledger

// Status clasifica la existencia de un producto frente a su nivel mínimo.
type Status string

const (
	StatusOut    Status = "out"    // cantidad exactamente 0
	StatusLow    Status = "low"    // 0 < cantidad <= nivel mínimo
	StatusNormal Status = "normal" // por encima del nivel mínimo
)

// StockStatus es la ÚNICA definición de estado de stock del sistema; dashboard,
// tablas y alertas deben usarla en lugar de reimplementar la comparación.
// Total para cualquier par (quantity, minLevel), incluido minLevel = 0.
func StockStatus(quantity, minLevel int64) Status {
	switch {
	case quantity == 0:
		return StatusOut
	case quantity <= minLevel:
		return StatusLow
	default:
		return StatusNormal
	}
}
