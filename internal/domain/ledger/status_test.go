package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/stock-ledger/internal/domain/ledger"
)

// TestStockStatus cubre la clasificación completa, incluido el caso frontera
// quantity == minLevel (Low, no Normal) y nivel mínimo 0 (solo Out o Normal).
func TestStockStatus(t *testing.T) {
	cases := []struct {
		name     string
		quantity int64
		minLevel int64
		want     ledger.Status
	}{
		{"cero es out", 0, 10, ledger.StatusOut},
		{"cero con minimo cero sigue siendo out", 0, 0, ledger.StatusOut},
		{"igual al minimo es low", 10, 10, ledger.StatusLow},
		{"debajo del minimo es low", 3, 10, ledger.StatusLow},
		{"uno sobre el minimo es normal", 11, 10, ledger.StatusNormal},
		{"muy por encima es normal", 1000, 10, ledger.StatusNormal},
		{"minimo cero y existencia positiva es normal", 1, 0, ledger.StatusNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.StockStatus(tc.quantity, tc.minLevel),
				"StockStatus(%d, %d)", tc.quantity, tc.minLevel)
		})
	}
}

func TestParseMovementKind(t *testing.T) {
	for _, valid := range []string{"in", "out", "set"} {
		kind, err := ledger.ParseMovementKind(valid)
		assert.NoError(t, err, "%q es un tipo válido", valid)
		assert.True(t, kind.IsValid())
	}

	for _, invalid := range []string{"", "IN", "adjustment", "entrada", "inout"} {
		_, err := ledger.ParseMovementKind(invalid)
		assert.Error(t, err, "%q no debe ser aceptado", invalid)
	}
}
