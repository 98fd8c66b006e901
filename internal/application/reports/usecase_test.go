package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/reports"
	"github.com/tu-usuario/stock-ledger/internal/domain/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// fakeReportRepo devuelve datos fijos; los tests validan la transformación a
// DTOs y las reglas del caso de uso, no el SQL (eso vive en el adaptador).
type fakeReportRepo struct {
	lowStock   []repository.LowStockItem
	byCategory []repository.CategoryValuation
	activity   []repository.ActivityItem
	totalValue decimal.Decimal

	products int64
	units    int64
	lowCount int64

	lastActivityLimit int
}

func (f *fakeReportRepo) GetLowStock(context.Context) ([]repository.LowStockItem, error) {
	return f.lowStock, nil
}
func (f *fakeReportRepo) CountLowStock(context.Context) (int64, error)  { return f.lowCount, nil }
func (f *fakeReportRepo) CountProducts(context.Context) (int64, error)  { return f.products, nil }
func (f *fakeReportRepo) SumUnitsOnHand(context.Context) (int64, error) { return f.units, nil }
func (f *fakeReportRepo) GetTotalValuation(context.Context) (decimal.Decimal, error) {
	return f.totalValue, nil
}
func (f *fakeReportRepo) GetValuationByCategory(context.Context) ([]repository.CategoryValuation, error) {
	return f.byCategory, nil
}
func (f *fakeReportRepo) GetRecentActivity(_ context.Context, limit int) ([]repository.ActivityItem, error) {
	f.lastActivityLimit = limit
	if limit < len(f.activity) {
		return f.activity[:limit], nil
	}
	return f.activity, nil
}
func (f *fakeReportRepo) GetActivityByDateRange(_ context.Context, _, _ time.Time, limit, _ int) ([]repository.ActivityItem, error) {
	f.lastActivityLimit = limit
	return f.activity, nil
}

func TestLowStock_ClasificaConLaDefinicionUnica(t *testing.T) {
	repo := &fakeReportRepo{
		lowStock: []repository.LowStockItem{
			{ProductID: "p1", SKU: "A", Name: "agotado", Quantity: 0, MinStockLevel: 5},
			{ProductID: "p2", SKU: "B", Name: "bajo", Quantity: 3, MinStockLevel: 5},
			{ProductID: "p3", SKU: "C", Name: "en el límite", Quantity: 5, MinStockLevel: 5},
		},
	}
	uc := reports.NewUseCase(repo)

	items, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, string(ledger.StatusOut), items[0].Status, "cantidad 0 es out")
	assert.Equal(t, string(ledger.StatusLow), items[1].Status)
	assert.Equal(t, string(ledger.StatusLow), items[2].Status, "igual al mínimo sigue siendo low")
}

func TestLowStock_SinResultados(t *testing.T) {
	uc := reports.NewUseCase(&fakeReportRepo{})
	items, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items, "sin productos críticos el reporte es una lista vacía, no un error")
}

func TestValuation_RedondeaADosDecimales(t *testing.T) {
	repo := &fakeReportRepo{
		totalValue: decimal.RequireFromString("1234.5678"),
		byCategory: []repository.CategoryValuation{
			{Category: "Bebidas", ProductCount: 2, TotalUnits: 30, Value: decimal.RequireFromString("1000.005")},
			{Category: "Sin categoría", ProductCount: 1, TotalUnits: 4, Value: decimal.RequireFromString("234.5628")},
		},
	}
	uc := reports.NewUseCase(repo)

	result, err := uc.Valuation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1234.57", result.TotalValue.String())
	require.Len(t, result.ByCategory, 2)
	assert.Equal(t, "1000.01", result.ByCategory[0].Value.String())
	assert.Equal(t, "Sin categoría", result.ByCategory[1].Category)
}

func TestRecentActivity_LedgerVacio(t *testing.T) {
	uc := reports.NewUseCase(&fakeReportRepo{})
	items, err := uc.RecentActivity(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, items, "una instalación nueva produce un feed vacío, no un error")
}

func TestRecentActivity_AcotaElLimite(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewUseCase(repo)

	_, err := uc.RecentActivity(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastActivityLimit, "limit <= 0 usa el default")

	_, err = uc.RecentActivity(context.Background(), 100000)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastActivityLimit, "el límite se acota al máximo")
}

func TestRecentActivity_TransformaADTO(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{
		activity: []repository.ActivityItem{
			{
				MovementID:  "m1",
				ProductID:   "p1",
				ProductName: "Café",
				SKU:         "CAFE-01",
				Kind:        ledger.KindOutbound,
				Magnitude:   3,
				Reason:      "venta",
				Username:    "jperez",
				CreatedAt:   createdAt,
			},
		},
	}
	uc := reports.NewUseCase(repo)

	items, err := uc.RecentActivity(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	it := items[0]
	assert.Equal(t, "m1", it.MovementID)
	assert.Equal(t, "out", it.Type)
	assert.Equal(t, int64(3), it.Quantity)
	assert.Equal(t, "jperez", it.Username)
	assert.Equal(t, createdAt, it.CreatedAt)
}

func TestDashboardSummary_AgregaTodasLasFuentes(t *testing.T) {
	repo := &fakeReportRepo{
		products:   12,
		units:      340,
		lowCount:   3,
		totalValue: decimal.RequireFromString("9876.543"),
		activity: []repository.ActivityItem{
			{MovementID: "m1", Kind: ledger.KindInbound, Magnitude: 10},
			{MovementID: "m2", Kind: ledger.KindOutbound, Magnitude: 2},
		},
	}
	uc := reports.NewUseCase(repo)

	summary, err := uc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), summary.TotalProducts)
	assert.Equal(t, int64(340), summary.TotalUnits)
	assert.Equal(t, int64(3), summary.LowStockCount)
	assert.Equal(t, "9876.54", summary.InventoryValue.String())
	assert.Len(t, summary.RecentActivity, 2)
}

func TestDashboardSummary_SistemaVacio(t *testing.T) {
	uc := reports.NewUseCase(&fakeReportRepo{totalValue: decimal.Zero})

	summary, err := uc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalProducts)
	assert.Zero(t, summary.TotalUnits)
	assert.Zero(t, summary.LowStockCount)
	assert.True(t, summary.InventoryValue.IsZero())
	assert.Empty(t, summary.RecentActivity)
}
