// Package reports contiene las vistas derivadas del ledger: stock bajo,
// valoración del inventario y actividad reciente. Todas son lecturas sobre el
// último estado confirmado; nunca mutan y no toman locks.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// recentActivityMax tope de filas para el feed de actividad; el historial crece
// sin límite y nunca se escanea completo.
const recentActivityMax = 100

// UseCase vistas derivadas read-only sobre Catálogo + Stock Ledger.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// LowStock productos con estado Low u Out, los más críticos primero
// (cantidad ascendente). El estado se clasifica con la definición única
// ledger.StockStatus.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.reportRepo.GetLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock bajo: %w", err)
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemDTO{
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			Name:          it.Name,
			Quantity:      it.Quantity,
			MinStockLevel: it.MinStockLevel,
			Status:        string(ledger.StockStatus(it.Quantity, it.MinStockLevel)),
		})
	}
	return out, nil
}

// Valuation valor total del inventario (Σ cost × quantity) y desglose por categoría.
func (uc *UseCase) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	total, err := uc.reportRepo.GetTotalValuation(ctx)
	if err != nil {
		return nil, fmt.Errorf("valoración total: %w", err)
	}
	byCategory, err := uc.reportRepo.GetValuationByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("valoración por categoría: %w", err)
	}
	groups := make([]dto.CategoryValuationDTO, 0, len(byCategory))
	for _, g := range byCategory {
		groups = append(groups, dto.CategoryValuationDTO{
			Category:     g.Category,
			ProductCount: g.ProductCount,
			TotalUnits:   g.TotalUnits,
			Value:        g.Value.Round(2),
		})
	}
	return &dto.ValuationResponse{TotalValue: total.Round(2), ByCategory: groups}, nil
}

// RecentActivity últimos limit movimientos con producto y actor resueltos.
// Un ledger vacío (instalación nueva) devuelve un slice vacío, no un error.
func (uc *UseCase) RecentActivity(ctx context.Context, limit int) ([]dto.ActivityItemDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > recentActivityMax {
		limit = recentActivityMax
	}
	items, err := uc.reportRepo.GetRecentActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("actividad reciente: %w", err)
	}
	return toActivityDTOs(items), nil
}

// ActivityByDateRange movimientos dentro de [from, to], paginados, más reciente primero.
func (uc *UseCase) ActivityByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]dto.ActivityItemDTO, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > recentActivityMax {
		limit = recentActivityMax
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.reportRepo.GetActivityByDateRange(ctx, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("actividad por rango: %w", err)
	}
	return toActivityDTOs(items), nil
}

func toActivityDTOs(items []repository.ActivityItem) []dto.ActivityItemDTO {
	out := make([]dto.ActivityItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ActivityItemDTO{
			MovementID:  it.MovementID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			Type:        string(it.Kind),
			Quantity:    it.Magnitude,
			Reason:      it.Reason,
			Username:    it.Username,
			CreatedAt:   it.CreatedAt,
		})
	}
	return out
}
