package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
)

const dashboardRecentMovements = 5 // filas del widget de actividad del dashboard

// DashboardSummary construye el resumen del dashboard: total de productos,
// unidades en existencia, conteo de stock bajo, valor del inventario y los
// últimos movimientos. Se calcula fresco en cada llamada.
//
// Cuatro consultas en paralelo + el feed de actividad:
//  1. CountProducts
//  2. SumUnitsOnHand
//  3. CountLowStock
//  4. GetTotalValuation
func (uc *UseCase) DashboardSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int64
		err error
	}
	type valueResult struct {
		v   decimal.Decimal
		err error
	}

	productsCh := make(chan countResult, 1)
	unitsCh := make(chan countResult, 1)
	lowStockCh := make(chan countResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		n, err := uc.reportRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.SumUnitsOnHand(ctx)
		unitsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountLowStock(ctx)
		lowStockCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.reportRepo.GetTotalValuation(ctx)
		valueCh <- valueResult{v, err}
	}()

	products := <-productsCh
	units := <-unitsCh
	lowStock := <-lowStockCh
	value := <-valueCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", products.err)
	}
	if units.err != nil {
		return nil, fmt.Errorf("dashboard: unidades en existencia: %w", units.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de stock bajo: %w", lowStock.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor del inventario: %w", value.err)
	}

	recent, err := uc.RecentActivity(ctx, dashboardRecentMovements)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:  products.n,
		TotalUnits:     units.n,
		LowStockCount:  lowStock.n,
		InventoryValue: value.v.Round(2),
		RecentActivity: recent,
	}, nil
}
