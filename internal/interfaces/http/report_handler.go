package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/reports"
)

// ReportHandler vistas derivadas read-only: stock bajo, valoración, actividad
// y el resumen del dashboard.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Productos en o bajo su nivel mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Valuation godoc
// @Summary      Valor del inventario (Σ costo × existencia) y desglose por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	result, err := h.uc.Valuation(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// Activity godoc
// @Summary      Actividad del ledger, más reciente primero
// @Description  Sin parámetros devuelve los últimos movimientos. Con from/to
// @Description  (RFC 3339) filtra por rango de fechas y admite paginación.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "inicio del rango (RFC 3339)"
// @Param        to      query  string  false  "fin del rango (RFC 3339)"
// @Param        limit   query  int     false  "máx. filas"
// @Param        offset  query  int     false  "desplazamiento (solo con rango)"
// @Success      200  {array}   dto.ActivityItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/activity [get]
func (h *ReportHandler) Activity(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" && toStr == "" {
		items, err := h.uc.RecentActivity(c.Context(), page.Limit)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"total": len(items), "items": items})
	}
	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, se espera RFC 3339"})
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, se espera RFC 3339"})
	}
	if to.Before(from) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el rango termina antes de empezar"})
	}
	items, err := h.uc.ActivityByDateRange(c.Context(), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// DashboardSummary godoc
// @Summary      Resumen del dashboard
// @Description  Totales de productos y unidades, conteo de stock bajo, valor
// @Description  del inventario y movimientos recientes, calculado fresco.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *ReportHandler) DashboardSummary(c *fiber.Ctx) error {
	summary, err := h.uc.DashboardSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
