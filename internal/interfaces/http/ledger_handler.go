package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	appledger "github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	domledger "github.com/tu-usuario/stock-ledger/internal/domain/ledger"
)

// LedgerHandler maneja las peticiones HTTP del motor de stock (protegido).
type LedgerHandler struct {
	uc       *appledger.UseCase
	products *usecase.ProductUseCase
}

// NewLedgerHandler construye el handler. El caso de uso de productos se usa
// para resolver el nivel mínimo al clasificar el estado del balance.
func NewLedgerHandler(uc *appledger.UseCase, products *usecase.ProductUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, products: products}
}

// ApplyMovement godoc
// @Summary      Aplicar movimiento de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, type (in|out|set), quantity (> 0), reason"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *LedgerHandler) ApplyMovement(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.ApplyFromRequest(c.Context(), actorID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			// Mensaje específico: cuánto se pidió y cuánto hay.
			available, balErr := h.uc.GetBalance(c.Context(), in.ProductID)
			if balErr == nil {
				return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
					Code:    "INSUFFICIENT_STOCK",
					Message: fmt.Sprintf("no se pueden retirar %d unidades, solo hay %d en stock", in.Quantity, available),
				})
			}
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetBalance godoc
// @Summary      Balance actual de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/balance/{productId} [get]
func (h *LedgerHandler) GetBalance(c *fiber.Ctx) error {
	productID := c.Params("productId")
	quantity, err := h.uc.GetBalance(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BalanceResponse{
		ProductID: productID,
		Quantity:  quantity,
		Status:    string(domledger.StockStatus(quantity, product.MinStockLevel)),
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        limit       query  int     false  "máx. filas (default 20)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.uc.ListMovements(c.Context(), productID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      string(m.Kind),
			Quantity:  m.Magnitude,
			Reason:    m.Reason,
			ActorID:   m.ActorID,
			CreatedAt: m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(items), "movements": items})
}
