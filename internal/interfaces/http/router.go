// Package http expone la API REST sobre Fiber: handlers finos que parsean,
// delegan en los casos de uso y mapean errores de dominio a códigos HTTP.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/auth"
	appledger "github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/reports"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// RouterDeps dependencias del router: casos de uso + secreto JWT.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	LedgerUC   *appledger.UseCase
	ReportsUC  *reports.UseCase
	JWTSecret  string
}

// Router registra todas las rutas de la API.
//
// Reglas de autorización:
//   - auth es pública; todo lo demás requiere JWT válido.
//   - cualquier rol autenticado puede leer y aplicar movimientos de stock
//     (el trabajo de bodega lo hace staff).
//   - mutaciones de catálogo requieren manager o admin.
//   - eliminar productos requiere admin.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.ProductUC)
	reportHandler := NewReportHandler(deps.ReportsUC)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	catalogWrite := RequireRole(entity.RoleManager, entity.RoleAdmin)

	products := protected.Group("/products")
	products.Get("", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("", catalogWrite, productHandler.Create)
	products.Put("/:id", catalogWrite, productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	categories := protected.Group("/categories")
	categories.Get("", categoryHandler.List)
	categories.Post("", catalogWrite, categoryHandler.Create)

	stock := protected.Group("/stock")
	stock.Post("/movements", ledgerHandler.ApplyMovement)
	stock.Get("/movements", ledgerHandler.ListMovements)
	stock.Get("/balance/:productId", ledgerHandler.GetBalance)

	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/valuation", reportHandler.Valuation)
	reportsGroup.Get("/activity", reportHandler.Activity)

	protected.Get("/dashboard/summary", reportHandler.DashboardSummary)
}
