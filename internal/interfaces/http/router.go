package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/purchases"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/application/sales"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	Ledger     *stock.Ledger
	SalesUC    *sales.RecordSaleUseCase
	PurchaseUC *purchases.RecordPurchaseUseCase
	ReportUC   *report.ReportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; crear/editar solo admin y bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC)
	products.Get("/", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Update)

	// Stock (protegido; ajustes manuales solo admin)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger)
	stockGroup.Post("/adjustments", RequireRole(entity.RoleAdmin), stockHandler.Adjust)

	// Sales (protegido; registrar solo admin y vendedor)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleVendedor), salesHandler.RecordSale)
	salesGroup.Get("/", salesHandler.List)

	// Purchases + shipments (protegido; registrar solo admin y bodeguero)
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), purchaseHandler.RecordPurchase)
	purchasesGroup.Get("/", purchaseHandler.List)
	protected.Patch("/shipments/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), purchaseHandler.UpdateShipment)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory", reportHandler.Inventory)
}
