package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/application/sales"
	"github.com/jhoicas/pos-inventory/internal/application/usecase"
	"github.com/jhoicas/pos-inventory/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements     *inventory.MovementUseCase
	Queries       *inventory.QueryUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Alerts        *inventory.AlertMonitor
	Sales         *sales.UseCase
	Products      *usecase.ProductUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Las rutas fijas de /inventory van antes de /:productId.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleManager, jwt.RoleCashier)
	managers := RequireRole(jwt.RoleAdmin, jwt.RoleManager)
	admins := RequireRole(jwt.RoleAdmin)

	inv := api.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Movements, deps.Queries, deps.Replenishment)
	alertHandler := NewAlertHandler(deps.Alerts)

	inv.Get("/", anyRole, invHandler.List)
	inv.Post("/", managers, invHandler.InitRecord)
	inv.Get("/low-stock", anyRole, invHandler.LowStock)
	inv.Get("/report", managers, invHandler.Report)
	inv.Get("/report.pdf", managers, invHandler.ReportPDF)
	inv.Get("/replenishment", managers, invHandler.Replenishment)
	inv.Post("/movements", managers, invHandler.ApplyMovement)
	inv.Get("/movements", anyRole, invHandler.ListMovements)

	inv.Get("/alerts", anyRole, alertHandler.List)
	inv.Post("/alerts/evaluate", managers, alertHandler.Evaluate)
	inv.Patch("/alerts/:id/read", anyRole, alertHandler.MarkRead)
	inv.Patch("/alerts/:id/resolve", managers, alertHandler.Resolve)

	inv.Get("/:productId", anyRole, invHandler.Get)
	inv.Put("/:productId", managers, invHandler.UpdateThresholds)
	inv.Post("/:productId/adjust", managers, invHandler.Adjust)
	inv.Post("/:productId/count", managers, invHandler.Count)
	inv.Get("/:productId/movements", anyRole, invHandler.ProductMovements)
	inv.Get("/:productId/verify", admins, invHandler.Verify)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Products)
	products.Post("/", managers, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)

	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.Sales)
	salesGroup.Post("/", anyRole, salesHandler.Create)
	salesGroup.Get("/", anyRole, salesHandler.List)
	salesGroup.Get("/:id", anyRole, salesHandler.Get)
	salesGroup.Post("/:id/cancel", managers, salesHandler.Cancel)
	salesGroup.Post("/:id/refund", managers, salesHandler.Refund)
}
