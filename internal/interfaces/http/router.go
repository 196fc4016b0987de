package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zoo-api/internal/application/analytics"
	"github.com/jhoicas/zoo-api/internal/application/auth"
	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/application/purchasing"
	"github.com/jhoicas/zoo-api/internal/application/usecase"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	FeedUC        *usecase.FeedUseCase
	RationUC      *usecase.RationUseCase
	Replenishment *inventory.ReplenishmentUseCase
	AdjustStock   *inventory.AdjustStockUseCase
	Feeding       *inventory.FeedingUseCase
	Orders        *purchasing.OrderUseCase
	Workflow      *purchasing.WorkflowUseCase
	OrderPDF      *purchasing.PDFUseCase
	Purchases     *analytics.PurchasesUseCase
	Consumption   *analytics.ConsumptionUseCase
	Malfunctions  *usecase.MalfunctionUseCase
	Faults        *analytics.FaultsUseCase
	Tokens        TokenVerifier
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.Tokens)
	can := RequireCapability

	// Auth: login público; el registro de empleados es solo para admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", requireAuth, can(entity.CapEmployeesRegister), authHandler.Register)

	// Feeds
	feedHandler := NewFeedHandler(deps.FeedUC, deps.Replenishment, deps.AdjustStock)
	feeds := api.Group("/feeds", requireAuth)
	feeds.Get("/", can(entity.CapFeedsRead), feedHandler.List)
	feeds.Post("/", can(entity.CapFeedsWrite), feedHandler.Create)
	feeds.Get("/replenishment", can(entity.CapFeedsRead), feedHandler.Replenishment)
	feeds.Get("/:id", can(entity.CapFeedsRead), feedHandler.GetByID)
	feeds.Get("/:id/movements", can(entity.CapFeedsRead), feedHandler.Movements)
	feeds.Post("/:id/adjustments", can(entity.CapStockAdjust), feedHandler.Adjust)

	// Rations
	rationHandler := NewRationHandler(deps.RationUC)
	rations := api.Group("/rations", requireAuth, can(entity.CapRationsManage))
	rations.Get("/", rationHandler.List)
	rations.Put("/", rationHandler.Upsert)
	rations.Delete("/:id", rationHandler.Delete)

	// Purchases
	purchaseHandler := NewPurchaseHandler(deps.Orders, deps.Workflow, deps.OrderPDF)
	purchases := api.Group("/purchases", requireAuth)
	purchases.Get("/", can(entity.CapPurchasesRead), purchaseHandler.List)
	purchases.Post("/", can(entity.CapPurchasesWrite), purchaseHandler.Create)
	purchases.Post("/items", can(entity.CapPurchasesWrite), purchaseHandler.AddItem)
	purchases.Get("/:id", can(entity.CapPurchasesRead), purchaseHandler.GetByID)
	purchases.Post("/:id/items", can(entity.CapPurchasesWrite), purchaseHandler.AddItem)
	purchases.Post("/:id/status", can(entity.CapPurchasesTransit), purchaseHandler.TransitionStatus)
	purchases.Get("/:id/pdf", can(entity.CapPurchasesRead), purchaseHandler.DownloadPDF)

	// Feedings
	feedingHandler := NewFeedingHandler(deps.Feeding)
	feedings := api.Group("/feedings", requireAuth)
	feedings.Post("/", can(entity.CapFeedingsRecord), feedingHandler.Record)
	feedings.Get("/", can(entity.CapFeedingsRecord, entity.CapAnalyticsRead), feedingHandler.List)

	// Malfunctions
	malfunctionHandler := NewMalfunctionHandler(deps.Malfunctions)
	malfunctions := api.Group("/malfunctions", requireAuth)
	malfunctions.Get("/", can(entity.CapFaultsReport), malfunctionHandler.List)
	malfunctions.Post("/", can(entity.CapFaultsReport), malfunctionHandler.Create)
	malfunctions.Get("/places", can(entity.CapFaultsReport), malfunctionHandler.Places)
	malfunctions.Post("/:id/status", can(entity.CapFaultsManage), malfunctionHandler.TransitionStatus)

	// Expenses + analytics
	analyticsHandler := NewAnalyticsHandler(deps.Purchases, deps.Consumption, deps.Faults)
	expenses := api.Group("/expenses", requireAuth)
	expenses.Get("/my", can(entity.CapExpensesOwn, entity.CapExpensesAll), analyticsHandler.MyExpenses)
	expenses.Get("/", can(entity.CapExpensesAll), analyticsHandler.Expenses)

	an := api.Group("/analytics", requireAuth, can(entity.CapAnalyticsRead))
	an.Get("/purchases-status", analyticsHandler.PurchasesByStatus)
	an.Get("/consumption", analyticsHandler.Consumption)
	an.Get("/consumption/export", analyticsHandler.ExportConsumption)
	an.Get("/faults", analyticsHandler.Faults)
	an.Get("/faults/export", analyticsHandler.ExportFaults)
}
