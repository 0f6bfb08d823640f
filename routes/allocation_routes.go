package routes

import (
	"eyefi-app/config"
	"eyefi-app/controllers"
	"eyefi-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAllocationRoutes(app *fiber.App, erpDB, appDB *gorm.DB) {
	allocationController := controllers.NewAllocationController(erpDB, appDB)
	manualController := controllers.NewManualAllocationController(appDB)

	api := app.Group(config.MAIN_ROUTES+"/allocation", middleware.AuthMiddleware)

	api.Get("/parts-with-orders", allocationController.GetPartsWithOrders)
	api.Post("/analysis", allocationController.GetAnalysis)
	api.Post("/inventory-availability", allocationController.GetInventoryAvailability)
	api.Get("/unmatched-sales-orders", allocationController.GetUnmatchedSalesOrders)
	api.Get("/capacity-vs-demand", allocationController.GetCapacityVsDemand)
	api.Get("/table", allocationController.GetTable)
	api.Get("/excel", allocationController.ExportExcel)

	api.Get("/manual", manualController.GetManualAllocations)
	api.Post("/manual", manualController.CreateManualAllocation)
	api.Post("/reassign", manualController.Reassign)
	api.Post("/lock", manualController.Lock)
	api.Post("/unlock", manualController.Unlock)
	api.Post("/priority", manualController.UpdatePriority)
	api.Get("/audit-trail", manualController.GetAuditTrail)
	api.Post("/audit-trail", manualController.AppendAuditEntry)
}
