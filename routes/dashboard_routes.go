package routes

import (
	"eyefi-app/config"
	"eyefi-app/controllers"
	"eyefi-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, erpDB, appDB *gorm.DB) {
	dashboardController := controllers.NewDashboardController(erpDB, appDB)
	api := app.Group(config.MAIN_ROUTES+"/dashboard", middleware.AuthMiddleware)

	api.Get("/allocation-summary", dashboardController.GetAllocationSummary)
}
