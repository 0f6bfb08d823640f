package routes

import (
	"eyefi-app/config"
	"eyefi-app/controllers"
	"eyefi-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, appDB *gorm.DB) {
	authController := controllers.NewAuthController(appDB)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", authController.Login)

	apiAuth := app.Group(config.MAIN_ROUTES+"/auth", middleware.AuthMiddleware)
	apiAuth.Get("/logout", authController.Logout)
	apiAuth.Get("/isLoggedIn", authController.IsLoggedIn)
}
