package routes

import (
	"eyefi-app/controllers"
	"eyefi-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, appDB *gorm.DB) {
	userController := controllers.NewUserController(appDB)

	api := app.Group("/api/v1/users", middleware.AuthMiddleware)

	api.Post("/", userController.CreateUser)
	api.Get("/:id", userController.GetUserByID)
	api.Get("/", userController.GetAllUsers)
	api.Put("/:id", userController.UpdateUser)
	api.Delete("/:id", userController.DeleteUser)

	profile := app.Group("/api/v1/user", middleware.AuthMiddleware)
	profile.Get("/profile", userController.GetProfile)
}
