package routes

import (
	"iris_registry/config"
	"iris_registry/handlers"
	"iris_registry/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func RegisterRoutes(app *fiber.App) {
	app.Use(middleware.RequestLogger)
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/", handlers.Home)

	api := app.Group("/api")
	if config.AppConfig.JWTSecret != "" {
		api.Use(middleware.RequireAuth)
	}
	api.Post("/addEmployee", handlers.AddEmployee)
}
