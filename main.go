package main

import (
	"log"

	"iris_registry/config"
	"iris_registry/database"
	"iris_registry/handlers"
	"iris_registry/routes"
	"iris_registry/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Database connection
var DB *gorm.DB

func initServices() error {
	var err error
	DB, err = database.Connect(config.AppConfig.DBPath)
	if err != nil {
		return err
	}
	utils.Logger.Info("Connected to database", zap.String("path", config.AppConfig.DBPath))

	handlers.InitHandlers(DB)
	return nil
}

func main() {
	config.LoadConfig()
	if err := utils.InitLogger(config.AppConfig.LogLevel, config.AppConfig.LogFile); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.Logger.Sync() //nolint:errcheck

	if err := initServices(); err != nil {
		utils.Logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               "iris-registry",
		DisableStartupMessage: true,
	})
	routes.RegisterRoutes(app)

	utils.Logger.Info("Server is running", zap.String("port", config.AppConfig.Port))
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		utils.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
