package main

import (
	"context"
	"fmt"
	"time"

	"fml2scene/internal/common/config"
	"fml2scene/internal/common/logging"
	"fml2scene/internal/common/middleware"
	"fml2scene/internal/converter/handlers"
	"fml2scene/internal/converter/metrics"
	"fml2scene/internal/converter/repository"
	"fml2scene/internal/converter/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Converter Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Failed to load config: %v", err)
	}
	logging.Init("CONVERTER", cfg.LogLevel)

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		logging.Logger.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		logging.Logger.Fatalf("init db: %v", err)
	}

	fileStorage := storage.NewFileStorage(cfg.OutputDir, storage.FormatJSON)
	handler := handlers.NewHandler(cfg.ConverterOptions(), repo, fileStorage, metrics.New())

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    32 * 1024 * 1024,
		AppName:      "Converter Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	handler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logging.Logger.Infof("Starting Converter Service on %s (env: %s, db: %s, output: %s)",
		addr, cfg.Environment, cfg.DBPath, cfg.OutputDir)

	if err := app.Listen(addr); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}
