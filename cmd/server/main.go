package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rajeshneupane7/weather-data-extraction/internal/api"
	"github.com/rajeshneupane7/weather-data-extraction/internal/config"
	"github.com/rajeshneupane7/weather-data-extraction/internal/scheduler"
	"github.com/rajeshneupane7/weather-data-extraction/pkg/client"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Historical Weather Extraction Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.Provider.APIKey == "" {
		logger.Fatal("WWO_API_KEY is required")
	}

	// Provider client shared by the API and the scheduled export
	wwo := client.NewWWOClient(cfg.Provider.APIKey, cfg.Provider.BaseURL, client.ClientConfig{
		Timeout:        cfg.Provider.Timeout,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}, logger)

	// Initialize scheduler
	exportScheduler := scheduler.NewScheduler(
		wwo,
		cfg.Export.Locations,
		cfg.Export.Frequency,
		cfg.Export.CSVDir,
		cfg.Export.Schedule,
		logger,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(wwo, logger)
	api.SetupRoutes(app, handler, logger)

	// Start scheduler
	if err := exportScheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduler
	exportScheduler.Stop()

	// Shutdown Fiber app
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
