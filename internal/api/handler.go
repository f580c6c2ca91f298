package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rajeshneupane7/weather-data-extraction/internal/weather"
	"github.com/rajeshneupane7/weather-data-extraction/pkg/client"
)

type Handler struct {
	client weather.HistoryClient
	logger *zap.Logger
}

func NewHandler(c weather.HistoryClient, logger *zap.Logger) *Handler {
	return &Handler{
		client: c,
		logger: logger,
	}
}

// GetHistory handles GET /api/v1/weather/history
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	location := c.Query("location")
	if location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Location parameter is required",
		})
	}

	frequency, err := strconv.Atoi(c.Query("frequency", "1"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Frequency parameter must be an integer",
		})
	}

	params := weather.Params{
		Location:  location,
		StartDate: c.Query("start"),
		EndDate:   c.Query("end"),
		Frequency: frequency,
	}

	fetcher, err := weather.NewFetcher(params, h.client, h.logger)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.logger.Info("Fetching weather history",
		zap.String("location", location),
		zap.String("start", params.StartDate),
		zap.String("end", params.EndDate),
		zap.Int("frequency", frequency))

	table, err := fetcher.Fetch(c.Context())
	if err != nil {
		h.logger.Error("Failed to fetch weather history",
			zap.String("location", location),
			zap.Error(err))

		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error":   "Failed to fetch weather history",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"location":  table.Location,
		"columns":   weather.Columns(),
		"row_count": table.Len(),
		"rows":      table.Rows,
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
	})
}

// statusForError maps the error taxonomy onto HTTP status codes. Provider
// rejections and unparseable responses are upstream faults.
func statusForError(err error) int {
	var provErr *client.ProviderError
	switch {
	case errors.Is(err, weather.ErrInvalidParameter):
		return fiber.StatusBadRequest
	case errors.As(err, &provErr),
		errors.Is(err, client.ErrMalformedResponse),
		errors.Is(err, weather.ErrSchemaMismatch):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

var startTime = time.Now()
