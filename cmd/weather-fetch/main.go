package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/rajeshneupane7/weather-data-extraction/internal/config"
	"github.com/rajeshneupane7/weather-data-extraction/internal/weather"
	"github.com/rajeshneupane7/weather-data-extraction/pkg/client"
)

func main() {
	location := flag.String("location", "", "City name or postal code")
	start := flag.String("start", "", "Start date (YYYY-MM-DD, inclusive)")
	end := flag.String("end", "", "End date (YYYY-MM-DD, inclusive)")
	frequency := flag.Int("frequency", 1, "Sampling frequency in hours (1, 3, 6 or 12)")
	out := flag.String("out", "", "Directory to write <location>.csv into (optional)")
	apiKey := flag.String("key", "", "WorldWeatherOnline API key (overrides WWO_API_KEY)")
	verbose := flag.Bool("v", false, "Verbose progress output")
	flag.Parse()

	var logger *zap.Logger
	if *verbose {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	key := *apiKey
	if key == "" {
		key = cfg.Provider.APIKey
	}
	if key == "" {
		logger.Fatal("API key is required, pass -key or set WWO_API_KEY")
	}

	wwo := client.NewWWOClient(key, cfg.Provider.BaseURL, client.ClientConfig{
		Timeout:        cfg.Provider.Timeout,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}, logger)

	params := weather.Params{
		Location:  *location,
		StartDate: *start,
		EndDate:   *end,
		Frequency: *frequency,
		CSVDir:    *out,
		Verbose:   *verbose,
	}

	fetcher, err := weather.NewFetcher(params, wwo, logger)
	if err != nil {
		logger.Error("Invalid parameters", zap.Error(err))
		flag.Usage()
		os.Exit(2)
	}

	table, err := fetcher.Fetch(context.Background())
	if err != nil {
		var writeErr *weather.WriteError
		if errors.As(err, &writeErr) {
			// The fetched table is still valid, only the CSV write failed.
			logger.Error("Fetched data but failed to write CSV",
				zap.Int("rows", table.Len()),
				zap.Error(err))
			os.Exit(1)
		}
		logger.Fatal("Fetch failed", zap.Error(err))
	}

	logger.Info("Fetch complete",
		zap.String("location", table.Location),
		zap.Int("rows", table.Len()))
}
