package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rajeshneupane7/weather-data-extraction/internal/weather"
)

// Scheduler runs a cron-driven export: at each scheduled tick it fetches the
// previous day's observations for every configured location and writes them
// to the CSV directory.
type Scheduler struct {
	client    weather.HistoryClient
	logger    *zap.Logger
	locations []string
	frequency int
	csvDir    string
	schedule  string
	cron      *cron.Cron
}

func NewScheduler(c weather.HistoryClient, locations []string, frequency int, csvDir, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		client:    c,
		logger:    logger,
		locations: locations,
		frequency: frequency,
		csvDir:    csvDir,
		schedule:  schedule,
		cron:      cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if len(s.locations) == 0 || s.csvDir == "" {
		s.logger.Info("Scheduled export disabled, no locations or CSV directory configured")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.RunExport(context.Background())
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Scheduler started",
		zap.String("schedule", s.schedule),
		zap.Strings("locations", s.locations))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// RunExport fetches yesterday's observations for each configured location
// and writes one CSV per location. Failures are logged per location; one
// failing location does not stop the others.
func (s *Scheduler) RunExport(ctx context.Context) {
	day := time.Now().AddDate(0, 0, -1).Format(weather.DateLayout)

	for _, location := range s.locations {
		params := weather.Params{
			Location:  location,
			StartDate: day,
			EndDate:   day,
			Frequency: s.frequency,
			CSVDir:    s.csvDir,
		}

		fetcher, err := weather.NewFetcher(params, s.client, s.logger)
		if err != nil {
			s.logger.Error("Export skipped, invalid parameters",
				zap.String("location", location),
				zap.Error(err))
			continue
		}

		table, err := fetcher.Fetch(ctx)
		if err != nil {
			s.logger.Error("Export failed",
				zap.String("location", location),
				zap.String("date", day),
				zap.Error(err))
			continue
		}

		s.logger.Info("Export complete",
			zap.String("location", location),
			zap.String("date", day),
			zap.Int("rows", table.Len()))
	}
}
