package weather

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rajeshneupane7/weather-data-extraction/pkg/client"
)

// HistoryClient is the narrow network boundary: one call per sub-window,
// returning the provider's parsed daily records. *client.WWOClient
// implements it; tests substitute canned responses.
type HistoryClient interface {
	PastWeather(ctx context.Context, location string, start, end time.Time, frequency int) ([]client.DailyRecord, error)
}

// Fetcher retrieves historical observations for one location over a date
// range and normalizes them into a single Table.
type Fetcher struct {
	params Params
	client HistoryClient
	logger *zap.Logger
}

// NewFetcher validates the parameters and builds a Fetcher. Invalid
// parameters are rejected here, before any network call.
func NewFetcher(params Params, c HistoryClient, logger *zap.Logger) (*Fetcher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		params: params,
		client: c,
		logger: logger,
	}, nil
}

// Fetch runs the extraction: one provider call per calendar-month
// sub-window, in order, flattening each response into rows. Any provider or
// parse failure aborts the whole fetch; no partial table is returned. The
// one exception is the CSV side effect: a failed write is reported as a
// *WriteError alongside the still-valid table.
func (f *Fetcher) Fetch(ctx context.Context) (*Table, error) {
	p := f.params
	windows := monthWindows(p.start, p.end)

	rows := make([]Row, 0, p.Days()*24/p.Frequency)
	for _, w := range windows {
		f.logf("Retrieving window",
			zap.String("location", p.Location),
			zap.String("start", w.start.Format(DateLayout)),
			zap.String("end", w.end.Format(DateLayout)))

		days, err := f.client.PastWeather(ctx, p.Location, w.start, w.end, p.Frequency)
		if err != nil {
			f.logger.Error("Window fetch failed",
				zap.String("location", p.Location),
				zap.String("start", w.start.Format(DateLayout)),
				zap.Error(err))
			return nil, fmt.Errorf("window %s..%s: %w",
				w.start.Format(DateLayout), w.end.Format(DateLayout), err)
		}

		for _, day := range days {
			dayRows, err := flattenDay(day, p.Frequency, p.Location)
			if err != nil {
				return nil, fmt.Errorf("window %s..%s: %w",
					w.start.Format(DateLayout), w.end.Format(DateLayout), err)
			}
			rows = append(rows, dayRows...)
		}

		f.logf("Window complete",
			zap.String("location", p.Location),
			zap.String("end", w.end.Format(DateLayout)),
			zap.Int("rows", len(rows)))
	}

	table := &Table{Location: p.Location, Rows: rows}

	if p.CSVDir != "" {
		path, err := table.WriteCSV(p.CSVDir)
		if err != nil {
			f.logger.Error("CSV write failed", zap.String("path", path), zap.Error(err))
			return table, err
		}
		f.logf("Data saved", zap.String("path", path))
	}

	f.logf("Fetch complete",
		zap.String("location", p.Location),
		zap.Int("rows", table.Len()))
	return table, nil
}

// logf logs checkpoint messages at info level in verbose mode and debug
// level otherwise.
func (f *Fetcher) logf(msg string, fields ...zap.Field) {
	level := zapcore.DebugLevel
	if f.params.Verbose {
		level = zapcore.InfoLevel
	}
	f.logger.Log(level, msg, fields...)
}
