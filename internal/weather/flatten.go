package weather

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rajeshneupane7/weather-data-extraction/pkg/client"
)

// flattenDay turns one daily record into one row per hourly sample,
// propagating the day's date, aggregates and astronomy fields onto every
// row. Pure transform: no I/O, no shared state.
func flattenDay(day client.DailyRecord, frequency int, location string) ([]Row, error) {
	if day.Date == "" {
		return nil, fmt.Errorf("%w: daily record has no date field", ErrSchemaMismatch)
	}
	date, err := time.Parse(DateLayout, day.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: daily record date %q is not in YYYY-MM-DD format", ErrSchemaMismatch, day.Date)
	}

	want := 24 / frequency
	if len(day.Hourly) != want {
		return nil, fmt.Errorf("%w: day %s has %d hourly records, want %d for %dh frequency",
			ErrSchemaMismatch, day.Date, len(day.Hourly), want, frequency)
	}

	var astro client.Astronomy
	if len(day.Astronomy) > 0 {
		astro = day.Astronomy[0]
	}

	rows := make([]Row, 0, want)
	lastHour := -1
	for _, h := range day.Hourly {
		hour, err := parseHourOffset(h.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: day %s: %v", ErrSchemaMismatch, day.Date, err)
		}
		if hour <= lastHour {
			return nil, fmt.Errorf("%w: day %s hourly records are not ordered by time offset", ErrSchemaMismatch, day.Date)
		}
		lastHour = hour

		rows = append(rows, Row{
			DateTime:         date.Add(time.Duration(hour) * time.Hour),
			MaxTempC:         day.MaxTempC,
			MinTempC:         day.MinTempC,
			TotalSnowCM:      day.TotalSnowCM,
			SunHour:          day.SunHour,
			UVIndex:          day.UVIndex,
			MoonIllumination: astro.MoonIllumination,
			Moonrise:         astro.Moonrise,
			Moonset:          astro.Moonset,
			Sunrise:          astro.Sunrise,
			Sunset:           astro.Sunset,
			DewPointC:        h.DewPointC,
			FeelsLikeC:       h.FeelsLikeC,
			HeatIndexC:       h.HeatIndexC,
			WindChillC:       h.WindChillC,
			WindGustKmph:     h.WindGustKmph,
			CloudCover:       h.CloudCover,
			Humidity:         h.Humidity,
			PrecipMM:         h.PrecipMM,
			Pressure:         h.Pressure,
			TempC:            h.TempC,
			Visibility:       h.Visibility,
			WindDirDegree:    h.WindDirDegree,
			WindSpeedKmph:    h.WindSpeedKmph,
			Location:         location,
		})
	}
	return rows, nil
}

// parseHourOffset converts the provider's clock offset ("0", "300", "1200")
// into an hour of day.
func parseHourOffset(offset string) (int, error) {
	n, err := strconv.Atoi(offset)
	if err != nil {
		return 0, fmt.Errorf("hourly time offset %q is not numeric", offset)
	}
	hour := n / 100
	if hour < 0 || hour > 23 || n%100 != 0 {
		return 0, fmt.Errorf("hourly time offset %q is out of range", offset)
	}
	return hour, nil
}
