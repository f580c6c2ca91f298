package weather

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for request dates and provider day fields.
const DateLayout = "2006-01-02"

// Params describes one extraction: a location, an inclusive date range, and
// the sampling frequency in hours. CSVDir, when non-empty, requests a CSV
// side effect named <CSVDir>/<Location>.csv.
type Params struct {
	Location  string
	StartDate string
	EndDate   string
	Frequency int
	CSVDir    string
	Verbose   bool

	start time.Time
	end   time.Time
}

var validFrequencies = map[int]bool{1: true, 3: true, 6: true, 12: true}

// Validate checks the construction contract and parses the date strings.
// Every violation is reported as ErrInvalidParameter.
func (p *Params) Validate() error {
	if p.Location == "" {
		return fmt.Errorf("%w: location must not be empty", ErrInvalidParameter)
	}
	if !validFrequencies[p.Frequency] {
		return fmt.Errorf("%w: frequency must be one of 1, 3, 6 or 12 hours, got %d", ErrInvalidParameter, p.Frequency)
	}

	start, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start date %q is not in YYYY-MM-DD format", ErrInvalidParameter, p.StartDate)
	}
	end, err := time.Parse(DateLayout, p.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end date %q is not in YYYY-MM-DD format", ErrInvalidParameter, p.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidParameter, p.EndDate, p.StartDate)
	}

	p.start = start
	p.end = end
	return nil
}

// Days returns the number of calendar days in the inclusive range.
func (p *Params) Days() int {
	return int(p.end.Sub(p.start).Hours()/24) + 1
}

// window is one provider-sized slice of the requested range, both ends
// inclusive.
type window struct {
	start time.Time
	end   time.Time
}

// monthWindows partitions [start, end] into consecutive calendar-month
// windows clipped to the range. A calendar month never exceeds the
// provider's 35-day per-request limit. Windows are non-overlapping and
// cover the range exactly.
func monthWindows(start, end time.Time) []window {
	var windows []window
	cur := start
	for !cur.After(end) {
		// Last day of cur's month.
		monthEnd := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1)
		we := monthEnd
		if we.After(end) {
			we = end
		}
		windows = append(windows, window{start: cur, end: we})
		cur = we.AddDate(0, 0, 1)
	}
	return windows
}
