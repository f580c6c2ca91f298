package weather

import (
	"errors"
	"testing"
	"time"
)

func TestValidateRejectsBadFrequency(t *testing.T) {
	for _, freq := range []int{0, 2, 4, 5, 8, 24, -1} {
		p := Params{Location: "Berlin", StartDate: "2020-01-01", EndDate: "2020-01-02", Frequency: freq}
		err := p.Validate()
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("frequency %d: expected ErrInvalidParameter, got %v", freq, err)
		}
	}

	for _, freq := range []int{1, 3, 6, 12} {
		p := Params{Location: "Berlin", StartDate: "2020-01-01", EndDate: "2020-01-02", Frequency: freq}
		if err := p.Validate(); err != nil {
			t.Errorf("frequency %d: unexpected error %v", freq, err)
		}
	}
}

func TestValidateRejectsEndBeforeStart(t *testing.T) {
	p := Params{Location: "Berlin", StartDate: "2020-02-01", EndDate: "2020-01-01", Frequency: 1}
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	// Equal dates are a valid single-day range.
	p = Params{Location: "Berlin", StartDate: "2020-01-01", EndDate: "2020-01-01", Frequency: 1}
	if err := p.Validate(); err != nil {
		t.Errorf("single-day range: unexpected error %v", err)
	}
}

func TestValidateRejectsBadDateFormat(t *testing.T) {
	cases := []struct{ start, end string }{
		{"2020/01/01", "2020-01-02"},
		{"2020-01-01", "02-01-2020"},
		{"Jan 1 2020", "2020-01-02"},
		{"", "2020-01-02"},
		{"2020-01-01", ""},
	}
	for _, c := range cases {
		p := Params{Location: "Berlin", StartDate: c.start, EndDate: c.end, Frequency: 1}
		if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("dates %q..%q: expected ErrInvalidParameter, got %v", c.start, c.end, err)
		}
	}
}

func TestValidateRejectsEmptyLocation(t *testing.T) {
	p := Params{Location: "", StartDate: "2020-01-01", EndDate: "2020-01-02", Frequency: 1}
	if err := p.Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestMonthWindowsSplitsAtMonthBoundaries(t *testing.T) {
	windows := monthWindows(mustDate(t, "2020-01-15"), mustDate(t, "2020-03-10"))

	want := []struct{ start, end string }{
		{"2020-01-15", "2020-01-31"},
		{"2020-02-01", "2020-02-29"},
		{"2020-03-01", "2020-03-10"},
	}
	if len(windows) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(windows))
	}
	for i, w := range want {
		if got := windows[i].start.Format(DateLayout); got != w.start {
			t.Errorf("window %d start: got %s, want %s", i, got, w.start)
		}
		if got := windows[i].end.Format(DateLayout); got != w.end {
			t.Errorf("window %d end: got %s, want %s", i, got, w.end)
		}
	}
}

func TestMonthWindowsSingleWindowWithinMonth(t *testing.T) {
	windows := monthWindows(mustDate(t, "2020-01-01"), mustDate(t, "2020-01-31"))
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if !windows[0].start.Equal(mustDate(t, "2020-01-01")) || !windows[0].end.Equal(mustDate(t, "2020-01-31")) {
		t.Errorf("unexpected window %v..%v", windows[0].start, windows[0].end)
	}
}

func TestMonthWindowsSingleDay(t *testing.T) {
	windows := monthWindows(mustDate(t, "2020-06-15"), mustDate(t, "2020-06-15"))
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if !windows[0].start.Equal(windows[0].end) {
		t.Errorf("expected single-day window, got %v..%v", windows[0].start, windows[0].end)
	}
}

func TestMonthWindowsAreContiguousAndCoverRange(t *testing.T) {
	start := mustDate(t, "2019-11-20")
	end := mustDate(t, "2020-02-05")
	windows := monthWindows(start, end)

	if !windows[0].start.Equal(start) {
		t.Errorf("first window starts at %v, want %v", windows[0].start, start)
	}
	if !windows[len(windows)-1].end.Equal(end) {
		t.Errorf("last window ends at %v, want %v", windows[len(windows)-1].end, end)
	}
	for i := 1; i < len(windows); i++ {
		wantStart := windows[i-1].end.AddDate(0, 0, 1)
		if !windows[i].start.Equal(wantStart) {
			t.Errorf("window %d starts at %v, want %v (day after previous end)", i, windows[i].start, wantStart)
		}
	}
	for _, w := range windows {
		days := int(w.end.Sub(w.start).Hours()/24) + 1
		if days > 31 {
			t.Errorf("window %v..%v spans %d days, exceeds a calendar month", w.start, w.end, days)
		}
	}
}
