package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

// cannedTransport returns a fixed status and body and records the request.
type cannedTransport struct {
	status  int
	body    string
	lastReq *http.Request
}

func (c *cannedTransport) Do(req *http.Request) (*http.Response, error) {
	c.lastReq = req
	return &http.Response{
		StatusCode: c.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(c.body))),
	}, nil
}

const wellFormedBody = `{"data":{"weather":[
	{"date":"2020-01-01","maxtempC":"10","mintempC":"2","totalSnow_cm":"0.0","sunHour":"8.7","uvIndex":"3",
	 "astronomy":[{"sunrise":"07:54 AM","sunset":"04:32 PM","moonrise":"11:31 AM","moonset":"10:55 PM","moon_illumination":"44"}],
	 "hourly":[{"time":"0","tempC":"7","humidity":"82"},{"time":"1200","tempC":"9","humidity":"75"}]}
]}}`

func newTestClient(transport HTTPClient) *WWOClient {
	c := NewWWOClient("test-key", "https://example.test/past-weather.ashx", ClientConfig{
		Timeout: time.Second,
	}, zap.NewNop())
	c.WithHTTPClient(transport)
	return c
}

func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPastWeatherBuildsRequestURL(t *testing.T) {
	transport := &cannedTransport{status: 200, body: wellFormedBody}
	c := newTestClient(transport)

	_, err := c.PastWeather(context.Background(), "76446",
		mustParseDate(t, "2020-01-01"), mustParseDate(t, "2020-01-31"), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := transport.lastReq.URL.Query()
	want := map[string]string{
		"key":     "test-key",
		"q":       "76446",
		"format":  "json",
		"date":    "2020-01-01",
		"enddate": "2020-01-31",
		"tp":      "12",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("query param %s: got %q, want %q", k, got, v)
		}
	}
}

func TestPastWeatherParsesDailyRecords(t *testing.T) {
	c := newTestClient(&cannedTransport{status: 200, body: wellFormedBody})

	days, err := c.PastWeather(context.Background(), "Berlin",
		mustParseDate(t, "2020-01-01"), mustParseDate(t, "2020-01-01"), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("got %d daily records, want 1", len(days))
	}

	day := days[0]
	if day.Date != "2020-01-01" || day.MaxTempC != "10" {
		t.Errorf("daily fields not decoded: %+v", day)
	}
	if len(day.Astronomy) != 1 || day.Astronomy[0].MoonIllumination != "44" {
		t.Errorf("astronomy not decoded: %+v", day.Astronomy)
	}
	if len(day.Hourly) != 2 || day.Hourly[1].Time != "1200" || day.Hourly[1].TempC != "9" {
		t.Errorf("hourly records not decoded: %+v", day.Hourly)
	}
}

func TestPastWeatherSurfacesProviderError(t *testing.T) {
	body := `{"data":{"error":[{"msg":"Unable to find any matching weather location"}]}}`
	c := newTestClient(&cannedTransport{status: 200, body: body})

	_, err := c.PastWeather(context.Background(), "nowhere",
		mustParseDate(t, "2020-01-01"), mustParseDate(t, "2020-01-02"), 1)

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Message != "Unable to find any matching weather location" {
		t.Errorf("provider message not passed through: %q", provErr.Message)
	}
}

func TestPastWeatherRejectsUndecodableBody(t *testing.T) {
	c := newTestClient(&cannedTransport{status: 200, body: `<html>not json</html>`})

	_, err := c.PastWeather(context.Background(), "Berlin",
		mustParseDate(t, "2020-01-01"), mustParseDate(t, "2020-01-02"), 1)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestPastWeatherRejectsMissingWeatherSequence(t *testing.T) {
	c := newTestClient(&cannedTransport{status: 200, body: `{"data":{}}`})

	_, err := c.PastWeather(context.Background(), "Berlin",
		mustParseDate(t, "2020-01-01"), mustParseDate(t, "2020-01-02"), 1)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestPastWeatherRejectsNon2xxStatus(t *testing.T) {
	c := newTestClient(&cannedTransport{status: 500, body: ""})

	_, err := c.PastWeather(context.Background(), "Berlin",
		mustParseDate(t, "2020-01-01"), mustParseDate(t, "2020-01-02"), 1)
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

// countingTransport always fails, to drive the breaker open.
type countingTransport struct {
	calls int
}

func (c *countingTransport) Do(*http.Request) (*http.Response, error) {
	c.calls++
	return nil, errors.New("connection refused")
}

func TestBaseClientDoesNotRetry(t *testing.T) {
	transport := &countingTransport{}
	c := newTestClient(transport)

	_, err := c.PastWeather(context.Background(), "Berlin",
		mustParseDate(t, "2020-01-01"), mustParseDate(t, "2020-01-02"), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if transport.calls != 1 {
		t.Errorf("request attempted %d times, want exactly 1", transport.calls)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	transport := &countingTransport{}
	c := newTestClient(transport)

	ctx := context.Background()
	start := mustParseDate(t, "2020-01-01")
	end := mustParseDate(t, "2020-01-02")

	for i := 0; i < 5; i++ {
		c.PastWeather(ctx, "Berlin", start, end, 1)
	}

	// Default threshold is 3 consecutive failures; later calls are
	// rejected without touching the transport.
	if transport.calls != 3 {
		t.Errorf("transport saw %d calls, want 3 before breaker opens", transport.calls)
	}
}
