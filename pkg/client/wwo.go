package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const defaultWWOBaseURL = "https://api.worldweatheronline.com/premium/v1/past-weather.ashx"

// ErrMalformedResponse reports a response body whose top-level structure is
// not the expected sequence of daily records.
var ErrMalformedResponse = errors.New("malformed provider response")

// ProviderError carries an error message signalled by the provider itself,
// such as a rejected API key or an unknown location.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "provider error: " + e.Message
}

// HourlyRecord is one intra-day sample. The provider reports all values as
// strings; Time is a clock offset such as "0", "300" or "1200".
type HourlyRecord struct {
	Time          string `json:"time"`
	TempC         string `json:"tempC"`
	DewPointC     string `json:"DewPointC"`
	FeelsLikeC    string `json:"FeelsLikeC"`
	HeatIndexC    string `json:"HeatIndexC"`
	WindChillC    string `json:"WindChillC"`
	WindGustKmph  string `json:"WindGustKmph"`
	CloudCover    string `json:"cloudcover"`
	Humidity      string `json:"humidity"`
	PrecipMM      string `json:"precipMM"`
	Pressure      string `json:"pressure"`
	Visibility    string `json:"visibility"`
	WindDirDegree string `json:"winddirDegree"`
	WindSpeedKmph string `json:"windspeedKmph"`
}

// Astronomy holds the per-day astronomy block.
type Astronomy struct {
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	MoonIllumination string `json:"moon_illumination"`
}

// DailyRecord is the provider's per-day object: date, daily aggregates,
// astronomy, and the nested hourly samples.
type DailyRecord struct {
	Date        string         `json:"date"`
	MaxTempC    string         `json:"maxtempC"`
	MinTempC    string         `json:"mintempC"`
	TotalSnowCM string         `json:"totalSnow_cm"`
	SunHour     string         `json:"sunHour"`
	UVIndex     string         `json:"uvIndex"`
	Astronomy   []Astronomy    `json:"astronomy"`
	Hourly      []HourlyRecord `json:"hourly"`
}

type historyResponse struct {
	Data struct {
		Error []struct {
			Msg string `json:"msg"`
		} `json:"error"`
		Weather []DailyRecord `json:"weather"`
	} `json:"data"`
}

// WWOClient talks to the WorldWeatherOnline historical-weather endpoint.
type WWOClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

func NewWWOClient(apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *WWOClient {
	if baseURL == "" {
		baseURL = defaultWWOBaseURL
	}
	return &WWOClient{
		BaseClient: NewBaseClient("worldweatheronline", config, logger),
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

// PastWeather fetches the daily records for one sub-window. Both ends of the
// span are inclusive; frequency is the sampling interval in hours.
func (c *WWOClient) PastWeather(ctx context.Context, location string, start, end time.Time, frequency int) ([]DailyRecord, error) {
	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("q", location)
	values.Set("format", "json")
	values.Set("date", start.Format("2006-01-02"))
	values.Set("enddate", end.Format("2006-01-02"))
	values.Set("tp", strconv.Itoa(frequency))

	data, err := c.Get(ctx, c.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch past weather: %w", err)
	}

	var response historyResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(response.Data.Error) > 0 {
		return nil, &ProviderError{Message: response.Data.Error[0].Msg}
	}
	if len(response.Data.Weather) == 0 {
		return nil, fmt.Errorf("%w: no daily records in response", ErrMalformedResponse)
	}

	return response.Data.Weather, nil
}
