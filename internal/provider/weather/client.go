package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/logger"
	"therm_hub/internal/provider"
	"therm_hub/internal/reducer"
)

const acceptGeoJSON = "application/geo+json"

var errNoPeriods = errors.New("payload has no properties.periods")

// Config holds the forecast endpoints and the retry policy shared by both of them.
type Config struct {
	HourlyURL string
	DailyURL  string
	UserAgent string
	Policy    provider.RetryPolicy
}

// Client reads weather.gov style gridpoint forecasts.
type Client struct {
	httpClient *http.Client
	cfg        Config
	log        *logger.Logger
}

func NewClient(httpClient *http.Client, cfg Config, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient(0)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{httpClient: httpClient, cfg: cfg, log: log}
}

// FetchHourly returns the raw hourly periods.
func (c *Client) FetchHourly(ctx context.Context) ([]reducer.Period, error) {
	return c.fetch(ctx, "hourly", c.cfg.HourlyURL)
}

// FetchDaily returns the raw half-day periods.
func (c *Client) FetchDaily(ctx context.Context) ([]reducer.Period, error) {
	return c.fetch(ctx, "daily", c.cfg.DailyURL)
}

func (c *Client) fetch(ctx context.Context, kind, url string) ([]reducer.Period, error) {
	var periods []reducer.Period
	err := c.cfg.Policy.Do(func(attempt int) error {
		p, err := c.fetchOnce(ctx, url)
		if err != nil {
			c.log.Warnw("weather fetch attempt failed", "forecast", kind, "attempt", attempt, "err", err)
			return err
		}
		periods = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s forecast: %w", kind, err)
	}
	return periods, nil
}

type forecastPayload struct {
	Properties *struct {
		Periods []struct {
			StartTime        string  `json:"startTime"`
			Temperature      float64 `json:"temperature"`
			TemperatureUnit  string  `json:"temperatureUnit"`
			ShortForecast    string  `json:"shortForecast"`
			DetailedForecast string  `json:"detailedForecast"`
		} `json:"periods"`
	} `json:"properties"`
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]reducer.Period, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Transport("build weather request", err)
	}
	provider.Label(req, c.cfg.UserAgent)
	req.Header.Set("Accept", acceptGeoJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Transport("GET "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Transport("GET "+url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Decode("decode forecast", err)
	}
	if payload.Properties == nil || payload.Properties.Periods == nil {
		return nil, apperrors.Decode("decode forecast", errNoPeriods)
	}

	out := make([]reducer.Period, 0, len(payload.Properties.Periods))
	for _, p := range payload.Properties.Periods {
		start, err := time.Parse(time.RFC3339, p.StartTime)
		if err != nil {
			c.log.Warnw("skipping forecast period", "start_time", p.StartTime, "err", apperrors.Parse("period startTime", err))
			continue
		}
		description := strings.TrimSpace(p.ShortForecast)
		if description == "" {
			description = strings.TrimSpace(p.DetailedForecast)
		}
		out = append(out, reducer.Period{
			Start:       start,
			Temperature: p.Temperature,
			Description: description,
		})
	}
	return out, nil
}
