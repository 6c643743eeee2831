package ecobee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/logger"
	"therm_hub/internal/provider"
	"therm_hub/internal/reducer"

	"github.com/sony/gobreaker"
)

// GrantKind selects the OAuth style exchange performed against the token endpoint.
type GrantKind string

const (
	GrantPin          GrantKind = "ecobeePin"
	GrantRefreshToken GrantKind = "refresh_token"
)

const (
	DefaultBaseURL = "https://api.ecobee.com"
	DefaultScope   = "smartRead"

	utcTimeLayout = "2006-01-02 15:04:05"

	// Consecutive transport failures before the breaker opens.
	breakerTripAfter = 3
	breakerTimeout   = 5 * time.Minute
)

var errBreakerOpen = errors.New("ecobee circuit breaker open")

// Config holds the provider endpoint and application registration.
type Config struct {
	BaseURL   string
	ClientID  string
	Scope     string
	UserAgent string
}

// PinResponse is the first half of the pairing flow: the user enters EcobeePin in the
// provider portal, then Code is exchanged for a token.
type PinResponse struct {
	EcobeePin string `json:"ecobee_pin"`
	Code      string `json:"code"`
}

// TokenResponse is the token endpoint payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// Client talks to the thermostat cloud API. Calls are never retried; a breaker stops
// hammering the provider while it is unreachable.
type Client struct {
	httpClient *http.Client
	cfg        Config
	breaker    *gobreaker.CircuitBreaker
	log        *logger.Logger
}

func NewClient(httpClient *http.Client, cfg Config, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = provider.NewHTTPClient(0)
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ecobee",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		// Rejected grants and expired tokens are answers, not outages.
		IsSuccessful: func(err error) bool {
			return err == nil || !apperrors.IsKind(err, apperrors.KindTransport)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{httpClient: httpClient, cfg: cfg, breaker: cb, log: log}
}

// Authorize requests a pairing pin.
func (c *Client) Authorize(ctx context.Context) (PinResponse, error) {
	q := url.Values{}
	q.Set("response_type", string(GrantPin))
	q.Set("client_id", c.cfg.ClientID)
	q.Set("scope", c.cfg.Scope)

	var payload struct {
		EcobeePin string `json:"ecobeePin"`
		Code      string `json:"code"`
	}
	if err := c.call(ctx, http.MethodGet, "/authorize", q, "", &payload); err != nil {
		return PinResponse{}, fmt.Errorf("authorize: %w", err)
	}
	if payload.Code == "" {
		return PinResponse{}, apperrors.Decode("authorize", errors.New("response has no code"))
	}
	return PinResponse{EcobeePin: payload.EcobeePin, Code: payload.Code}, nil
}

// Grant exchanges a pairing code or a refresh token for a new token.
func (c *Client) Grant(ctx context.Context, kind GrantKind, code string) (TokenResponse, error) {
	q := url.Values{}
	q.Set("grant_type", string(kind))
	q.Set("client_id", c.cfg.ClientID)
	switch kind {
	case GrantPin:
		q.Set("code", code)
	case GrantRefreshToken:
		q.Set("refresh_token", code)
	default:
		return TokenResponse{}, apperrors.Credential("grant", fmt.Errorf("unknown grant kind %q", kind))
	}

	var tok TokenResponse
	if err := c.call(ctx, http.MethodPost, "/token", q, "", &tok); err != nil {
		return TokenResponse{}, fmt.Errorf("grant %s: %w", kind, err)
	}
	if tok.AccessToken == "" || tok.RefreshToken == "" {
		return TokenResponse{}, apperrors.Decode("grant "+string(kind), errors.New("response is missing tokens"))
	}
	return tok, nil
}

const thermostatSelection = `{"selection":{"selectionType":"registered","selectionMatch":"","includeRuntime":"true","includeSensors":"true"}}`

type thermostatPayload struct {
	ThermostatList []struct {
		Identifier    string `json:"identifier"`
		UTCTime       string `json:"utcTime"`
		RemoteSensors []struct {
			Name       string `json:"name"`
			Capability []struct {
				Type  string `json:"type"`
				Value string `json:"value"`
			} `json:"capability"`
		} `json:"remoteSensors"`
	} `json:"thermostatList"`
}

// Read returns the raw sensor capabilities of every registered thermostat.
func (c *Client) Read(ctx context.Context, accessToken string) ([]reducer.Capability, error) {
	q := url.Values{}
	q.Set("json", thermostatSelection)

	var payload thermostatPayload
	if err := c.call(ctx, http.MethodGet, "/1/thermostat", q, accessToken, &payload); err != nil {
		return nil, fmt.Errorf("read thermostats: %w", err)
	}

	var caps []reducer.Capability
	for _, th := range payload.ThermostatList {
		ts, err := time.ParseInLocation(utcTimeLayout, th.UTCTime, time.UTC)
		if err != nil {
			return nil, apperrors.Decode("thermostat utcTime", err)
		}
		for _, sensor := range th.RemoteSensors {
			for _, cp := range sensor.Capability {
				caps = append(caps, reducer.Capability{
					Time:   ts,
					Sensor: sensor.Name,
					Kind:   cp.Type,
					Value:  cp.Value,
				})
			}
		}
	}
	return caps, nil
}

// call performs one request through the breaker and decodes a JSON body into out.
func (c *Client) call(ctx context.Context, method, path string, q url.Values, bearer string, out any) error {
	u := c.cfg.BaseURL + path + "?" + q.Encode()

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, u, nil)
		if err != nil {
			return nil, apperrors.Transport(method+" "+path, err)
		}
		provider.Label(req, c.cfg.UserAgent)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, apperrors.Transport(method+" "+path, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
			(path == "/token" && resp.StatusCode == http.StatusBadRequest):
			return nil, apperrors.Credential(method+" "+path, fmt.Errorf("provider answered %d", resp.StatusCode))
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, apperrors.Transport(method+" "+path, fmt.Errorf("unexpected status %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, apperrors.Decode(method+" "+path, err)
		}
		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.Transport(method+" "+path, fmt.Errorf("%w: %v", errBreakerOpen, err))
	}
	return err
}
