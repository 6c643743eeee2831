package ecobee

import (
	"context"
	"time"

	"therm_hub/internal/reducer"
)

// Sample is an offline stand-in for Client with two fixed remote sensors.
type Sample struct {
	Now func() time.Time
}

func (s Sample) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Sample) Authorize(_ context.Context) (PinResponse, error) {
	return PinResponse{EcobeePin: "SAMP", Code: "offline-code"}, nil
}

func (s Sample) Grant(_ context.Context, _ GrantKind, _ string) (TokenResponse, error) {
	return TokenResponse{
		AccessToken:  "offline-access",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
		RefreshToken: "offline-refresh",
		Scope:        DefaultScope,
	}, nil
}

func (s Sample) Read(_ context.Context, _ string) ([]reducer.Capability, error) {
	ts := s.now().UTC().Truncate(time.Second)
	return []reducer.Capability{
		{Time: ts, Sensor: "Living Room", Kind: reducer.KindTemperature, Value: "702"},
		{Time: ts, Sensor: "Living Room", Kind: reducer.KindHumidity, Value: "41"},
		{Time: ts, Sensor: "Bedroom", Kind: reducer.KindTemperature, Value: "684"},
		{Time: ts, Sensor: "Bedroom", Kind: "occupancy", Value: "false"},
	}, nil
}
