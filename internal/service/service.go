package service

import (
	"context"
	"time"

	"therm_hub/internal/logger"
	"therm_hub/internal/models"
	"therm_hub/internal/provider/ecobee"
	"therm_hub/internal/repository"
	"therm_hub/internal/snapshot"
)

// Credentials exposes the thermostat pairing flow.
type Credentials interface {
	Install(ctx context.Context) (ecobee.PinResponse, error)
	Pair(ctx context.Context, code string) (models.Token, error)
}

// Pipeline runs one fetch cycle on demand.
type Pipeline interface {
	RunOnce(ctx context.Context) (CycleReport, error)
}

// Snapshot is the read side of the published view.
type Snapshot interface {
	Serialized() []byte
	Current() models.Snapshot
	Version() uint64
}

// History exposes stored readings.
type History interface {
	Past(ctx context.Context, start, end time.Time) ([]models.Reading, error)
}

type Authorization interface {
	SignIn(secret string) (string, error)
	Authorize(bearer string) error
}

// Service aggregates everything the HTTP layer needs.
type Service struct {
	Credentials
	Pipeline
	Snapshot
	History
	Authorization
}

// Thermostat is the full provider surface: grants plus sensor reads.
type Thermostat interface {
	TokenGranter
	SensorSource
}

// Dependencies are the outside collaborators NewService wires together.
type Dependencies struct {
	Weather    WeatherSource
	Thermostat Thermostat
	Store      *snapshot.Store
	Worker     WorkerConfig
	Auth       AuthConfig

	AlwaysRefreshToken bool
	// OfflineToken, when set, replaces the stored credential.
	OfflineToken *models.Token
}

// NewService builds the services and returns the worker so the caller controls its lifecycle.
func NewService(repos *repository.Repository, deps Dependencies, log *logger.Logger) (*Service, *Worker, error) {
	if log == nil {
		log = logger.Nop()
	}

	auth, err := NewAuthService(deps.Auth)
	if err != nil {
		return nil, nil, err
	}

	creds := NewCredentialService(repos.Tokens, deps.Thermostat, deps.AlwaysRefreshToken, log.Named("credentials"))

	var tokens TokenSource = creds
	if deps.OfflineToken != nil {
		tokens = StaticToken{Token: *deps.OfflineToken}
	}

	worker := NewWorker(deps.Weather, deps.Thermostat, tokens, repos.Readings, deps.Store, deps.Worker, log.Named("worker"))

	return &Service{
		Credentials:   creds,
		Pipeline:      worker,
		Snapshot:      deps.Store,
		History:       NewHistoryService(repos.Readings),
		Authorization: auth,
	}, worker, nil
}
