package service

import (
	"context"
	"sync"
	"time"

	"therm_hub/internal/models"
	"therm_hub/internal/provider/ecobee"
	"therm_hub/internal/reducer"
)

// ---- Test doubles ----

type fakeTokenRepo struct {
	stored  *models.Token
	loadErr error
	saveErr error

	loads int
	saves []models.Token
}

func (f *fakeTokenRepo) Load(ctx context.Context) (*models.Token, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.stored == nil {
		return nil, nil
	}
	t := *f.stored
	return &t, nil
}

func (f *fakeTokenRepo) Save(ctx context.Context, t models.Token) (models.Token, error) {
	f.saves = append(f.saves, t)
	if f.saveErr != nil {
		return models.Token{}, f.saveErr
	}
	t.ID = 1
	f.stored = &t
	return t, nil
}

type grantCall struct {
	kind ecobee.GrantKind
	code string
}

type fakeGranter struct {
	resp   ecobee.TokenResponse
	err    error
	grants []grantCall

	pin            ecobee.PinResponse
	authErr        error
	authorizeCalls int
}

func (f *fakeGranter) Authorize(ctx context.Context) (ecobee.PinResponse, error) {
	f.authorizeCalls++
	return f.pin, f.authErr
}

func (f *fakeGranter) Grant(ctx context.Context, kind ecobee.GrantKind, code string) (ecobee.TokenResponse, error) {
	f.grants = append(f.grants, grantCall{kind: kind, code: code})
	return f.resp, f.err
}

type fakeWeather struct {
	hourly    []reducer.Period
	hourlyErr error
	daily     []reducer.Period
	dailyErr  error

	hourlyCalls, dailyCalls int
}

func (f *fakeWeather) FetchHourly(ctx context.Context) ([]reducer.Period, error) {
	f.hourlyCalls++
	if f.hourlyErr != nil {
		return nil, f.hourlyErr
	}
	return f.hourly, nil
}

func (f *fakeWeather) FetchDaily(ctx context.Context) ([]reducer.Period, error) {
	f.dailyCalls++
	if f.dailyErr != nil {
		return nil, f.dailyErr
	}
	return f.daily, nil
}

type fakeSensors struct {
	caps   []reducer.Capability
	err    error
	tokens []string
}

func (f *fakeSensors) Read(ctx context.Context, accessToken string) ([]reducer.Capability, error) {
	f.tokens = append(f.tokens, accessToken)
	return f.caps, f.err
}

type fakeTokenSource struct {
	tok *models.Token
	err error
}

func (f fakeTokenSource) CurrentToken(ctx context.Context) (*models.Token, error) {
	return f.tok, f.err
}

type fakeReadingRepo struct {
	mu       sync.Mutex
	failFor  map[string]error
	inserted []models.Reading

	rangeResp  []models.Reading
	rangeErr   error
	rangeStart time.Time
	rangeEnd   time.Time
}

func (f *fakeReadingRepo) Insert(ctx context.Context, r models.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.failFor[r.Name]; err != nil {
		return err
	}
	f.inserted = append(f.inserted, r)
	return nil
}

func (f *fakeReadingRepo) QueryRange(ctx context.Context, start, end time.Time) ([]models.Reading, error) {
	f.rangeStart, f.rangeEnd = start, end
	return f.rangeResp, f.rangeErr
}
