package service

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "therm_hub/internal/errors"
	"therm_hub/internal/logger"
	"therm_hub/internal/models"
	"therm_hub/internal/provider/ecobee"
	"therm_hub/internal/repository"
)

var (
	ErrNoToken      = errors.New("no thermostat token stored, run the install flow")
	ErrEmptyPinCode = errors.New("pairing code is empty")
)

// TokenGranter is the provider side of the credential lifecycle.
type TokenGranter interface {
	Authorize(ctx context.Context) (ecobee.PinResponse, error)
	Grant(ctx context.Context, kind ecobee.GrantKind, code string) (ecobee.TokenResponse, error)
}

// CredentialService owns the thermostat token: load, expiry check, refresh, store-back.
type CredentialService struct {
	tokens  repository.TokenRepo
	granter TokenGranter
	log     *logger.Logger
	now     func() time.Time

	// alwaysRefresh treats every stored token as expired.
	alwaysRefresh bool
}

func NewCredentialService(tokens repository.TokenRepo, granter TokenGranter, alwaysRefresh bool, log *logger.Logger) *CredentialService {
	if log == nil {
		log = logger.Nop()
	}
	return &CredentialService{
		tokens:        tokens,
		granter:       granter,
		log:           log,
		now:           time.Now,
		alwaysRefresh: alwaysRefresh,
	}
}

// CurrentToken returns a usable token.
//
//	absent  -> credential error, no remote call
//	valid   -> stored token, no remote call
//	expired -> one refresh call; on success the new token is saved and returned,
//	           on failure nothing is returned and the stored token is left as is
func (s *CredentialService) CurrentToken(ctx context.Context) (*models.Token, error) {
	stored, err := s.tokens.Load(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, apperrors.Credential("current token", ErrNoToken)
	}
	if !s.expired(*stored) {
		return stored, nil
	}

	resp, err := s.granter.Grant(ctx, ecobee.GrantRefreshToken, stored.RefreshToken)
	if err != nil {
		return nil, apperrors.Credential("refresh token", err)
	}

	fresh := tokenFromGrant(resp, s.now())
	saved, err := s.tokens.Save(ctx, fresh)
	if err != nil {
		// The provider already rotated the refresh token; keep serving this cycle.
		s.log.Errorw("refreshed token could not be saved", "err", err, "expires", fresh.Expires)
		return &fresh, nil
	}
	s.log.Infow("thermostat token refreshed", "expires", saved.Expires)
	return &saved, nil
}

func (s *CredentialService) expired(t models.Token) bool {
	return s.alwaysRefresh || t.Expired(s.now())
}

// Install starts pairing and returns the pin the user must enter in the provider portal.
func (s *CredentialService) Install(ctx context.Context) (ecobee.PinResponse, error) {
	pin, err := s.granter.Authorize(ctx)
	if err != nil {
		return ecobee.PinResponse{}, err
	}
	s.log.Infow("pairing started", "ecobee_pin", pin.EcobeePin)
	return pin, nil
}

// Pair exchanges the authorization code from Install for a token and saves it.
func (s *CredentialService) Pair(ctx context.Context, code string) (models.Token, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.Token{}, ErrEmptyPinCode
	}

	resp, err := s.granter.Grant(ctx, ecobee.GrantPin, code)
	if err != nil {
		return models.Token{}, apperrors.Credential("pair", err)
	}

	saved, err := s.tokens.Save(ctx, tokenFromGrant(resp, s.now()))
	if err != nil {
		return models.Token{}, err
	}
	s.log.Infow("thermostat paired", "expires", saved.Expires)
	return saved, nil
}

// tokenFromGrant computes the expiry from the moment the token was issued.
func tokenFromGrant(resp ecobee.TokenResponse, issued time.Time) models.Token {
	return models.Token{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Expires:      issued.Add(time.Duration(resp.ExpiresIn) * time.Second).UTC(),
	}
}

// StaticToken always yields the same token. Used in offline mode.
type StaticToken struct {
	Token models.Token
}

func (s StaticToken) CurrentToken(_ context.Context) (*models.Token, error) {
	t := s.Token
	return &t, nil
}
