package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = time.Hour
	tokenIssuer     = "therm_hub"
)

var (
	ErrNoSharedSecret = errors.New("auth: shared secret is not configured")
	ErrNoSigningKey   = errors.New("auth: signing key is required when only a secret hash is configured")
	ErrInvalidSecret  = errors.New("invalid shared secret")
	ErrInvalidToken   = errors.New("invalid token")
)

// AuthConfig configures client authentication. Either SharedSecret or SharedSecretHash
// (bcrypt) must be set. A plain SharedSecret is also accepted directly as a bearer token.
type AuthConfig struct {
	SharedSecret     string
	SharedSecretHash string
	SigningKey       string
	TokenTTL         time.Duration
}

// AuthService guards the HTTP API with a shared secret exchanged for short-lived JWTs.
type AuthService struct {
	secretHash  []byte
	plainSecret string
	signingKey  []byte
	ttl         time.Duration
	now         func() time.Time
}

func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	hash := strings.TrimSpace(cfg.SharedSecretHash)
	if hash == "" {
		if strings.TrimSpace(cfg.SharedSecret) == "" {
			return nil, ErrNoSharedSecret
		}
		h, err := hashSecret(cfg.SharedSecret)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	key := cfg.SigningKey
	if key == "" {
		key = cfg.SharedSecret
	}
	if key == "" {
		return nil, ErrNoSigningKey
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &AuthService{
		secretHash:  []byte(hash),
		plainSecret: cfg.SharedSecret,
		signingKey:  []byte(key),
		ttl:         ttl,
		now:         time.Now,
	}, nil
}

// SignIn verifies the shared secret and returns a signed JWT.
func (s *AuthService) SignIn(secret string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(secret)); err != nil {
		return "", ErrInvalidSecret
	}
	return s.issueToken()
}

// ParseToken validates a JWT issued by SignIn.
func (s *AuthService) ParseToken(accessToken string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authorize accepts a JWT from SignIn, or the plain shared secret itself for older clients.
func (s *AuthService) Authorize(bearer string) error {
	if _, err := s.ParseToken(bearer); err == nil {
		return nil
	}
	if s.plainSecret != "" && subtle.ConstantTimeCompare([]byte(bearer), []byte(s.plainSecret)) == 1 {
		return nil
	}
	return ErrInvalidToken
}

func (s *AuthService) issueToken() (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "client",
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	return token.SignedString(s.signingKey)
}

func hashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash shared secret: %w", err)
	}
	return string(hash), nil
}
