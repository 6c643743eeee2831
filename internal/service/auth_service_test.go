package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, cfg AuthConfig) *AuthService {
	t.Helper()
	s, err := NewAuthService(cfg)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return s
}

func TestNewAuthService_Config(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr error
	}{
		{name: "plain secret", cfg: AuthConfig{SharedSecret: "s3cr3t"}},
		{name: "hash and key", cfg: AuthConfig{SharedSecretHash: string(hash), SigningKey: "k"}},
		{name: "nothing", cfg: AuthConfig{}, wantErr: ErrNoSharedSecret},
		{name: "blank secret", cfg: AuthConfig{SharedSecret: "   "}, wantErr: ErrNoSharedSecret},
		{name: "hash without key", cfg: AuthConfig{SharedSecretHash: string(hash)}, wantErr: ErrNoSigningKey},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewAuthService(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && s.ttl != defaultTokenTTL {
				t.Fatalf("ttl = %v, want default", s.ttl)
			}
		})
	}
}

func TestAuthService_SignInAndParse(t *testing.T) {
	s := newTestAuthService(t, AuthConfig{SharedSecret: "s3cr3t", SigningKey: "signing-key", TokenTTL: time.Minute})

	tok, err := s.SignIn("s3cr3t")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Fatalf("expected a JWT, got %q", tok)
	}

	claims, err := s.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Issuer != tokenIssuer {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
	if d := claims.ExpiresAt.Sub(claims.IssuedAt.Time); d != time.Minute {
		t.Fatalf("lifetime = %v, want 1m", d)
	}
	if err := s.Authorize(tok); err != nil {
		t.Fatalf("Authorize(jwt): %v", err)
	}
}

func TestAuthService_SignIn_WrongSecret(t *testing.T) {
	s := newTestAuthService(t, AuthConfig{SharedSecret: "s3cr3t"})

	if _, err := s.SignIn("nope"); !errors.Is(err, ErrInvalidSecret) {
		t.Fatalf("expected ErrInvalidSecret, got %v", err)
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	s := newTestAuthService(t, AuthConfig{SharedSecret: "s3cr3t", TokenTTL: time.Minute})
	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }

	tok, err := s.SignIn("s3cr3t")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	s.now = time.Now
	if _, err := s.ParseToken(tok); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token error, got %v", err)
	}
	if err := s.Authorize(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_ParseToken_RejectsForeignTokens(t *testing.T) {
	s := newTestAuthService(t, AuthConfig{SharedSecret: "s3cr3t", SigningKey: "k1"})

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "other key",
			token: func(t *testing.T) string {
				other := newTestAuthService(t, AuthConfig{SharedSecret: "s3cr3t", SigningKey: "k2"})
				tok, err := other.SignIn("s3cr3t")
				if err != nil {
					t.Fatalf("SignIn: %v", err)
				}
				return tok
			},
		},
		{
			name: "other issuer",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
					Issuer:    "someone-else",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}).SignedString([]byte("k1"))
				if err != nil {
					t.Fatalf("sign: %v", err)
				}
				return tok
			},
		},
		{
			name: "unsigned",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, &jwt.RegisteredClaims{
					Issuer: tokenIssuer,
				}).SignedString(jwt.UnsafeAllowNoneSignatureType)
				if err != nil {
					t.Fatalf("sign: %v", err)
				}
				return tok
			},
		},
		{name: "garbage", token: func(t *testing.T) string { return "not-a-jwt" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.ParseToken(tt.token(t)); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestAuthService_Authorize_PlainSecret(t *testing.T) {
	s := newTestAuthService(t, AuthConfig{SharedSecret: "s3cr3t"})

	if err := s.Authorize("s3cr3t"); err != nil {
		t.Fatalf("plain secret should be accepted: %v", err)
	}
	if err := s.Authorize("s3cr3"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if err := s.Authorize(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Authorize_HashOnlyRejectsPlainSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	s := newTestAuthService(t, AuthConfig{SharedSecretHash: string(hash), SigningKey: "k"})

	if err := s.Authorize("s3cr3t"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("plain secret must not be accepted without a configured secret, got %v", err)
	}
	tok, err := s.SignIn("s3cr3t")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := s.Authorize(tok); err != nil {
		t.Fatalf("Authorize(jwt): %v", err)
	}
}
