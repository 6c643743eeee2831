package handlers

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"therm_hub/internal/models"
	"therm_hub/internal/provider/ecobee"
	"therm_hub/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

// mockAuth accepts exactly one bearer value.
type mockAuth struct {
	signInToken string
	signInErr   error
	valid       string

	lastSecret     string
	lastAuthorized string
}

func (m *mockAuth) SignIn(secret string) (string, error) {
	m.lastSecret = secret
	return m.signInToken, m.signInErr
}

func (m *mockAuth) Authorize(bearer string) error {
	m.lastAuthorized = bearer
	if bearer != m.valid {
		return service.ErrInvalidToken
	}
	return nil
}

type mockCredentials struct {
	pin        ecobee.PinResponse
	installErr error
	token      models.Token
	pairErr    error

	installCalls int
	lastCode     string
}

func (m *mockCredentials) Install(ctx context.Context) (ecobee.PinResponse, error) {
	m.installCalls++
	return m.pin, m.installErr
}

func (m *mockCredentials) Pair(ctx context.Context, code string) (models.Token, error) {
	m.lastCode = code
	return m.token, m.pairErr
}

type mockPipeline struct {
	report service.CycleReport
	err    error
	calls  int
}

func (m *mockPipeline) RunOnce(ctx context.Context) (service.CycleReport, error) {
	m.calls++
	return m.report, m.err
}

// mockSnapshot lets tests bump the version while a stream is open.
type mockSnapshot struct {
	mu      sync.Mutex
	snap    models.Snapshot
	raw     []byte
	version atomic.Uint64
}

func (m *mockSnapshot) Serialized() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw
}

func (m *mockSnapshot) Current() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Clone()
}

func (m *mockSnapshot) Version() uint64 { return m.version.Load() }

func (m *mockSnapshot) set(s models.Snapshot) {
	m.mu.Lock()
	m.snap = s
	m.mu.Unlock()
	m.version.Add(1)
}

type mockHistory struct {
	resp      []models.Reading
	err       error
	lastStart time.Time
	lastEnd   time.Time
	calls     int
}

func (m *mockHistory) Past(ctx context.Context, start, end time.Time) ([]models.Reading, error) {
	m.calls++
	m.lastStart, m.lastEnd = start, end
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

const testBearer = "valid"

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeader(req *http.Request, hdr http.Header) *http.Request {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
