package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"therm_hub/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.authMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	type want struct {
		code   int
		errMsg string
	}
	cases := []struct {
		name   string
		header string
		want   want
	}{
		{
			name:   "missing header",
			header: "",
			want:   want{code: http.StatusUnauthorized, errMsg: "missing Authorization header"},
		},
		{
			name:   "invalid scheme",
			header: "Token abc",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "bearer without token",
			header: "Bearer",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "bearer with empty token",
			header: "Bearer ",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "rejected token",
			header: "Bearer expired",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid or expired token"},
		},
		{
			name:   "accepted token",
			header: "Bearer " + testBearer,
			want:   want{code: http.StatusOK},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{valid: testBearer}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.want.code {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.want.code, w.Body.String())
			}
			if tc.want.errMsg == "" {
				return
			}

			var out struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if out.Error != tc.want.errMsg {
				t.Fatalf("error: got %q, want %q", out.Error, tc.want.errMsg)
			}
		})
	}
}

func TestRoutes_RequireAuth(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{valid: testBearer},
		Snapshot:      &mockSnapshot{raw: []byte(`{}`)},
		Pipeline:      &mockPipeline{},
		History:       &mockHistory{},
		Credentials:   &mockCredentials{},
	}
	r := newTestRouter(s)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/now"},
		{http.MethodGet, "/past"},
		{http.MethodPost, "/refresh"},
		{http.MethodGet, "/install/1"},
		{http.MethodGet, "/install/2?code=x"},
		{http.MethodGet, "/ws"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: got %d, want 401", route.method, route.path, w.Code)
		}
	}

	for _, path := range []string{"/health", "/time"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s should be public, got %d", path, w.Code)
		}
	}
}
