package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"therm_hub/internal/models"
	"therm_hub/internal/service"
)

func TestHistoryHandler_Past(t *testing.T) {
	start := time.Date(2020, 3, 1, 5, 0, 0, 0, time.UTC)
	end := time.Date(2020, 3, 2, 5, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		query     url.Values
		resp      []models.Reading
		err       error
		wantCode  int
		wantCalls int
		wantRows  int
	}{
		{
			name:      "rfc3339 with offset",
			query:     url.Values{"start_date": {"2020-03-01T00:00:00-05:00"}, "end_date": {"2020-03-02T00:00:00-05:00"}},
			resp:      []models.Reading{{Name: "Bedroom", Time: start}, {Name: "Bedroom", Time: end}},
			wantCode:  http.StatusOK,
			wantCalls: 1,
			wantRows:  2,
		},
		{
			name:      "date only",
			query:     url.Values{"start_date": {"2020-03-01"}, "end_date": {"2020-03-02"}},
			wantCode:  http.StatusOK,
			wantCalls: 1,
		},
		{
			name:     "missing end",
			query:    url.Values{"start_date": {"2020-03-01"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad time",
			query:    url.Values{"start_date": {"yesterday"}, "end_date": {"2020-03-02"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "reversed range",
			query:     url.Values{"start_date": {"2020-03-02"}, "end_date": {"2020-03-01"}},
			err:       service.ErrInvalidTimeRange,
			wantCode:  http.StatusBadRequest,
			wantCalls: 1,
		},
		{
			name:      "store failure",
			query:     url.Values{"start_date": {"2020-03-01"}, "end_date": {"2020-03-02"}},
			err:       errors.New("db gone"),
			wantCode:  http.StatusInternalServerError,
			wantCalls: 1,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			hist := &mockHistory{resp: tc.resp, err: tc.err}
			r := newTestRouter(&service.Service{
				Authorization: &mockAuth{valid: testBearer},
				History:       hist,
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/past?"+tc.query.Encode(), nil)
			r.ServeHTTP(w, withHeader(req, authHeader(testBearer)))

			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if hist.calls != tc.wantCalls {
				t.Fatalf("service calls=%d, want %d", hist.calls, tc.wantCalls)
			}
			if tc.wantCode != http.StatusOK {
				return
			}

			var out []models.Reading
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v (%s)", err, w.Body.String())
			}
			if out == nil || len(out) != tc.wantRows {
				t.Fatalf("rows=%v, want %d", out, tc.wantRows)
			}
		})
	}
}

func TestHistoryHandler_PassesUTCRange(t *testing.T) {
	hist := &mockHistory{}
	r := newTestRouter(&service.Service{
		Authorization: &mockAuth{valid: testBearer},
		History:       hist,
	})

	q := url.Values{"start_date": {"2020-03-01T00:00:00-05:00"}, "end_date": {"2020-03-01 23:00:00"}}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, withHeader(httptest.NewRequest(http.MethodGet, "/past?"+q.Encode(), nil), authHeader(testBearer)))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if want := time.Date(2020, 3, 1, 5, 0, 0, 0, time.UTC); !hist.lastStart.Equal(want) || hist.lastStart.Location() != time.UTC {
		t.Fatalf("start=%v, want %v", hist.lastStart, want)
	}
	if want := time.Date(2020, 3, 1, 23, 0, 0, 0, time.UTC); !hist.lastEnd.Equal(want) {
		t.Fatalf("end=%v, want %v", hist.lastEnd, want)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2020-03-01T00:00:00Z", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2020-03-01T00:00:00+01:00", want: time.Date(2020, 2, 29, 23, 0, 0, 0, time.UTC)},
		{in: "2020-03-01 12:30:00", want: time.Date(2020, 3, 1, 12, 30, 0, 0, time.UTC)},
		{in: "2020-03-01", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "03/01/2020", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseQueryTime(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
