package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agbru/phicalc/internal/logging"
	"github.com/agbru/phicalc/internal/sequence"
)

// testLogger is a minimal logger for testing that implements logging.Logger.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}
func (l *testLogger) Printf(_ string, _ ...any)                   {}
func (l *testLogger) Println(_ ...any)                            {}

func newTestServer() *Server {
	return NewServer("127.0.0.1:0", newTestLogger())
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestHandleEstimate(t *testing.T) {
	s := newTestServer()

	t.Run("default parameters", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/estimate", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleEstimate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var resp estimateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.Width != "int64" {
			t.Errorf("width = %q, want int64", resp.Width)
		}
		if resp.N != sequence.DefaultCapacity {
			t.Errorf("n = %d, want %d", resp.N, sequence.DefaultCapacity)
		}
		if len(resp.Ratios) != resp.N-2 {
			t.Errorf("got %d ratios, want %d", len(resp.Ratios), resp.N-2)
		}
		if resp.Reference != sequence.GoldenRatio {
			t.Errorf("reference = %v, want %v", resp.Reference, sequence.GoldenRatio)
		}
	})

	t.Run("explicit n and width", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/estimate?n=10&width=big", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleEstimate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}

		var resp estimateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.Width != "big" {
			t.Errorf("width = %q, want big", resp.Width)
		}
		if resp.Terms != "0 1 1 2 3 5 8 13 21 34" {
			t.Errorf("terms = %q", resp.Terms)
		}
		if got, want := resp.Final, 34.0/21.0; got != want {
			t.Errorf("final = %v, want %v", got, want)
		}
	})

	t.Run("broken division", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/estimate?n=10&broken=true", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleEstimate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}

		var resp estimateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.Final != 1.0 {
			t.Errorf("truncated final = %v, want 1.0", resp.Final)
		}
	})

	t.Run("overflow refused without opt-in", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/estimate?n=48&width=int32", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleEstimate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
		}
	})

	t.Run("overflow demonstration with opt-in", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/estimate?n=48&width=int32&allow_overflow=true", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleEstimate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}

		var resp estimateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if !resp.Overflowed {
			t.Error("response should be flagged overflowed")
		}
		if !strings.Contains(resp.Terms, "-1323752223") {
			t.Errorf("terms should show the wrapped value, got %q", resp.Terms)
		}
	})

	t.Run("invalid parameters", func(t *testing.T) {
		tests := []struct {
			name  string
			query string
		}{
			{"n not a number", "?n=abc"},
			{"n below 2", "?n=1"},
			{"n above max capacity", "?n=2048"},
			{"unknown width", "?width=float128"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := httptest.NewRequest("GET", "/api/v1/estimate"+tt.query, http.NoBody)
				rec := httptest.NewRecorder()
				s.handleEstimate(rec, req)

				if rec.Code != http.StatusBadRequest {
					t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
				}
				var resp errorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid JSON: %v", err)
				}
				if resp.Error == "" {
					t.Error("error message should not be empty")
				}
			})
		}
	})

	t.Run("POST returns method not allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/estimate", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleEstimate(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}

func TestHandler_Routes(t *testing.T) {
	s := newTestServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	for _, path := range []string{"/healthz", "/metrics", "/api/v1/estimate?n=10"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, resp.StatusCode, http.StatusOK)
		}
	}
}
