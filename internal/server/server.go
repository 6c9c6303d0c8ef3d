// Package server exposes the estimator over HTTP: a JSON estimation API,
// a health endpoint, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/phicalc/internal/estimator"
	"github.com/agbru/phicalc/internal/logging"
	"github.com/agbru/phicalc/internal/sequence"
)

const (
	// DefaultReadTimeout bounds how long reading a request may take.
	DefaultReadTimeout = 5 * time.Second
	// DefaultWriteTimeout bounds how long writing a response may take.
	DefaultWriteTimeout = 30 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown on context cancellation.
	DefaultShutdownTimeout = 10 * time.Second
	// DefaultEstimateTimeout bounds a single estimation run.
	DefaultEstimateTimeout = 10 * time.Second
)

// Server serves the estimation API.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
}

// NewServer creates a server listening on addr.
func NewServer(addr string, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		metrics:  NewMetrics(),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Handler builds the routing table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.metricsMiddleware(SecurityMiddleware(s.security, s.handleHealth)))
	mux.HandleFunc("/metrics", s.metricsMiddleware(SecurityMiddleware(s.security, s.handleMetrics)))
	mux.HandleFunc("/api/v1/estimate", s.metricsMiddleware(SecurityMiddleware(s.security, s.handleEstimate)))
	return mux
}

// Run starts the HTTP server and blocks until the context is canceled or the
// listener fails. Shutdown is graceful with a bounded deadline.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.addr))
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// metricsMiddleware tracks in-flight and total requests around a handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.CountRequest(r.URL.Path, r.Method)
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition endpoint. GET only.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("method not allowed on /metrics", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// estimateResponse is the JSON shape of a successful estimation.
type estimateResponse struct {
	Width      string    `json:"width"`
	N          int       `json:"n"`
	Ratios     []float64 `json:"ratios"`
	Final      float64   `json:"final"`
	Reference  float64   `json:"reference"`
	Terms      string    `json:"terms"`
	Overflowed bool      `json:"overflowed"`
	DurationMs float64   `json:"duration_ms"`
}

// errorResponse is the JSON shape of a failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// handleEstimate runs one estimation from query parameters:
//
//	GET /api/v1/estimate?n=30&width=int64&broken=false&allow_overflow=false
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()

	n := sequence.DefaultCapacity
	if raw := q.Get("n"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed > s.security.MaxNValue {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid n: %q", raw)})
			return
		}
		n = int(parsed)
	}
	if n < 2 || n > sequence.MaxCapacity {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("n must be between 2 and %d, got %d", sequence.MaxCapacity, n),
		})
		return
	}

	widthName := q.Get("width")
	if widthName == "" {
		widthName = "int64"
	}
	width, err := sequence.ParseWidth(widthName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	opts := estimator.Options{
		Capacity:      n,
		Broken:        q.Get("broken") == "true",
		AllowOverflow: q.Get("allow_overflow") == "true",
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultEstimateTimeout)
	defer cancel()

	est := estimator.NewEstimator(width)
	start := time.Now()
	result, err := est.Estimate(ctx, nil, n, opts)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.CountEstimation(est.Name(), "error")
		s.logger.Error("estimation failed", err,
			logging.String("width", est.Name()), logging.Int("n", n))

		status := http.StatusInternalServerError
		var capErr sequence.CapacityError
		var ovErr sequence.OverflowError
		if errors.As(err, &capErr) || errors.As(err, &ovErr) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	outcome := "ok"
	if result.Overflowed {
		outcome = "overflowed"
	}
	s.metrics.CountEstimation(est.Name(), outcome)
	s.metrics.ObserveEstimationDuration(est.Name(), elapsed.Seconds())
	s.logger.Info("estimation served",
		logging.String("width", est.Name()),
		logging.Int("n", n),
		logging.Float64("final", result.Final))

	writeJSON(w, http.StatusOK, estimateResponse{
		Width:      est.Name(),
		N:          n,
		Ratios:     result.Ratios,
		Final:      result.Final,
		Reference:  sequence.GoldenRatio,
		Terms:      result.Terms,
		Overflowed: result.Overflowed,
		DurationMs: float64(elapsed.Microseconds()) / 1000,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
