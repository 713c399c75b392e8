// Package health provides a lightweight HTTP server exposing liveness, the
// status of the last simulation run, and Prometheus metrics.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// RunStatus describes the most recent simulation run.
type RunStatus struct {
	RunID      string  `json:"run_id"`
	Mode       string  `json:"mode"`
	Status     string  `json:"status"`
	Best       string  `json:"best,omitempty"`
	BestEV     float64 `json:"best_ev"`
	DurationMs float64 `json:"duration_ms"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status  string     `json:"status"`
	Service string     `json:"service"`
	LastRun *RunStatus `json:"last_run,omitempty"`
}

// Server is a lightweight HTTP server for health and metrics endpoints.
type Server struct {
	serviceName string
	version     string
	commit      string
	addr        string
	metrics     http.Handler
	server      *http.Server
	listener    net.Listener
	logger      *logrus.Logger
	mu          sync.RWMutex
	lastRun     *RunStatus
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Addr        string
	Metrics     http.Handler
	Logger      *logrus.Logger
}

// NewServer creates a new health check server.
func NewServer(cfg Config) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = ":9090"
	}
	return &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		addr:        addr,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
}

// SetLastRun records the status of the latest run; /ready reports ok once set.
func (s *Server) SetLastRun(status RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = &status
}

// LastRun returns the latest run status, if any.
func (s *Server) LastRun() (RunStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return RunStatus{}, false
	}
	return *s.lastRun, true
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	return mux
}

// Start binds the listen address and serves in the background. A bind
// failure is returned to the caller. The server shuts down when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"addr":    listener.Addr().String(),
			"service": s.serviceName,
		}).Info("Metrics server starting")
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if s.logger != nil {
				s.logger.WithError(err).Error("Metrics server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown()
	}()

	return nil
}

// Addr returns the bound address once started, or the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("Metrics server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	})
}

// handleReady reports not_ready until a run has finished.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	response := ReadyResponse{Service: s.serviceName}
	if last, ok := s.LastRun(); ok {
		response.Status = "ok"
		response.LastRun = &last
		writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	writeJSON(w, http.StatusServiceUnavailable, response)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
