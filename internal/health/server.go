// Package health provides the operational HTTP surface of the ingestion
// service: container health probes, a readiness check backed by the match
// store, and the prometheus metrics endpoint.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DatabasePinger defines the interface for checking store connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// QuarantineCounter reports how many rows were quarantined since a point in
// time. Wired to the quarantine repository; the count is informational and
// never fails readiness.
type QuarantineCounter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// statusResponse is the JSON body shared by /health and /live.
type statusResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// readyResponse is the JSON body for /ready.
type readyResponse struct {
	Status        string            `json:"status"`
	Service       string            `json:"service"`
	Checks        map[string]string `json:"checks,omitempty"`
	Quarantined1d *int              `json:"quarantined_24h,omitempty"`
	Duration      string            `json:"duration,omitempty"`
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	DB          DatabasePinger
	Quarantine  QuarantineCounter
	Metrics     http.Handler
}

// Server serves the health, readiness and metrics endpoints.
type Server struct {
	cfg    Config
	port   string
	server *http.Server
	mu     sync.RWMutex
	ready  bool
}

// NewServer creates a new health check server. The port falls back to the
// HEALTH_PORT environment variable, then 8080.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("HEALTH_PORT")
	}
	if port == "" {
		port = "8080"
	}
	return &Server{cfg: cfg, port: port}
}

// SetReady marks the service as ready to report data. The ingestion service
// flips this after the startup backfill completes.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the service has been marked ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start starts the server in the background and shuts it down when the
// context is canceled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	if s.cfg.Metrics != nil {
		mux.Handle("/metrics", s.cfg.Metrics)
	}

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logf(func(log *logrus.Logger) {
			log.WithFields(logrus.Fields{"port": s.port, "service": s.cfg.ServiceName}).Info("Health server starting")
		})
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logf(func(log *logrus.Logger) {
				log.WithError(err).Error("Health server error")
			})
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.logf(func(log *logrus.Logger) {
		log.Info("Health server shutting down")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) logf(fn func(*logrus.Logger)) {
	if s.cfg.Logger != nil {
		fn(s.cfg.Logger)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Service: s.cfg.ServiceName})
}

// handleReady reports not_ready until the startup backfill finished and the
// match store answers a ping. The 24h quarantine count rides along so
// operators can spot a misbehaving provider from the probe output.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	healthy := true

	if s.IsReady() {
		checks["service"] = "ok"
	} else {
		healthy = false
		checks["service"] = "not_ready"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if s.cfg.DB != nil {
		if err := s.cfg.DB.Ping(ctx); err != nil {
			healthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	response := readyResponse{
		Service:  s.cfg.ServiceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	if s.cfg.Quarantine != nil {
		if count, err := s.cfg.Quarantine.CountSince(ctx, time.Now().Add(-24*time.Hour)); err == nil {
			response.Quarantined1d = &count
		}
	}

	status := http.StatusOK
	response.Status = "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		response.Status = "not_ready"
	}
	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
