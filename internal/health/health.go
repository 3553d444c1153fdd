package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/internal/bot"
	"github.com/zenith-trading/zenith-bot/pkg/logger"
)

// Server exposes liveness/readiness probes plus a small status
// endpoint with the current market-wide sentiment.
type Server struct {
	server    *http.Server
	service   *bot.Service
	ready     bool
	readyMu   sync.RWMutex
	startTime time.Time
}

// HealthStatus represents process health
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// ReadinessStatus represents service readiness
type ReadinessStatus struct {
	Ready     bool   `json:"ready"`
	Timestamp string `json:"timestamp"`
}

// StatusResponse summarizes the current sentiment picture
type StatusResponse struct {
	Timestamp  string  `json:"timestamp"`
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Samples    int     `json:"samples"`
	LastUpdate string  `json:"last_update,omitempty"`
}

// NewServer creates the health check server.
func NewServer(port string, service *bot.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         ":" + port,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		service:   service,
		ready:     false,
		startTime: time.Now(),
	}

	mux.HandleFunc("/health", s.handleHealth)    // Liveness probe
	mux.HandleFunc("/ready", s.handleReadiness)  // Readiness probe
	mux.HandleFunc("/healthz", s.handleHealth)   // Alias
	mux.HandleFunc("/readyz", s.handleReadiness) // Alias
	mux.HandleFunc("/status", s.handleStatus)    // Market sentiment summary

	return s
}

// Start starts the health check server
func (s *Server) Start() error {
	logger.Info("health check server starting",
		zap.String("addr", s.server.Addr),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("stopping health check server...")
	return s.server.Shutdown(ctx)
}

// SetReady marks the service as ready
func (s *Server) SetReady(ready bool) {
	s.readyMu.Lock()
	defer s.readyMu.Unlock()
	s.ready = ready
}

// handleHealth returns 200 whenever the process is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}

// handleReadiness returns 200 once startup has completed.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	s.readyMu.RLock()
	ready := s.ready
	s.readyMu.RUnlock()

	status := ReadinessStatus{
		Ready:     ready,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if ready {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}

// handleStatus serves the market-wide aggregate for quick inspection.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	aggregate := s.service.GetMarketSentiment()

	status := StatusResponse{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Label:      aggregate.Label,
		Score:      aggregate.Score,
		Confidence: aggregate.Confidence,
		Samples:    aggregate.SampleCount,
	}
	if !aggregate.LastUpdate.IsZero() {
		status.LastUpdate = aggregate.LastUpdate.UTC().Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}
