// Package health exposes liveness and readiness probes for the pick
// refresh daemon.
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

// DatabasePinger checks connectivity to the pick store.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// SchedulerChecker reports whether the background refresh loop is alive.
type SchedulerChecker interface {
	IsRunning() bool
}

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

type namedCheck struct {
	name  string
	check Check
}

// Server answers /live, /health and /ready for the daemon. Readiness
// fails until SetReady(true) and whenever any registered dependency
// check fails.
type Server struct {
	serviceName string
	version     string
	commit      string
	port        string
	started     time.Time
	checks      []namedCheck
	server      *http.Server
	logger      *logrus.Logger

	mu    sync.RWMutex
	ready bool
}

// Config holds the health server dependencies. DB and Scheduler are
// optional; a nil value simply skips that readiness check.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	DB          DatabasePinger
	Scheduler   SchedulerChecker
}

// NewServer builds a health server from the config. The port falls
// back to HEALTH_PORT, then 8080.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("HEALTH_PORT")
	}
	if port == "" {
		port = "8080"
	}

	s := &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		port:        port,
		logger:      cfg.Logger,
	}

	if cfg.Scheduler != nil {
		sched := cfg.Scheduler
		s.AddCheck("scheduler", func(context.Context) error {
			if !sched.IsRunning() {
				return fmt.Errorf("refresh scheduler stopped")
			}
			return nil
		})
	}
	if cfg.DB != nil {
		db := cfg.DB
		s.AddCheck("database", func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			return db.Ping(pingCtx)
		})
	}

	return s
}

// AddCheck registers a named readiness check. Checks run in
// registration order on every /ready request.
func (s *Server) AddCheck(name string, check Check) {
	s.checks = append(s.checks, namedCheck{name: name, check: check})
}

// SetReady flips the manual readiness gate. The daemon sets it true
// once the scheduler is wired and false when shutdown begins, so load
// balancers drain before the refresh loop stops.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

// IsReady reports the manual readiness gate.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start serves the probe endpoints in the background until the context
// is cancelled or Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)

	s.started = time.Now().UTC()
	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
			}).Info("Health server listening")
		}
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health server failed")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown stops the probe server, waiting up to five seconds for
// in-flight requests.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	if s.logger != nil {
		s.logger.Info("Health server shutting down")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type probeStatus struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version,omitempty"`
	Commit  string            `json:"commit,omitempty"`
	Uptime  string            `json:"uptime,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeProbe(w, http.StatusOK, probeStatus{Status: "ok", Service: s.serviceName})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeProbe(w, http.StatusOK, probeStatus{
		Status:  "ok",
		Service: s.serviceName,
		Version: s.version,
		Commit:  s.commit,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(s.checks)+1)
	healthy := true

	if s.IsReady() {
		checks["service"] = "ok"
	} else {
		healthy = false
		checks["service"] = "not_ready"
	}

	for _, c := range s.checks {
		if err := c.check(r.Context()); err != nil {
			healthy = false
			checks[c.name] = fmt.Sprintf("error: %v", err)
		} else {
			checks[c.name] = "ok"
		}
	}

	status := probeStatus{Status: "ok", Service: s.serviceName, Checks: checks}
	code := http.StatusOK
	if !healthy {
		status.Status = "not_ready"
		code = http.StatusServiceUnavailable
	}
	writeProbe(w, code, status)
}

func writeProbe(w http.ResponseWriter, code int, status probeStatus) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
