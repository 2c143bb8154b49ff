// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var ErrServerRunning = errors.New("status server already running")

// Status is the snapshot served on /status.
type Status struct {
	Session  string `json:"session"`
	State    string `json:"state"`
	Frontend string `json:"frontend"`
	Backend  string `json:"backend"`
	Periods  uint64 `json:"periods"`
	Sched    string `json:"sched,omitempty"`
}

// StatusFunc produces the current snapshot. It is called per request.
type StatusFunc func() Status

// Server serves /metrics, /status and /health.
type Server struct {
	addr    string
	metrics *Metrics
	status  StatusFunc
	logger  *log.Logger

	mtx    *sync.Mutex
	server *http.Server
	bound  string
}

func NewServer(addr string, m *Metrics, status StatusFunc, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Server{
		addr:    addr,
		metrics: m,
		status:  status,
		logger:  logger,
		mtx:     &sync.Mutex{},
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		var st Status
		if s.status != nil {
			st = s.status()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			s.logger.Warn("encoding status", "err", err)
		}
	})

	return r
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.server != nil {
		return ErrServerRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}

	s.server = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.bound = ln.Addr().String()

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server", "err", err)
		}
	}()

	context.AfterFunc(ctx, func() { _ = s.Stop() })

	s.logger.Info("status server listening", "addr", s.bound)

	return nil
}

// Addr is the bound address once started.
func (s *Server) Addr() string {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.bound
}

func (s *Server) Stop() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.server = nil

	return err
}
