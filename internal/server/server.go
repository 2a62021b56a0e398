// Package server implements an HTTP API on go-chi/chi: per-client
// DataFrame sessions, a single-writer lockfile, and idle-timeout
// auto-shutdown.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"

	"github.com/flowtable/compute/internal/enginelog"
	"github.com/flowtable/compute/internal/registry"
	"github.com/flowtable/compute/internal/resolve"
)

// Endpoints is the list of routes the server advertises on startup and
// via /api/status.
var Endpoints = []string{
	"GET /api/health",
	"GET /api/ping",
	"GET /api/status",
	"POST /api/read_data",
	"POST /api/write_data",
	"POST /api/compute",
	"GET /api/interface/read",
}

// Server holds the process-wide state shared by every session.
type Server struct {
	Store    *Store
	Registry *registry.Registry
	Resolver *resolve.Resolver
	Log      *enginelog.Logger
	FS       afero.Fs

	IdleTimeout time.Duration

	mu         sync.RWMutex
	sessions   map[string]*Session
	lastActive time.Time
	startedAt  time.Time

	idleCancel context.CancelFunc
}

// New constructs a Server. idleTimeout of 0 disables the idle-shutdown
// timer.
func New(store *Store, reg *registry.Registry, resolver *resolve.Resolver, log *enginelog.Logger, fs afero.Fs, idleTimeout time.Duration) *Server {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Server{
		Store:       store,
		Registry:    reg,
		Resolver:    resolver,
		Log:         log,
		FS:          fs,
		IdleTimeout: idleTimeout,
		sessions:    make(map[string]*Session),
		startedAt:   time.Now(),
		lastActive:  time.Now(),
	}
}

func (s *Server) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// Router builds the chi mux for every endpoint in Endpoints.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s.touch()
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/api/health", s.handleHealth)
	r.Get("/api/ping", s.handlePing)
	r.Get("/api/status", s.handleStatus)
	r.Post("/api/read_data", s.handleReadData)
	r.Post("/api/write_data", s.handleWriteData)
	r.Post("/api/compute", s.handleCompute)
	r.Get("/api/interface/read", s.handleInterfaceRead)
	return r
}

// idleMonitor calls onIdle once IdleTimeout of inactivity has elapsed,
// then returns; it returns at once when IdleTimeout is 0. Serve runs it
// in its own goroutine.
func (s *Server) idleMonitor(ctx context.Context, onIdle func()) {
	if s.IdleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(s.IdleTimeout / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			idleFor := time.Since(s.lastActive)
			s.mu.RUnlock()
			if idleFor >= s.IdleTimeout {
				onIdle()
				return
			}
		}
	}
}

// Serve listens on addr, shutting down automatically after IdleTimeout of
// inactivity across all endpoints (0 disables the timer).
func (s *Server) Serve(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr, Handler: s.Router()}

	ctx, cancel := context.WithCancel(ctx)
	s.idleCancel = cancel
	go s.idleMonitor(ctx, func() {
		httpSrv.Shutdown(context.Background())
	})

	err := httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
