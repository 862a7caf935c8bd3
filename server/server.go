// Package server exposes the resource services over a read-only JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/network"
	"github.com/s0up4200/pokedex/service"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

const (
	defaultListLimit = 20
	shutdownTimeout  = 10 * time.Second
)

// Deps are the collaborators the handlers use.
type Deps struct {
	Registry *service.Registry
	Filters  *filter.Manager
	Monitor  *network.Monitor
	Tracker  *service.Tracker
	Logger   zerolog.Logger
	Version  string
}

// Server is the HTTP façade.
type Server struct {
	http   *http.Server
	logger zerolog.Logger
}

// New creates a Server listening on addr.
func New(addr string, deps Deps) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(deps),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: deps.Logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("Shutting down HTTP server")
	return s.http.Shutdown(shutdownCtx)
}

// NewHandler builds the router.
func NewHandler(deps Deps) http.Handler {
	if deps.Filters == nil {
		deps.Filters = deps.Registry.Base().Filters()
	}
	if deps.Tracker == nil {
		deps.Tracker = service.NewTracker()
	}
	h := &handlers{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.status)
		r.Get("/{family}", h.list)
		r.Get("/{family}/search", h.search)
		r.Get("/{family}/random", h.random)
		r.Get("/{family}/{id}", h.get)
		r.Get("/{family}/{id}/details", h.details)
	})

	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("HTTP request")
		})
	}
}
