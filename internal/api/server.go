// Package api serves layouts over HTTP for `masonry serve`.
//
// Routes:
//
//	GET    /healthz               liveness and build info
//	GET    /v1/profiles           resolved layout profiles
//	POST   /v1/layouts            compute a layout (?save=true persists it)
//	GET    /v1/layouts            list saved layouts
//	GET    /v1/layouts/{id}       saved layout as JSON; {id}.svg, .png, .txt render it
//	DELETE /v1/layouts/{id}       delete a saved layout
//	GET    /v1/feed               websocket feed that re-lays out as tiles arrive
package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/masonry/pkg/config"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// Config holds server settings.
type Config struct {
	Addr string

	// RateLimit is the sustained requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimit float64
	Burst     int

	// MaxBodyBytes bounds request bodies and websocket messages.
	MaxBodyBytes int64

	// Debounce is the settle window before a feed publishes a layout.
	Debounce time.Duration

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultConfig returns the settings used by `masonry serve`.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		RateLimit:         10,
		Burst:             20,
		MaxBodyBytes:      4 << 20,
		Debounce:          300 * time.Millisecond,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Server is the HTTP front end of a pipeline.Runner.
type Server struct {
	cfg      Config
	runner   *pipeline.Runner
	profiles *config.File
	logger   *log.Logger
	limiter  *clientLimiter
	upgrader websocket.Upgrader
}

// New creates a server. A nil profiles file uses the built-in profiles.
func New(runner *pipeline.Runner, profiles *config.File, logger *log.Logger, cfg Config) *Server {
	if profiles == nil {
		f := config.Builtin()
		profiles = &f
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	return &Server{
		cfg:      cfg,
		runner:   runner,
		profiles: profiles,
		logger:   logger,
		limiter:  newClientLimiter(cfg.RateLimit, cfg.Burst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.rateLimit)

		r.Get("/profiles", s.handleProfiles)
		r.Post("/layouts", s.handleCreateLayout)
		r.Get("/layouts", s.handleListLayouts)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Delete("/layouts/{id}", s.handleDeleteLayout)
		r.Get("/feed", s.handleFeed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, errNotFoundRoute)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
