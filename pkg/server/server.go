// Package server exposes the layout pipeline over HTTP.
//
// The API is a thin JSON layer over [pipeline.Runner]; layouts and
// artifacts are cached by the runner exactly as they are for the CLI.
//
// # Endpoints
//
//	POST /v1/layout            gallery → positioned layout (JSON)
//	POST /v1/render?format=svg gallery → rendered artifact
//	POST /v1/partition         weights + k → contiguous groups
//	GET  /healthz              liveness probe
//	GET  /version              build information
//
// Layout and render requests share one body shape:
//
//	{
//	  "elements": [{"id": "a", "width": 1600, "height": 900}, ...],
//	  "options":  {"width": 1200, "spacing": 8}
//	}
//
// Options omitted from the request fall back to the server defaults.
// Errors are returned as {"error": {"code": "...", "message": "..."}}.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxElements     = 1000

	// DefaultMaxPartitionCells bounds the partition tables built for one
	// request. It admits a full partition of DefaultMaxElements weights into
	// half as many groups.
	DefaultMaxPartitionCells = DefaultMaxElements * DefaultMaxElements / 2

	// maxBodyBytes bounds request bodies independently of MaxElements.
	maxBodyBytes = 16 << 20
)

// Options configures a Server.
type Options struct {
	// Runner executes layouts. Required.
	Runner *pipeline.Runner

	// Defaults are applied to every request before its own options.
	Defaults pipeline.Options

	Logger *log.Logger

	// MaxElements bounds the number of elements or weights per request.
	MaxElements int

	// MaxPartitionCells bounds elements × groups for /v1/partition and for
	// justified layouts (see partition.Cells).
	MaxPartitionCells int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server is the gridfit HTTP API.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	opts     Options
	router   chi.Router
}

// New creates a server and registers its routes.
func New(opts Options) (*Server, error) {
	if opts.Runner == nil {
		return nil, errors.New("server: runner is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxElements == 0 {
		opts.MaxElements = DefaultMaxElements
	}
	if opts.MaxPartitionCells == 0 {
		opts.MaxPartitionCells = DefaultMaxPartitionCells
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		runner:   opts.Runner,
		defaults: opts.Defaults,
		logger:   opts.Logger.WithPrefix("http"),
		opts:     opts,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/partition", s.handlePartition)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", fmt.Sprintf("%s not allowed on %s", r.Method, r.URL.Path))
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is like ListenAndServe but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.opts.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
