// Package server hosts the scatter renderer behind HTTP.
//
// The browser page posts the input to /api/render on every change and on
// settled resizes, mounts the returned block markup, and prints through
// /api/print. Each render draws a fresh seed that is returned to the page,
// so the print document reproduces exactly the layout on screen.
package server

import (
	"context"
	"embed"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/typescatter/pkg/printer"
	"github.com/matzehuels/typescatter/pkg/scatter"
)

//go:embed static/index.html
var static embed.FS

// Server serves the page and the render API.
type Server struct {
	renderOpts   []scatter.Option
	defaultWidth float64
	printDelay   time.Duration
	debounce     time.Duration
	shapes       scatter.LibrarySource
	logger       *log.Logger
	router       chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRenderOptions are applied to every per-request renderer.
func WithRenderOptions(opts ...scatter.Option) Option {
	return func(s *Server) { s.renderOpts = opts }
}

// WithShapes sets the template source reported by /healthz and used for
// rendering.
func WithShapes(src scatter.LibrarySource) Option {
	return func(s *Server) { s.shapes = src }
}

// WithDefaultWidth is used when a request carries no width.
func WithDefaultWidth(w float64) Option { return func(s *Server) { s.defaultWidth = w } }

// WithPrintDelay sets the auto-print delay embedded in print documents.
func WithPrintDelay(d time.Duration) Option { return func(s *Server) { s.printDelay = d } }

// WithResizeDebounce sets the resize settle time used by the page.
func WithResizeDebounce(d time.Duration) Option { return func(s *Server) { s.debounce = d } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// New builds a Server and its routes.
func New(opts ...Option) *Server {
	s := &Server{
		defaultWidth: 800,
		printDelay:   printer.DefaultDelay,
		debounce:     180 * time.Millisecond,
		logger:       log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Post("/render", s.handleRender)
		r.Get("/render.svg", s.handleRenderSVG)
		r.Post("/print", s.handlePrint)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}
