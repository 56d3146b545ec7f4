package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thoreinstein/folio/internal/errors"
	"github.com/thoreinstein/folio/internal/logging"
	"github.com/thoreinstein/folio/internal/post"
	"github.com/thoreinstein/folio/internal/render"
	"github.com/thoreinstein/folio/internal/translate"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Server serves the blog for local preview. Posts are read from disk on
// every request so edits show up on reload.
type Server struct {
	loader   *post.Loader
	renderer *render.Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock sets the time source for relative dates.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New returns a Server reading posts with loader and rendering with renderer.
func New(loader *post.Loader, renderer *render.Renderer, opts ...Option) *Server {
	s := &Server{
		loader:   loader,
		renderer: renderer,
		logger:   logging.NewDiscard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router:
//
//	GET /                 post index, newest first
//	GET /blog/{slug}      post page
//	GET /api/posts        JSON list of post records
//	GET /api/posts/{slug} JSON post record
//	GET /healthz          liveness
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/blog/{slug}", s.handlePost)
	r.Route("/api/posts", func(api chi.Router) {
		api.Get("/", s.handleAPIList)
		api.Get("/{slug}", s.handleAPIPost)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	return r
}

// Run listens on addr and serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving posts", "addr", ln.Addr().String(), "dir", s.loader.Dir())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "serving")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving")
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := s.loader.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	post.SortByDate(posts)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Index(w, posts, s.now()); err != nil {
		s.fail(w, r, err)
	}
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	p, err := s.loader.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Page(w, p, s.now()); err != nil {
		s.fail(w, r, err)
	}
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	posts, err := s.loader.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	post.SortByDate(posts)
	posts = post.Search(posts, r.URL.Query().Get("q"), post.SearchOptions{
		Author: r.URL.Query().Get("author"),
	})

	records := make([]map[string]any, len(posts))
	for i := range posts {
		records[i] = translate.Record(&posts[i])
	}
	s.writeJSON(w, r, records)
}

func (s *Server) handleAPIPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.loader.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, translate.Record(p))
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(append(data, '\n'))
}

// fail maps err to a status code. Unknown and invalid slugs are 404;
// everything else is logged and reported as 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrInvalidSlug) {
		http.NotFound(w, r)
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
