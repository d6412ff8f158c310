// Package server implements the depender HTTP API.
//
// Endpoints:
//
//	GET    /healthz                            liveness probe
//	POST   /api/analyses                       run the pipeline, persist the result
//	GET    /api/analyses                       list stored analyses
//	GET    /api/analyses/{id}                  fetch one analysis
//	GET    /api/analyses/{id}/artifacts/{fmt}  fetch one rendered artifact
//	DELETE /api/analyses/{id}                  remove an analysis
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/VASemenov/depender/pkg/cache"
	apperrors "github.com/VASemenov/depender/pkg/errors"
	"github.com/VASemenov/depender/pkg/layout"
	"github.com/VASemenov/depender/pkg/pipeline"
	"github.com/VASemenov/depender/pkg/store"
)

// Server ties the router, pipeline runner, and analysis store together.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil store falls back to in-memory persistence,
// a nil logger to the default logger.
func New(cfg Config, runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		store:  st,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/analyses", func(r chi.Router) {
		r.Post("/", s.handleCreateAnalysis)
		r.Get("/", s.handleListAnalyses)
		r.Get("/{id}", s.handleGetAnalysis)
		r.Get("/{id}/artifacts/{format}", s.handleGetArtifact)
		r.Delete("/{id}", s.handleDeleteAnalysis)
	})
	return r
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr, "env", s.cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// NewCache builds the pipeline cache selected by the config.
func NewCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case "file":
		return cache.NewFileCache(cfg.CacheDir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return cache.NewLRUCache(cfg.CacheSize)
	}
}

// NewKeyer builds a cache keyer that prefixes every key with the
// deployment environment, so staging and production sharing a Redis
// instance never read each other's entries.
func NewKeyer(cfg Config) cache.Keyer {
	return cache.NewScopedKeyer(nil, cfg.Env+":")
}

// NewStore builds the analysis store selected by the config.
func NewStore(ctx context.Context, cfg Config) (store.Store, error) {
	if cfg.StoreBackend == "mongo" {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	}
	return store.NewMemoryStore(), nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// statusForError maps application error codes to HTTP statuses.
func statusForError(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, layout.ErrNotATree) {
		return http.StatusUnprocessableEntity
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeInvalidModule, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidColor:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeAnalysisNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeNotATree, apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
