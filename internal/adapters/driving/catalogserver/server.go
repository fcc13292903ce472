package catalogserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/partfinder-cli/internal/catalogapi"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// DefaultBasePath matches the path of the default catalog base URL.
const DefaultBasePath = "/api"

// Server exposes a catalog over HTTP.
type Server struct {
	catalog  driven.CatalogService
	basePath string
	handler  http.Handler
}

// New creates a server for catalog mounted at basePath.
// An empty basePath mounts the API at DefaultBasePath; "/" mounts it at the root.
func New(catalog driven.CatalogService, basePath string) (*Server, error) {
	if catalog == nil {
		return nil, ErrMissingCatalog
	}
	if basePath == "" {
		basePath = DefaultBasePath
	}
	basePath = "/" + strings.Trim(basePath, "/")

	s := &Server{catalog: catalog, basePath: basePath}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// BasePath returns the path the catalog API is mounted under.
func (s *Server) BasePath() string {
	return s.basePath
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(requestLogging)
	r.Use(instrument)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	api := func(r chi.Router) {
		r.Get(catalogapi.PathCategories, s.handleCategories)
		r.Get(catalogapi.PathMakes, s.handleMakes)
		r.Get(catalogapi.PathModels, s.handleModels)
		r.Get(catalogapi.PathYearsRange, s.handleYearsRange)
		r.Get(catalogapi.PathSuggestions, s.handleSuggestions)
		r.Get(catalogapi.PathProducts, s.handleProducts)
		r.Get(catalogapi.PathProducts+"/{id}", s.handleProduct)
	}
	if s.basePath == "/" {
		api(r)
	} else {
		r.Route(s.basePath, api)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
	return r
}

// RunHTTP serves on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("Fixture catalog listening on %s%s", addr, s.basePath)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		log := logger.Component("fixture")
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Str("request_id", r.Header.Get(catalogapi.RequestIDHeader)).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
