package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bindery/internal/catalog"
	"bindery/internal/covers"
	"bindery/internal/logging"
	"bindery/internal/metrics"
	"bindery/internal/naver"
)

// Options carries the collaborators the HTTP layer serves. Catalog and
// Resolver are required; the rest degrade gracefully when absent.
type Options struct {
	Catalog  *catalog.Catalog
	Resolver *covers.Resolver
	Cache    *covers.Cache
	Searcher naver.Searcher
	Budget   int
	Display  int
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Server wires handlers over the catalog and the cover engine.
type Server struct {
	catalog  *catalog.Catalog
	resolver *covers.Resolver
	cache    *covers.Cache
	searcher naver.Searcher
	budget   int
	display  int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New validates the collaborators and returns a ready Server.
func New(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		return nil, errors.New("server: catalog is required")
	}
	if opts.Resolver == nil {
		return nil, errors.New("server: resolver is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	budget := opts.Budget
	if budget <= 0 {
		budget = 18
	}
	display := opts.Display
	if display <= 0 {
		display = 12
	}
	return &Server{
		catalog:  opts.Catalog,
		resolver: opts.Resolver,
		cache:    opts.Cache,
		searcher: opts.Searcher,
		budget:   budget,
		display:  display,
		logger:   logging.NewComponentLogger(logger, "http"),
		metrics:  opts.Metrics,
	}, nil
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/catalog/majors", s.handleMajors)
		r.Get("/covers", s.handleCovers)
		r.Get("/search", s.handleSearch)
	})

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	return r
}
