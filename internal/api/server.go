package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/config"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// Store is the catalog storage the server reads and writes. *db.DB
// satisfies it.
type Store interface {
	Ping() error
	ListProducts(opts db.ListProductsOptions) ([]models.Product, error)
	CountProducts(opts db.ListProductsOptions) (int, error)
	GetProduct(id string) (*models.Product, error)
	CreateProduct(p *models.Product) error
	UpdateProduct(p *models.Product) error
	DeleteProduct(id string) error
	ListCategories() ([]models.Category, error)
	GetCategory(idOrName string) (*models.Category, error)
	CreateCategory(c *models.Category) error
	DeleteCategory(id string, force bool) error
	ProductStats() (*models.ProductStats, error)
}

var _ Store = (*db.DB)(nil)

// Server is the catalog HTTP API.
type Server struct {
	config  Config
	http    *http.Server
	store   Store
	metrics *Metrics
	logger  *slog.Logger

	// price and stock format filter descriptions in responses.
	price rangefilter.Domain
	stock rangefilter.Domain
}

// NewServer creates a new Server with the given config and store. A nil
// logger uses slog.Default.
func NewServer(cfg Config, store Store, logger *slog.Logger) (*Server, error) {
	if store == nil {
		return nil, errors.New("api: nil store")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}

	price, stock := config.Domains(&models.Config{Currency: cfg.Currency, Locale: cfg.Locale})
	s := &Server{
		config:  cfg,
		store:   store,
		metrics: NewMetrics(),
		logger:  logger,
		price:   price,
		stock:   stock,
	}

	s.http = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start begins listening for HTTP requests (non-blocking) and returns the
// bound address.
func (s *Server) Start() (net.Addr, error) {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server", "err", err)
		}
	}()
	return ln.Addr(), nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// routes builds the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		recoveryMiddleware,
		requestIDMiddleware,
		loggerMiddleware(s.logger),
		observeMiddleware(s.metrics),
		s.CORSMiddleware,
		maxBytesMiddleware(s.config.MaxBodyBytes),
	)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.handleListProducts)
		r.Post("/", s.handleCreateProduct)
		r.Get("/{id}", s.handleGetProduct)
		r.Put("/{id}", s.handleUpdateProduct)
		r.Delete("/{id}", s.handleDeleteProduct)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.handleListCategories)
		r.Post("/", s.handleCreateCategory)
		r.Delete("/{id}", s.handleDeleteCategory)
	})

	r.Get("/filters/presets", s.handleFilterPresets)
	r.Get("/filters/resolve", s.handleFilterResolve)
	r.Get("/stats", s.handleStats)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeBadRequest, r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// handleHealth returns a health check response, pinging the catalog DB.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		logFor(r.Context()).Warn("health check", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error", "detail": "db unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
