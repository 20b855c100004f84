// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/smartkitchen/kitchen/internal/infrastructure/config"
	"github.com/smartkitchen/kitchen/internal/infrastructure/http/handlers"
	"github.com/smartkitchen/kitchen/internal/infrastructure/http/middleware"
	"github.com/smartkitchen/kitchen/internal/infrastructure/monitoring"
	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"github.com/smartkitchen/kitchen/pkg/healthcheck"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const requestTimeout = 30 * time.Second

// Server is the JSON API HTTP server
type Server struct {
	config      *config.Config
	logger      *zap.Logger
	server      *http.Server
	router      *chi.Mux
	catalog     inbound.CatalogService
	recommender inbound.RecommendationService
	knowledge   handlers.KnowledgeService
	health      *healthcheck.HealthCheck
	metrics     *monitoring.MetricsCollector
	limiter     *middleware.RateLimiter
}

// NewServer creates a new API server. metrics and knowledge may be nil.
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	catalog inbound.CatalogService,
	recommender inbound.RecommendationService,
	knowledge handlers.KnowledgeService,
	health *healthcheck.HealthCheck,
	metrics *monitoring.MetricsCollector,
) *Server {
	s := &Server{
		config:      cfg,
		logger:      log.Named("api-server"),
		catalog:     catalog,
		recommender: recommender,
		knowledge:   knowledge,
		health:      health,
		metrics:     metrics,
	}

	if cfg.RateLimit.Enable {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize, 10*time.Minute)
	}

	s.router = s.setupRoutes()

	var handler http.Handler = s.router
	if cfg.Server.EnableH2C {
		// Cleartext HTTP/2 for callers behind a TLS-terminating proxy
		handler = h2c.NewHandler(s.router, &http2.Server{IdleTimeout: cfg.Server.IdleTimeout})
	}

	s.server = &http.Server{
		Addr:           net.JoinHostPort(cfg.Server.Host, fmt.Sprint(cfg.Server.Port)),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	healthPath := s.config.Monitoring.HealthCheckPath
	readyPath := s.config.Monitoring.ReadinessPath

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger, healthPath, readyPath, "/metrics"))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	r.Use(middleware.Tracing(s.config.App.Name))
	if s.metrics != nil {
		r.Use(s.metrics.HTTPMiddleware)
	}

	// Probes
	if s.health != nil {
		r.Get(healthPath, s.health.LivenessHandler())
		r.Get(readyPath, s.health.ReadinessHandler())
	}
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}
		r.Use(chimiddleware.Timeout(requestTimeout))
		if s.config.Server.EnableCompression {
			r.Use(chimiddleware.Compress(5))
		}
		r.Use(middleware.JSONOnly())
		r.Use(middleware.RequireToken(s.config.Auth.JWTSecret, s.config.Auth.JWTIssuer))

		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *Server) setupAPIV1Routes(r chi.Router) {
	c := handlers.NewCatalogHandlers(s.catalog, s.logger)
	rh := handlers.NewRecommendHandlers(s.recommender, s.knowledge, s.logger)

	r.Route("/fridges", func(r chi.Router) {
		r.Get("/", c.ListFridges)
		r.Post("/", c.CreateFridge)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", c.ListProducts)
		r.Post("/", c.CreateProduct)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", c.ListInventory)
		r.Post("/", c.AddInventory)
		r.Get("/consolidated", c.ConsolidatedInventory)
		r.Put("/{id}", c.UpdateInventory)
		r.Delete("/{id}", c.DeleteInventory)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", c.ListRecipes)
		r.Post("/", c.CreateRecipe)
	})

	r.Route("/recipe_ingredients", func(r chi.Router) {
		r.Get("/", c.ListRecipeIngredients)
		r.Post("/", c.AddRecipeIngredient)
	})

	r.Route("/equipment", func(r chi.Router) {
		r.Get("/", c.ListEquipment)
		r.Post("/", c.AddEquipment)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", c.ListOrders)
		r.Post("/", c.CreateOrder)
		r.Delete("/{id}", c.DeleteOrder)
	})

	r.Post("/recommend", rh.Recommend)
	r.Post("/text_request", rh.TextRequest)

	if s.knowledge != nil {
		r.Route("/knowledge_rules", func(r chi.Router) {
			r.Get("/", rh.ListRules)
			r.Post("/", rh.IngestRules)
		})
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and the rate limiter janitor. It blocks
// until the server stops; a graceful shutdown is not an error.
func (s *Server) Start(ctx context.Context) error {
	if s.limiter != nil {
		go s.limiter.Run(ctx, s.config.RateLimit.CleanupInterval)
	}

	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Server returns the underlying HTTP server instance
func (s *Server) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
