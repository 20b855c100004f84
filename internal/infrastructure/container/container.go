// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartkitchen/kitchen/internal/application/catalog"
	"github.com/smartkitchen/kitchen/internal/application/knowledge"
	"github.com/smartkitchen/kitchen/internal/application/recommendation"
	"github.com/smartkitchen/kitchen/internal/infrastructure/config"
	"github.com/smartkitchen/kitchen/internal/infrastructure/http/apiserver"
	"github.com/smartkitchen/kitchen/internal/infrastructure/http/handlers"
	"github.com/smartkitchen/kitchen/internal/infrastructure/monitoring"
	gormrepo "github.com/smartkitchen/kitchen/internal/infrastructure/persistence/gorm"
	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/memory"
	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/migrations"
	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/postgres"
	redisrepo "github.com/smartkitchen/kitchen/internal/infrastructure/persistence/redis"
	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/sqlite"
	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"github.com/smartkitchen/kitchen/pkg/healthcheck"
	"github.com/smartkitchen/kitchen/pkg/logger"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfigPath is the optional config file handed to config.Load
type ConfigPath string

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	MonitoringModule,

	// Repository modules
	RepositoryModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging and the level handle the config watcher
// adjusts at runtime
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
		return logger.NewWithLevel(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the gorm handle and its pool
var DatabaseModule = fx.Provide(
	NewDatabase,
	func(db *gorm.DB) (*sql.DB, error) {
		return db.DB()
	},
)

// NewDatabase opens the configured database, migrates it and optionally
// seeds the demo kitchen
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := cfg.Database.LogLevel
	if cfg.App.Debug {
		logLevel = "info"
	}

	var db *gorm.DB
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if cfg.Database.AutoMigrate {
			if err := migrate(cfg, log); err != nil {
				return nil, err
			}
		}

		cm, err := postgres.NewConnectionManager(context.Background(), cfg, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return cm.Close() }})
		db = cm.GetDB()

	default:
		gormLogger := gormrepo.NewLogger(log, logLevel, cfg.Database.SlowQueryThreshold)
		var err error
		db, err = sqlite.SetupDatabase(cfg.Database.Path, gormLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}})

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == "" || cfg.Database.Path == sqlite.MemoryPath),
		)
	}

	if cfg.Database.Seed {
		if err := gormrepo.SeedDemoKitchen(db); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
		log.Info("Demo kitchen seeded")
	}

	return db, nil
}

func migrate(cfg *config.Config, log *zap.Logger) error {
	m, err := migrations.NewFromDSN(cfg.GetDSN(), log)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}

// CacheModule provides the recipe listing cache: redis when enabled,
// otherwise in process memory. Lookups are counted on the meter provider.
var CacheModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, mp *sdkmetric.MeterProvider) (outbound.CacheRepository, healthcheck.Pinger, error) {
		meter := mp.Meter("smartkitchen/cache")

		if cfg.Redis.Enabled {
			client, err := redisrepo.NewClient(context.Background(), cfg.Redis)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
			}
			cache := redisrepo.NewCacheRepository(client, log)
			lc.Append(fx.Hook{OnStop: func(context.Context) error { return cache.Close() }})

			instrumented, err := monitoring.InstrumentCache(cache, meter, "redis")
			if err != nil {
				return nil, nil, err
			}
			log.Info("Using redis cache", zap.String("addr", cfg.Redis.Addr))
			return instrumented, cache, nil
		}

		cache := memory.NewCacheRepository(time.Minute)
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return cache.Close() }})

		instrumented, err := monitoring.InstrumentCache(cache, meter, "memory")
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using in-memory cache")
		return instrumented, cache, nil
	},
)

// MonitoringModule provides metrics, tracing and health checks
var MonitoringModule = fx.Provide(
	func(log *zap.Logger, sqlDB *sql.DB) *monitoring.MetricsCollector {
		metrics := monitoring.NewMetricsCollector(log)
		metrics.RegisterDB(sqlDB, "primary")
		return metrics
	},
	func(m *monitoring.MetricsCollector) outbound.RecommendationMetrics { return m },
	func(lc fx.Lifecycle, m *monitoring.MetricsCollector) (*sdkmetric.MeterProvider, error) {
		mp, err := m.NewMeterProvider()
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: mp.Shutdown})
		return mp, nil
	},
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			Exporter:       cfg.Monitoring.TraceExporter,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			JaegerEndpoint: cfg.Monitoring.JaegerEndpoint,
			Insecure:       cfg.Monitoring.OTLPInsecure,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: tp.Shutdown})
		return tp, nil
	},
	func(cfg *config.Config, log *zap.Logger, sqlDB *sql.DB, cache healthcheck.Pinger) *healthcheck.HealthCheck {
		health := healthcheck.New(cfg.App.Version, log)
		health.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
		health.Register("cache", healthcheck.NewCacheChecker(cache))
		return health
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	// Catalog repository
	fx.Annotate(
		gormrepo.NewCatalogRepository,
		fx.As(new(outbound.CatalogRepository)),
		fx.As(new(outbound.CatalogStore)),
	),

	// Knowledge rule repository
	fx.Annotate(
		gormrepo.NewKnowledgeRuleRepository,
		fx.As(new(outbound.KnowledgeRuleRepository)),
	),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// Catalog service
	fx.Annotate(
		func(repo outbound.CatalogRepository, cache outbound.CacheRepository, cfg *config.Config, log *zap.Logger) *catalog.Service {
			return catalog.NewService(repo, cache, cfg.Redis.RecipeCacheTTL, log)
		},
		fx.As(new(inbound.CatalogService)),
	),

	// Recommendation service
	fx.Annotate(
		func(store outbound.CatalogStore, metrics outbound.RecommendationMetrics, log *zap.Logger) *recommendation.Service {
			return recommendation.NewService(store, recommendation.RandomChooser{}, metrics, log)
		},
		fx.As(new(inbound.RecommendationService)),
	),

	// Knowledge service
	fx.Annotate(
		knowledge.NewService,
		fx.As(new(handlers.KnowledgeService)),
	),
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	func(
		cfg *config.Config,
		log *zap.Logger,
		catalogService inbound.CatalogService,
		recommender inbound.RecommendationService,
		knowledgeService handlers.KnowledgeService,
		health *healthcheck.HealthCheck,
		metrics *monitoring.MetricsCollector,
	) *apiserver.Server {
		if !cfg.Monitoring.EnableMetrics {
			metrics = nil
		}
		return apiserver.NewServer(cfg, log, catalogService, recommender, knowledgeService, health, metrics)
	},
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts and stops the API server with the app.
// The tracing provider is requested so it is installed before the first
// request and flushed on stop.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	path ConfigPath,
	log *zap.Logger,
	level zap.AtomicLevel,
	_ *monitoring.TracingProvider,
	server *apiserver.Server,
) error {
	ctx, cancel := context.WithCancel(context.Background())

	if path != "" {
		watcher, err := config.NewWatcher(string(path), func(c *config.Config) {
			level.SetLevel(logger.ParseLevel(c.App.LogLevel))
			log.Info("Log level updated", zap.String("level", level.String()))
		}, log)
		if err != nil {
			cancel()
			return err
		}
		go watcher.Run(ctx)
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("Starting SmartKitchen",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
			)

			go func() {
				if err := server.Start(ctx); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			defer cancel()

			shutdownCtx, done := context.WithTimeout(stopCtx, cfg.Server.ShutdownTimeout)
			defer done()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shutdown HTTP server: %w", err)
			}

			log.Info("SmartKitchen stopped")
			_ = log.Sync()
			return nil
		},
	})
	return nil
}
