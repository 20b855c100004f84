// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// kitchenTables lists every table of the schema, children first
var kitchenTables = []string{
	"orders",
	"knowledge_rules",
	"recipe_ingredients",
	"recipes",
	"equipment",
	"inventory",
	"products",
	"fridges",
}

// TestDatabase provides a test database instance with cleanup
type TestDatabase struct {
	Container testcontainers.Container
	DB        *sql.DB
	GormDB    *gorm.DB
	PgxPool   *pgxpool.Pool
	DSN       string
	t         *testing.T
}

// DatabaseConfig holds test database configuration
type DatabaseConfig struct {
	Image    string
	Database string
	Username string
	Password string
	Port     nat.Port
}

// DefaultDatabaseConfig returns the default test database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Image:    "postgres:16-alpine",
		Database: "kitchen_test",
		Username: "test_user",
		Password: "test_password",
		Port:     "5432/tcp",
	}
}

// SetupTestDatabase creates a new test database using testcontainers
func SetupTestDatabase(t *testing.T) *TestDatabase {
	return SetupTestDatabaseWithConfig(t, DefaultDatabaseConfig())
}

// SetupTestDatabaseWithConfig creates a test database with custom configuration
func SetupTestDatabaseWithConfig(t *testing.T, cfg DatabaseConfig) *TestDatabase {
	t.Helper()
	ctx := context.Background()

	dsnFor := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Username, cfg.Password, host, port.Port(), cfg.Database)
	}

	// Create postgres container
	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        cfg.Image,
				ExposedPorts: []string{string(cfg.Port)},
				Env: map[string]string{
					"POSTGRES_DB":       cfg.Database,
					"POSTGRES_USER":     cfg.Username,
					"POSTGRES_PASSWORD": cfg.Password,
				},
				WaitingFor: wait.ForAll(
					wait.ForLog("database system is ready to accept connections").
						WithOccurrence(2).
						WithStartupTimeout(60*time.Second),
					wait.ForSQL(cfg.Port, "pgx", dsnFor),
				),
				Tmpfs: map[string]string{
					"/var/lib/postgresql/data": "rw,noexec,nosuid,size=512m",
				},
			},
			Started: true,
		})
	require.NoError(t, err, "Failed to start postgres container")

	testDB := &TestDatabase{Container: container, t: t}
	t.Cleanup(testDB.Cleanup)

	// Get connection details
	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, cfg.Port)
	require.NoError(t, err)

	testDB.DSN = dsnFor(host, port)

	// Standard connection through the pgx stdlib driver
	testDB.DB, err = sql.Open("pgx", testDB.DSN)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, testDB.DB.PingContext(ctx), "Failed to ping test database")

	// Create GORM connection
	testDB.GormDB, err = gorm.Open(postgres.Open(testDB.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Suppress logs in tests
	})
	require.NoError(t, err, "Failed to create GORM connection")

	// Create pgx connection pool
	pgxConfig, err := pgxpool.ParseConfig(testDB.DSN)
	require.NoError(t, err, "Failed to parse pgx config")

	pgxConfig.MaxConns = 10 // Limit connections for tests
	pgxConfig.MinConns = 1
	pgxConfig.MaxConnLifetime = time.Hour
	pgxConfig.MaxConnIdleTime = 30 * time.Minute

	testDB.PgxPool, err = pgxpool.NewWithConfig(ctx, pgxConfig)
	require.NoError(t, err, "Failed to create pgx pool")

	return testDB
}

// RunMigrations applies the embedded schema on a dedicated connection
func (td *TestDatabase) RunMigrations() error {
	m, err := migrations.New(stdlib.OpenDBFromPool(td.PgxPool), zap.NewNop())
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	return m.Up()
}

// TruncateAllTables removes all data from tables while preserving structure
func (td *TestDatabase) TruncateAllTables() error {
	ctx := context.Background()
	for _, table := range kitchenTables {
		if _, err := td.PgxPool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

// CountRecords counts records in a table
func (td *TestDatabase) CountRecords(table string) (int, error) {
	var count int
	err := td.PgxPool.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	return count, err
}

// Cleanup closes all connections and stops the container
func (td *TestDatabase) Cleanup() {
	if td.PgxPool != nil {
		td.PgxPool.Close()
	}

	if td.GormDB != nil {
		if sqlDB, err := td.GormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if td.DB != nil {
		_ = td.DB.Close()
	}

	if td.Container != nil {
		if err := td.Container.Terminate(context.Background()); err != nil {
			td.t.Logf("Failed to terminate postgres container: %v", err)
		}
	}
}
