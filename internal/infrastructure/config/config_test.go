package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "SmartKitchen", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "kitchen.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Minute, cfg.Redis.RecipeCacheTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("KITCHEN_SERVER_PORT", "9090")
	t.Setenv("KITCHEN_DATABASE_DRIVER", "postgres")
	t.Setenv("KITCHEN_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 7070
database:
  path: /tmp/kitchen-test.db
  seed: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/kitchen-test.db", cfg.Database.Path)
	assert.True(t, cfg.Database.Seed)
}

func TestLoad_SecretFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jwt")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))
	t.Setenv("KITCHEN_AUTH_JWT_SECRET_FILE", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
}

func TestLoad_MissingSecretFile(t *testing.T) {
	t.Setenv("KITCHEN_DATABASE_PASSWORD_FILE", filepath.Join(t.TempDir(), "absent"))

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:        AppConfig{Name: "SmartKitchen", Environment: "development"},
			Server:     ServerConfig{Port: 8080},
			Database:   DatabaseConfig{Driver: DriverSQLite},
			Monitoring: MonitoringConfig{SamplingRate: 0.5, TraceExporter: ExporterOTLP},
			RateLimit:  RateLimitConfig{Enable: true, RequestsPerMin: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "production without secret", mutate: func(c *Config) { c.App.Environment = "production" }, wantErr: true},
		{name: "production with secret", mutate: func(c *Config) {
			c.App.Environment = "production"
			c.Auth.JWTSecret = "x"
		}},
		{name: "sampling rate above one", mutate: func(c *Config) { c.Monitoring.SamplingRate = 2 }, wantErr: true},
		{name: "jaeger exporter", mutate: func(c *Config) { c.Monitoring.TraceExporter = ExporterJaeger }},
		{name: "unknown exporter", mutate: func(c *Config) { c.Monitoring.TraceExporter = "zipkin" }, wantErr: true},
		{name: "rate limit without budget", mutate: func(c *Config) { c.RateLimit.RequestsPerMin = 0 }, wantErr: true},
		{name: "postgres without database", mutate: func(c *Config) {
			c.Database.Driver = DriverPostgres
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReplicaDSNs(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Port: 5432, Username: "u", Password: "p", Database: "kitchen", SSLMode: "disable",
		Replicas: []string{"replica-1", "replica-2"},
	}}

	dsns := cfg.GetReplicaDSNs()
	require.Len(t, dsns, 2)
	assert.Contains(t, dsns[0], "host=replica-1")
	assert.Contains(t, dsns[1], "host=replica-2")
	assert.Equal(t, "pgx5://u:p@:5432/kitchen?sslmode=disable", cfg.GetMigrationURL())
}
