package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const redisPort nat.Port = "6379/tcp"

// TestRedis is a throwaway redis server
type TestRedis struct {
	Container testcontainers.Container
	Client    *redis.Client
	Addr      string
}

// SetupTestRedis starts redis in a container and returns a connected client
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{string(redisPort)},
				WaitingFor: wait.ForListeningPort(redisPort).
					WithStartupTimeout(30 * time.Second),
			},
			Started: true,
		})
	require.NoError(t, err, "Failed to start redis container")

	tr := &TestRedis{Container: container}
	t.Cleanup(func() {
		if tr.Client != nil {
			_ = tr.Client.Close()
		}
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, redisPort, "")
	require.NoError(t, err)
	tr.Addr = endpoint

	tr.Client = redis.NewClient(&redis.Options{Addr: endpoint})
	require.NoError(t, tr.Client.Ping(ctx).Err(), "Failed to ping redis")

	return tr
}
