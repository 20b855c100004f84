//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	redisrepo "github.com/smartkitchen/kitchen/internal/infrastructure/persistence/redis"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"github.com/smartkitchen/kitchen/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisCacheRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	tr := testutils.SetupTestRedis(t)
	cache := redisrepo.NewCacheRepository(tr.Client, zap.NewNop())
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		_, err := cache.Get(ctx, "absent")
		assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "recipes", []byte(`[1]`), time.Minute))

		got, err := cache.Get(ctx, "recipes")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[1]`), got)

		exists, err := cache.Exists(ctx, "recipes")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, cache.Delete(ctx, "recipes"))
		exists, err = cache.Exists(ctx, "recipes")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("keys are prefixed", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

		raw, err := tr.Client.Get(ctx, redisrepo.KeyPrefix+"k").Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), raw)
	})

	t.Run("expires", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "short", []byte("v"), 50*time.Millisecond))
		time.Sleep(200 * time.Millisecond)

		_, err := cache.Get(ctx, "short")
		assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, cache.Ping(ctx))
	})
}
