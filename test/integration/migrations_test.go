//go:build integration

package integration

import (
	"testing"

	"github.com/smartkitchen/kitchen/internal/infrastructure/persistence/migrations"
	"github.com/smartkitchen/kitchen/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrator_UpDownForce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := testutils.SetupTestDatabase(t)

	m, err := migrations.NewFromDSN(db.DSN, zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	// Up
	require.NoError(t, m.Up())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	_, err = db.CountRecords("fridges")
	assert.NoError(t, err)

	// Down drops the schema again
	require.NoError(t, m.Down())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	_, err = db.CountRecords("fridges")
	assert.Error(t, err)

	// Force only records the version
	require.NoError(t, m.Force(1))
	version, dirty, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	_, err = db.CountRecords("fridges")
	assert.Error(t, err)
}
