package postgresstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/homesite/internal/store"
)

const migrationsDir = `../../../cmd/homesite/migrations`

// newTestStore connects to the database named by TEST_DATABASE_DSN.
// The suite is skipped when no test database is configured.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	s, err := New(context.Background(), dsn, 10*time.Second, migrationsDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestSaveGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, found, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "sid", store.Data{"views": "7"}, time.Hour))

	data, found, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "7", data["views"])

	require.NoError(t, s.Delete(ctx, "sid"))

	_, found, err = s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExpiredRecordIsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "expiring", store.Data{"k": "v"}, -time.Minute))

	_, found, err := s.Get(ctx, "expiring")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, s.Ping(context.Background()))
}
