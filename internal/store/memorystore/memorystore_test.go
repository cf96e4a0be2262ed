package memorystore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/homesite/internal/store"
)

func TestSaveGetDelete(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	_, found, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)

	err = s.Save(ctx, "sid", store.Data{"views": "1"}, time.Hour)
	require.NoError(t, err)

	data, found, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "1", data["views"])

	require.NoError(t, s.Delete(ctx, "sid"))

	_, found, err = s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExpiredRecordIsGone(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }

	require.NoError(t, s.Save(ctx, "sid", store.Data{"k": "v"}, time.Minute))

	s.now = func() time.Time { return base.Add(2 * time.Minute) }

	_, found, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetReturnsACopy(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid", store.Data{"k": "v"}, time.Hour))

	data, _, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	data["k"] = "mutated"

	again, _, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "v", again["k"])
}

func TestDeleteAbsentIsNoError(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "missing"))
}
