package sharecron

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/homesite/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("debug"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeSharer struct {
	calls int
	err   error
}

func (f *fakeSharer) Share(_ context.Context) error {
	f.calls++
	return f.err
}

func TestNonProductionRegistersNothing(t *testing.T) {
	trigger, err := New(&fakeSharer{}, false)
	require.NoError(t, err)

	assert.Empty(t, trigger.Entries())
}

func TestProductionRegistersExactlyOneEntry(t *testing.T) {
	trigger, err := New(&fakeSharer{}, true)
	require.NoError(t, err)

	assert.Len(t, trigger.Entries(), 1)
}

func TestScheduleFiresDailyAt0135(t *testing.T) {
	trigger, err := New(&fakeSharer{}, true)
	require.NoError(t, err)

	entries := trigger.Entries()
	require.Len(t, entries, 1)

	from := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	next := entries[0].Schedule.Next(from)
	assert.Equal(t, time.Date(2024, 6, 2, 1, 35, 0, 0, time.Local), next)

	afterNext := entries[0].Schedule.Next(next)
	assert.Equal(t, time.Date(2024, 6, 3, 1, 35, 0, 0, time.Local), afterNext)
}

func TestJobInvokesShareClient(t *testing.T) {
	client := &fakeSharer{}
	trigger, err := New(client, true)
	require.NoError(t, err)

	entries := trigger.Entries()
	require.Len(t, entries, 1)

	entries[0].Job.Run()
	assert.Equal(t, 1, client.calls)
}

func TestShareFailureIsSwallowed(t *testing.T) {
	client := &fakeSharer{err: errors.New("rate limited")}
	trigger, err := New(client, true)
	require.NoError(t, err)

	entries := trigger.Entries()
	require.Len(t, entries, 1)

	assert.NotPanics(t, func() { entries[0].Job.Run() })
	assert.Equal(t, 1, client.calls)
}
