// Package sharecron registers the once-daily job that posts the status
// update through the share client. The job only exists in production;
// non-production processes never start a timer.
package sharecron

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/homesite/internal/logger"
)

// scheduleSpec fires at 01:35 server-local time, every day.
const scheduleSpec = "35 1 * * *"

type sharer interface {
	Share(ctx context.Context) error
}

// Trigger owns the cron runner holding the single share job.
type Trigger struct {
	cron *cron.Cron
}

// New builds the trigger. In production exactly one entry is registered;
// otherwise the runner stays empty. The job is fire-and-forget: a failed
// share is logged and never retried.
func New(client sharer, production bool) (*Trigger, error) {
	trigger := &Trigger{cron: cron.New()}

	if !production {
		return trigger, nil
	}

	_, err := trigger.cron.AddFunc(scheduleSpec, func() {
		if err := client.Share(context.Background()); err != nil {
			logger.Log.Debugln("error passed from the share client:", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf(
			"in internal/sharecron/sharecron.go/New(): error while `trigger.cron.AddFunc()` calling: %w",
			err,
		)
	}

	return trigger, nil
}

// Start launches the cron runner in its own goroutine.
func (t *Trigger) Start() {
	t.cron.Start()
}

// Stop halts the runner; the returned context is done once any running
// job has finished.
func (t *Trigger) Stop() context.Context {
	return t.cron.Stop()
}

// Entries exposes the registered cron entries.
func (t *Trigger) Entries() []cron.Entry {
	return t.cron.Entries()
}
