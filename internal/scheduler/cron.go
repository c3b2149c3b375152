package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"followup-srv/pkg/log"
)

// Schedule registers Fire on spec. Overlapping ticks are skipped while a cycle
// is still running. The caller starts and stops the returned cron.
func (t *Trigger) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	logger := cronLogger{l: t.l}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(spec, func() {
		_, _ = t.Fire(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return c, nil
}

// cronLogger adapts log.Logger to cron.Logger.
type cronLogger struct {
	l log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugf(context.Background(), "scheduler.cron: %s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorf(context.Background(), "scheduler.cron: %s %v: %v", msg, keysAndValues, err)
}
