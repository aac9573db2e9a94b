package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	appLog "mktcal/internal/log"
)

// Reloader is anything that can re-read its backing files.
type Reloader interface {
	Reload() error
}

// New parses spec (standard 5-field cron or a descriptor such as
// "@every 5m" or "@hourly") and returns a stopped scheduler that calls
// r.Reload on that schedule. An empty spec returns nil, nil.
func New(spec string, loc *time.Location, r Reloader) (*cron.Cron, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		if err := r.Reload(); err != nil {
			appLog.Error("scheduled reload failed; keeping previous data", err)
			return
		}
		appLog.Debug("scheduled reload done")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	return c, nil
}

// Run starts the reload schedule and blocks until ctx is canceled. It waits
// for a running reload to finish before returning.
func Run(ctx context.Context, spec string, loc *time.Location, r Reloader) error {
	c, err := New(spec, loc, r)
	if err != nil {
		return err
	}
	if c == nil {
		appLog.Info("scheduled reload disabled")
		<-ctx.Done()
		return nil
	}

	appLog.Info("scheduled reload enabled", "schedule", spec)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
