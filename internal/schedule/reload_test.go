package schedule

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	appLog "mktcal/internal/log"
)

type countingReloader struct{ n int }

func (c *countingReloader) Reload() error {
	c.n++
	return nil
}

func TestNewEmptySpecDisabled(t *testing.T) {
	c, err := New("   ", time.UTC, &countingReloader{})
	if err != nil || c != nil {
		t.Fatalf("c=%v err=%v", c, err)
	}
}

func TestNewRejectsBadSpec(t *testing.T) {
	if _, err := New("every tuesday", time.UTC, &countingReloader{}); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestNewSchedules(t *testing.T) {
	for _, spec := range []string{"*/5 * * * *", "@hourly", "@every 10m"} {
		c, err := New(spec, nil, &countingReloader{})
		if err != nil {
			t.Fatalf("%s: %v", spec, err)
		}
		if len(c.Entries()) != 1 {
			t.Fatalf("%s: entries = %d", spec, len(c.Entries()))
		}
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	appLog.SetOutput(io.Discard)
	t.Cleanup(func() { appLog.SetOutput(os.Stderr) })

	for _, spec := range []string{"", "@hourly"} {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- Run(ctx, spec, time.UTC, &countingReloader{}) }()
		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("%q: %v", spec, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%q: Run did not return after cancel", spec)
		}
	}
}
