// Package watch periodically validates the context memory so stale or
// incomplete state gets surfaced in the logs instead of being discovered at
// the next tool call.
package watch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/contextkeeper/contextkeeper/internal/schema"
	"github.com/contextkeeper/contextkeeper/internal/validate"
)

// Snapshotter supplies the memory snapshot to validate. The memory store
// implements this.
type Snapshotter interface {
	Context() schema.ContextMemory
}

// Watcher runs the completeness rules on a fixed interval.
type Watcher struct {
	snap     Snapshotter
	interval time.Duration
	cron     *cron.Cron
}

// New returns a Watcher checking snap every interval.
func New(snap Snapshotter, interval time.Duration) *Watcher {
	return &Watcher{snap: snap, interval: interval, cron: cron.New()}
}

// Start begins the periodic checks. The first check runs after one interval.
func (w *Watcher) Start() error {
	spec := fmt.Sprintf("@every %s", w.interval)
	if _, err := w.cron.AddFunc(spec, func() { w.Check() }); err != nil {
		return fmt.Errorf("schedule freshness check: %w", err)
	}
	w.cron.Start()
	slog.Info("freshness watcher started", "interval", w.interval)
	return nil
}

// Stop halts the schedule. Running checks finish; no new ones start.
func (w *Watcher) Stop() {
	w.cron.Stop()
}

// Check runs one validation pass, logging anything incomplete or stale, and
// returns the result.
func (w *Watcher) Check() schema.ValidationResult {
	res := validate.Completeness(w.snap.Context())
	for _, f := range res.MissingFields {
		slog.Warn("context incomplete", "missing", f)
	}
	for _, msg := range res.Warnings {
		slog.Warn("context freshness", "warning", msg)
	}
	return res
}
