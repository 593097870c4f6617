// Package remind runs the background reminder loop: every tick it scans the
// store for events whose reminder window has opened and fires a notification
// for each, once.
package remind

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pvminh/lichviet/internal/store"
)

// DefaultInterval is the poll cadence. The due-reminder query matches a
// one-minute window, so polling faster than that only tightens latency.
const DefaultInterval = 60 * time.Second

// Notifier receives due-reminder notifications.
type Notifier interface {
	Notify(e store.Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(e store.Event)

func (f NotifierFunc) Notify(e store.Event) { f(e) }

// Poller periodically scans for due reminders.
type Poller struct {
	st       store.Store
	notifier Notifier
	interval time.Duration
	now      func() time.Time

	fired map[int64]bool // events already notified this process
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides the poll cadence.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithNow sets the clock source, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// New creates a reminder poller.
func New(st store.Store, n Notifier, opts ...Option) *Poller {
	p := &Poller{
		st:       st,
		notifier: n,
		interval: DefaultInterval,
		now:      time.Now,
		fired:    map[int64]bool{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run loops until the context is cancelled. A failed scan is logged and the
// loop continues: a missed tick is recoverable on the next one.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.Tick(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "remind: scan failed: %v\n", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick performs one due-reminder scan and fires notifications. Exposed so
// callers and tests can drive the loop manually.
func (p *Poller) Tick(ctx context.Context) error {
	due, err := p.st.DueReminders(ctx, p.now())
	if err != nil {
		return fmt.Errorf("querying due reminders: %w", err)
	}
	for _, e := range due {
		if p.fired[e.ID] {
			continue
		}
		p.fired[e.ID] = true
		p.notifier.Notify(*e)
	}
	return nil
}
