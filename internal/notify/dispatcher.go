// Package notify delivers notifications in the background after a request has committed.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"planpact/internal/domain"
)

const (
	defaultConcurrency = 4
	defaultTimeout     = 30 * time.Second
)

// Dispatcher is an in-process domain.NotificationDispatcher. Each Dispatch call starts one
// background batch; recipients are delivered concurrently, at most concurrency at a time,
// and a failed delivery is logged without affecting the rest of the batch.
type Dispatcher struct {
	email       domain.EmailService
	logger      *slog.Logger
	concurrency int
	timeout     time.Duration
	wg          sync.WaitGroup
}

// NewDispatcher returns a Dispatcher delivering through email. Non-positive concurrency or
// timeout fall back to the defaults.
func NewDispatcher(email domain.EmailService, logger *slog.Logger, concurrency int, timeout time.Duration) *Dispatcher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		email:       email,
		logger:      logger,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// Dispatch returns immediately. The batch outlives ctx's cancellation (the request is usually
// over by the time mail goes out) but keeps its values.
func (d *Dispatcher) Dispatch(ctx context.Context, notes ...*domain.Notification) {
	if len(notes) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliver(ctx, notes)
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, notes []*domain.Notification) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for _, n := range notes {
		g.Go(func() error {
			if err := d.email.Deliver(ctx, n); err != nil {
				d.logger.Warn("notification delivery failed",
					"kind", n.Kind,
					"to", n.To,
					"pact_id", n.PactID,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Wait blocks until every batch started so far has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
