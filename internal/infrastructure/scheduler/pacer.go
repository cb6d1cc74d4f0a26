package scheduler

import (
	"context"
	"time"

	"NewsIngestor/internal/ports"
)

// Pacer spaces out upstream requests with a fixed politeness delay.
type Pacer struct {
	delay time.Duration
	after func(time.Duration) <-chan time.Time
}

var _ ports.Pacer = (*Pacer)(nil)

// NewPacer builds a pacer; a non-positive delay disables waiting.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay, after: time.After}
}

// Wait blocks for the configured delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	select {
	case <-p.after(p.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
