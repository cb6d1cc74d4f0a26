package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerWaitsForDelay(t *testing.T) {
	t.Parallel()

	var requested time.Duration
	fired := make(chan time.Time, 1)
	fired <- time.Now()

	p := NewPacer(time.Second)
	p.after = func(d time.Duration) <-chan time.Time {
		requested = d
		return fired
	}

	require.NoError(t, p.Wait(context.Background()))
	assert.Equal(t, time.Second, requested)
}

func TestPacerStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPacer(time.Hour)
	err := p.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPacerZeroDelay(t *testing.T) {
	t.Parallel()

	p := NewPacer(0)
	p.after = func(time.Duration) <-chan time.Time {
		t.Fatal("zero delay must not start a timer")
		return nil
	}
	require.NoError(t, p.Wait(context.Background()))
}
