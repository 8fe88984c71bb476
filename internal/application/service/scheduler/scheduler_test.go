package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSchedulerFiresOnInterval(t *testing.T) {
	var ticks atomic.Int32
	s := New(quietLogger())
	s.Register("counter", 10*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return ticks.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerSkipsOverlappingTicks(t *testing.T) {
	var running atomic.Int32
	var overlapped atomic.Bool

	s := New(quietLogger())
	s.Register("slow", 5*time.Millisecond, func(ctx context.Context) {
		if running.Add(1) > 1 {
			overlapped.Store(true)
		}
		defer running.Add(-1)
		select {
		case <-time.After(30 * time.Millisecond):
		case <-ctx.Done():
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	assert.False(t, overlapped.Load(), "two runs of the same task overlapped")
}

func TestSchedulerDropsNonPositiveInterval(t *testing.T) {
	s := New(quietLogger())
	s.Register("bad", 0, func(context.Context) {
		t.Fatal("task with zero interval must not run")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	s.Run(ctx)
}

func TestSchedulerRunsTasksIndependently(t *testing.T) {
	var fast, slow atomic.Int32
	s := New(quietLogger())
	s.Register("fast", 5*time.Millisecond, func(context.Context) { fast.Add(1) })
	s.Register("slow", 40*time.Millisecond, func(context.Context) { slow.Add(1) })

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	assert.Greater(t, fast.Load(), slow.Load())
	assert.GreaterOrEqual(t, slow.Load(), int32(1))
}
