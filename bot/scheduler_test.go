package bot

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func noReadyWait(ctx context.Context) error { return nil }

func TestScheduler(t *testing.T) {
	t.Run("fires repeatedly at the task interval", func(t *testing.T) {
		s := newScheduler(noReadyWait)
		var fired atomic.Int32

		s.Start(context.Background(), Task{
			Name:     "counter",
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) error {
				fired.Add(1)
				return nil
			},
		})

		assert.Eventually(t, func() bool { return fired.Load() >= 3 },
			time.Second, 5*time.Millisecond)
		s.Stop()
	})

	t.Run("a panicking firing does not kill the timer", func(t *testing.T) {
		s := newScheduler(noReadyWait)
		var fired atomic.Int32

		s.Start(context.Background(), Task{
			Name:     "panicky",
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) error {
				if fired.Add(1) == 1 {
					panic("first firing blows up")
				}
				return nil
			},
		})

		assert.Eventually(t, func() bool { return fired.Load() >= 2 },
			time.Second, 5*time.Millisecond)
		s.Stop()
	})

	t.Run("tasks run independently of each other", func(t *testing.T) {
		s := newScheduler(noReadyWait)
		var slow, fast atomic.Int32

		s.Start(context.Background(), Task{
			Name:     "slow",
			Interval: time.Hour,
			Run: func(ctx context.Context) error {
				slow.Add(1)
				return nil
			},
		})
		s.Start(context.Background(), Task{
			Name:     "fast",
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) error {
				fast.Add(1)
				return nil
			},
		})

		assert.Eventually(t, func() bool { return fast.Load() >= 2 },
			time.Second, 5*time.Millisecond)
		assert.Equal(t, int32(0), slow.Load())
		s.Stop()
	})

	t.Run("readiness gates the first firing only", func(t *testing.T) {
		ready := make(chan struct{})
		s := newScheduler(func(ctx context.Context) error {
			select {
			case <-ready:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		var fired atomic.Int32

		s.Start(context.Background(), Task{
			Name:          "gated",
			Interval:      5 * time.Millisecond,
			RequiresReady: true,
			Run: func(ctx context.Context) error {
				fired.Add(1)
				return nil
			},
		})

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(0), fired.Load())

		close(ready)
		assert.Eventually(t, func() bool { return fired.Load() >= 1 },
			time.Second, 5*time.Millisecond)
		s.Stop()
	})

	t.Run("context cancellation stops the timer", func(t *testing.T) {
		s := newScheduler(noReadyWait)
		ctx, cancel := context.WithCancel(context.Background())
		var fired atomic.Int32

		s.Start(ctx, Task{
			Name:     "cancellable",
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) error {
				fired.Add(1)
				return nil
			},
		})

		assert.Eventually(t, func() bool { return fired.Load() >= 1 },
			time.Second, 5*time.Millisecond)
		cancel()
		s.wg.Wait()

		count := fired.Load()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, count, fired.Load())
	})
}
