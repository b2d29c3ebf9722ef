package bot

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Scheduler drives the periodic tasks of every registered module. Each task
// gets its own timer at its own interval, with no cross-task ordering and no
// firing deduplication; idempotence across firings is the task's contract.
type Scheduler struct {
	waitReady func(ctx context.Context) error
	stop      chan struct{}
	wg        sync.WaitGroup
}

func newScheduler(waitReady func(ctx context.Context) error) *Scheduler {
	return &Scheduler{
		waitReady: waitReady,
		stop:      make(chan struct{}),
	}
}

// Start launches the task's timer goroutine
func (s *Scheduler) Start(ctx context.Context, task Task) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx, task)
	}()
}

// Stop terminates all task timers and waits for them to exit
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, task Task) {
	if task.RequiresReady {
		// Suspend until the transport is connected. This happens once per
		// process lifetime: later firings proceed immediately.
		if err := s.waitReady(ctx); err != nil {
			log.Errorf("Task %s aborted waiting for readiness: %v", task.Name, err)
			return
		}
	}

	log.Infof("Task %s started (interval %s)", task.Name, task.Interval)
	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infof("Task %s shutting down (context cancelled)", task.Name)
			return
		case <-s.stop:
			log.Infof("Task %s shutting down (stop requested)", task.Name)
			return
		case <-ticker.C:
			s.fire(ctx, task)
		}
	}
}

// fire runs one task firing. Failures in the firing's control flow are
// logged and the timer continues to the next interval regardless.
func (s *Scheduler) fire(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Task %s panicked: %v", task.Name, r)
		}
	}()
	if err := task.Run(ctx); err != nil {
		log.Errorf("Task %s failed: %v", task.Name, err)
	}
}
