package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one periodic unit of work. Jobs receive the scheduler's run
// context and must return promptly once it is canceled.
type Job func(ctx context.Context)

type task struct {
	name     string
	interval time.Duration
	job      Job
	running  atomic.Bool
}

// Scheduler drives the engine's periodic work on independent cadences. A
// tick is skipped when the previous run of the same task has not finished,
// so a slow external feed never queues up overlapping runs.
type Scheduler struct {
	tasks  []*task
	logger *logrus.Entry
	wg     sync.WaitGroup
}

// New builds an empty scheduler.
func New(logger *logrus.Logger) *Scheduler {
	return &Scheduler{logger: logger.WithField("component", "scheduler")}
}

// Register adds a named periodic task. Tasks with a non-positive interval
// are dropped with a warning.
func (s *Scheduler) Register(name string, interval time.Duration, job Job) {
	if interval <= 0 {
		s.logger.WithField("task", name).Warn("non-positive interval, task not scheduled")
		return
	}
	s.tasks = append(s.tasks, &task{name: name, interval: interval, job: job})
}

// Run starts one goroutine per task and blocks until ctx is canceled and
// every in-flight tick has returned.
func (s *Scheduler) Run(ctx context.Context) {
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
		s.logger.WithFields(logrus.Fields{
			"task":     t.name,
			"interval": t.interval.String(),
		}).Info("task scheduled")
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t *task) {
	defer s.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !t.running.CompareAndSwap(false, true) {
				s.logger.WithField("task", t.name).Debug("previous run still active, tick skipped")
				continue
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				defer t.running.Store(false)
				t.job(ctx)
			}()
		}
	}
}
