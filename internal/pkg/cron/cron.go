// Package cron runs small periodic maintenance jobs, like purging expired
// login sessions.
package cron

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a named task executed on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

type jobState struct {
	Job
	nextRunAt time.Time
}

// Scheduler drives registered jobs in background goroutines.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []*jobState
	logger *zap.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, &jobState{
		Job:       job,
		nextRunAt: time.Now().Add(job.Interval),
	})
}

// Start launches every registered job. Stop cancels them all.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = cancel
	for _, js := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, js)
	}
}

// Stop cancels all jobs and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, js *jobState) {
	defer s.wg.Done()
	for {
		wait := time.Until(js.nextRunAt)
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			if err := js.Fn(ctx); err != nil {
				s.logger.Warn("cron job failed",
					zap.String("job", js.Name),
					zap.Error(err),
				)
			}
			js.nextRunAt = time.Now().Add(js.Interval)
		}
	}
}
