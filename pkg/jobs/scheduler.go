package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type enqueuer interface {
	Enqueue(Job) error
}

// Scheduler enqueues typed jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	queue  enqueuer
	logger *zap.Logger
}

// NewScheduler builds a scheduler feeding queue. Overlapping runs of the same
// entry are skipped.
func NewScheduler(queue enqueuer, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		queue:  queue,
		logger: logger,
	}
}

// Every registers jobType to be enqueued on spec, e.g. "@hourly" or "*/15 * * * *".
func (s *Scheduler) Every(spec, jobType string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.fire(jobType) }); err != nil {
		return fmt.Errorf("schedule %s at %q: %w", jobType, spec, err)
	}
	s.logger.Info("job scheduled", zap.String("type", jobType), zap.String("spec", spec))
	return nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop. The returned context is done once running entries return.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) fire(jobType string) {
	job := Job{ID: uuid.NewString(), Type: jobType}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("scheduled job not enqueued", zap.String("type", jobType), zap.Error(err))
	}
}
