// Package scheduler runs the trainer on a cron schedule inside the
// server process, so models stay fresh without an external job runner.
package scheduler

import (
	"context"
	"fmt"

	"github.com/mikey/gym-consistency/internal/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives periodic training runs
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a new scheduler
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// ScheduleTraining registers a training run under a cron expression.
// The train function is invoked with a background context; the trainer
// itself serializes concurrent runs.
func (s *Scheduler) ScheduleTraining(expr string, train func(context.Context) error) error {
	_, err := s.cron.AddFunc(expr, func() {
		s.logger.Info("Scheduled training run starting")
		if err := train(context.Background()); err != nil {
			metrics.RecordTrainingRun("error")
			s.logger.Error("Scheduled training run failed", zap.Error(err))
			return
		}
		metrics.RecordTrainingRun("success")
		s.logger.Info("Scheduled training run complete")
	})
	if err != nil {
		return fmt.Errorf("invalid training schedule %q: %w", expr, err)
	}
	return nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
