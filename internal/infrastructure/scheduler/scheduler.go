package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"flightdeals-service/internal/usecase"
	"flightdeals-service/pkg/logger"
)

// Scheduler triggers the daily deal pipeline run.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	orchestrator *usecase.ReportOrchestrator
	at           string
	logger       logger.Logger
}

// New creates a new Scheduler. at is a local HH:MM time of day.
func New(at string, orchestrator *usecase.ReportOrchestrator, logger logger.Logger) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	return &Scheduler{
		scheduler:    s,
		orchestrator: orchestrator,
		at:           at,
		logger:       logger,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(s.at).Do(func() {
		s.logger.Info("Scheduled deal pipeline run starting", "at", s.at)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := s.orchestrator.RunOnce(ctx); err != nil {
			s.logger.Error("Scheduled deal pipeline run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
