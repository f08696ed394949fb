package usecase

import (
	"context"
	"fmt"
	"time"

	"flightdeals-service/internal/domain/entity"
	"flightdeals-service/internal/domain/repository"
	"flightdeals-service/pkg/logger"
	"flightdeals-service/pkg/metrics"
)

// ReportOrchestrator drives one full pipeline run: load the latest scraped
// batch, match and filter trips, render the report, then store, cache and
// email it. Every run is recorded in the run bookkeeping table.
type ReportOrchestrator struct {
	processor       *TripProcessor
	builder         *ReportBuilder
	renderer        ReportRenderer
	observationRepo repository.ObservationRepository
	reportRepo      repository.ReportRepository
	reportCache     repository.ReportCache
	runRepo         repository.RunRepository
	mailer          repository.ReportMailer
	metrics         *metrics.Metrics
	logger          logger.Logger
	cacheTTL        time.Duration
}

// NewReportOrchestrator creates a new report orchestrator. mailer may be nil
// when email delivery is not configured.
func NewReportOrchestrator(
	processor *TripProcessor,
	builder *ReportBuilder,
	renderer ReportRenderer,
	observationRepo repository.ObservationRepository,
	reportRepo repository.ReportRepository,
	reportCache repository.ReportCache,
	runRepo repository.RunRepository,
	mailer repository.ReportMailer,
	metrics *metrics.Metrics,
	logger logger.Logger,
	cacheTTL time.Duration,
) *ReportOrchestrator {
	return &ReportOrchestrator{
		processor:       processor,
		builder:         builder,
		renderer:        renderer,
		observationRepo: observationRepo,
		reportRepo:      reportRepo,
		reportCache:     reportCache,
		runRepo:         runRepo,
		mailer:          mailer,
		metrics:         metrics,
		logger:          logger,
		cacheTTL:        cacheTTL,
	}
}

// RunOnce executes a single pipeline run end to end.
func (o *ReportOrchestrator) RunOnce(ctx context.Context) error {
	started := time.Now()
	run := &entity.ProcessingRun{
		Mode:      o.processor.Mode(),
		Status:    entity.RunStatusRunning,
		StartedAt: started,
	}
	if err := o.runRepo.Create(ctx, run); err != nil {
		o.logger.Error("Failed to record run start", "error", err)
	}

	o.logger.Info("Starting deal pipeline run", "mode", run.Mode)

	batch, err := o.observationRepo.LatestBatch(ctx)
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("load_batch").Inc()
		return o.failRun(ctx, run, fmt.Errorf("load latest batch: %w", err))
	}

	trips, err := o.processor.ProcessRaw(batch.OriginToAnywhere, batch.AnywhereToOrigin)
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("process").Inc()
		return o.failRun(ctx, run, fmt.Errorf("process observations: %w", err))
	}
	tripCount := countTrips(trips)

	generatedAt := time.Now()
	view := o.builder.Build(run.Mode, trips, generatedAt)
	html, err := o.renderer.Render(view)
	if err != nil {
		o.metrics.ErrorsCount.WithLabelValues("render").Inc()
		return o.failRun(ctx, run, fmt.Errorf("render report: %w", err))
	}

	report := &entity.Report{
		Mode:        run.Mode,
		HTML:        html,
		TripCount:   tripCount,
		GeneratedAt: generatedAt,
	}
	if err := o.reportRepo.Save(ctx, report); err != nil {
		o.metrics.ErrorsCount.WithLabelValues("save_report").Inc()
		return o.failRun(ctx, run, fmt.Errorf("save report: %w", err))
	}

	if err := o.reportCache.SetLatest(ctx, report, o.cacheTTL); err != nil {
		// Cache is best effort; the stored report stays authoritative.
		o.metrics.ErrorsCount.WithLabelValues("cache_report").Inc()
		o.logger.Warn("Failed to cache report", "error", err)
	}

	if o.mailer != nil {
		subject := fmt.Sprintf("Flight deals (%s) %s", run.Mode, generatedAt.Format("2006-01-02"))
		if err := o.mailer.SendReport(ctx, subject, html); err != nil {
			o.metrics.ErrorsCount.WithLabelValues("send_report").Inc()
			o.logger.Error("Failed to email report", "error", err)
		} else {
			o.metrics.ReportsSent.Inc()
		}
	}

	finished := time.Now()
	run.Status = entity.RunStatusCompleted
	run.TripCount = tripCount
	run.FinishedAt = &finished
	if err := o.runRepo.Complete(ctx, run); err != nil {
		o.logger.Error("Failed to record run completion", "error", err)
	}

	o.metrics.RunsProcessed.Inc()
	o.metrics.TripsMatched.Add(float64(tripCount))
	o.metrics.ProcessingTime.Observe(time.Since(started).Seconds())

	o.logger.Info("Deal pipeline run finished",
		"mode", run.Mode,
		"trips", tripCount,
		"elapsed", time.Since(started).String(),
	)
	return nil
}

func (o *ReportOrchestrator) failRun(ctx context.Context, run *entity.ProcessingRun, err error) error {
	finished := time.Now()
	run.Status = entity.RunStatusFailed
	run.ErrorDetail = err.Error()
	run.FinishedAt = &finished
	if updateErr := o.runRepo.Complete(ctx, run); updateErr != nil {
		o.logger.Error("Failed to record run failure", "error", updateErr)
	}
	o.logger.Error("Deal pipeline run failed", "mode", run.Mode, "error", err)
	return err
}
