package repository

import (
	"context"
	"time"

	"flightdeals-service/internal/domain/entity"
)

// ReportRepository defines the interface for rendered report storage.
type ReportRepository interface {
	Save(ctx context.Context, report *entity.Report) error
	Latest(ctx context.Context) (*entity.Report, error)
}

// ReportCache caches the most recent report for cheap serving.
type ReportCache interface {
	SetLatest(ctx context.Context, report *entity.Report, ttl time.Duration) error
	GetLatest(ctx context.Context) (*entity.Report, error)
}

// ReportMailer delivers a rendered report to the configured recipient.
type ReportMailer interface {
	SendReport(ctx context.Context, subject, htmlBody string) error
}
