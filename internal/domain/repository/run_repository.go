package repository

import (
	"context"

	"flightdeals-service/internal/domain/entity"
)

// RunRepository defines the interface for processing-run bookkeeping.
type RunRepository interface {
	Create(ctx context.Context, run *entity.ProcessingRun) error
	Complete(ctx context.Context, run *entity.ProcessingRun) error
}
