package repository

import (
	"context"

	"flightdeals-service/internal/domain/entity"
)

// ObservationRepository defines the interface for the raw price observation store.
// The external scraper deposits batches; the pipeline consumes the latest one.
type ObservationRepository interface {
	SaveBatch(ctx context.Context, batch *entity.ObservationBatch) error
	LatestBatch(ctx context.Context) (*entity.ObservationBatch, error)
}
