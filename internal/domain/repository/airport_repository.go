package repository

import (
	"context"

	"flightdeals-service/internal/domain/entity"
)

// AirportRepository defines the interface for home airport master data.
type AirportRepository interface {
	GetActive(ctx context.Context) ([]*entity.Airport, error)
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
}
