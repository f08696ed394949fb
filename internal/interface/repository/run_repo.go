package repository

import (
	"context"
	"time"

	"flightdeals-service/internal/domain/entity"
	"flightdeals-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRunRepository implements the RunRepository interface
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GORM processing run repository
func NewGormRunRepository(db *gorm.DB) repository.RunRepository {
	return &GormRunRepository{
		db: db,
	}
}

// ProcessingRuns GORM model for database mapping
type ProcessingRuns struct {
	ID          uint       `gorm:"primaryKey"`
	Mode        string     `gorm:"column:mode"`
	Status      string     `gorm:"column:status"`
	TripCount   int        `gorm:"column:trip_count"`
	ErrorDetail string     `gorm:"column:error_detail"`
	StartedAt   time.Time  `gorm:"column:started_at"`
	FinishedAt  *time.Time `gorm:"column:finished_at"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (ProcessingRuns) TableName() string {
	return "m_processing_runs"
}

// Create inserts a new run row in RUNNING state
func (r *GormRunRepository) Create(ctx context.Context, run *entity.ProcessingRun) error {
	model := ProcessingRuns{
		Mode:      run.Mode,
		Status:    run.Status,
		StartedAt: run.StartedAt,
	}
	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	run.ID = model.ID
	run.CreatedAt = model.CreatedAt
	run.UpdatedAt = model.UpdatedAt
	return nil
}

// Complete records the final status, trip count and error detail of a run
func (r *GormRunRepository) Complete(ctx context.Context, run *entity.ProcessingRun) error {
	result := r.db.WithContext(ctx).Model(&ProcessingRuns{}).Where("id = ?", run.ID).Updates(map[string]interface{}{
		"status":       run.Status,
		"trip_count":   run.TripCount,
		"error_detail": run.ErrorDetail,
		"finished_at":  run.FinishedAt,
	})
	return result.Error
}
