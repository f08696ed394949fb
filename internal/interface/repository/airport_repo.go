package repository

import (
	"context"
	"time"

	"flightdeals-service/internal/domain/entity"
	"flightdeals-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// OriginAirports GORM model for database mapping
type OriginAirports struct {
	ID            uint           `gorm:"primaryKey"`
	Code          string         `gorm:"column:code;unique"`
	Name          string         `gorm:"column:name"`
	TimetableFile string         `gorm:"column:timetable_file"`
	Active        bool           `gorm:"column:active"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (OriginAirports) TableName() string {
	return "m_origin_airports"
}

// GetActive returns all active home airports
func (r *GormAirportRepository) GetActive(ctx context.Context) ([]*entity.Airport, error) {
	var airports []OriginAirports
	result := r.db.WithContext(ctx).Where("active = ?", true).Order("code").Find(&airports)

	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.Airport, 0, len(airports))
	for _, airport := range airports {
		entities = append(entities, toAirportEntity(airport))
	}
	return entities, nil
}

// GetByCode finds an airport by IATA code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport OriginAirports
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirportEntity(airport), nil
}

// toAirportEntity converts the GORM model to a domain entity
func toAirportEntity(airport OriginAirports) *entity.Airport {
	return &entity.Airport{
		ID:            airport.ID,
		Code:          airport.Code,
		Name:          airport.Name,
		TimetableFile: airport.TimetableFile,
		Active:        airport.Active,
		CreatedAt:     airport.CreatedAt,
		UpdatedAt:     airport.UpdatedAt,
		DeletedAt:     airport.DeletedAt,
	}
}
