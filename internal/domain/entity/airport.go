package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents a home origin airport and where its timetable lives.
type Airport struct {
	ID            uint
	Code          string
	Name          string
	TimetableFile string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt
}
