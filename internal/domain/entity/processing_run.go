package entity

import "time"

// Processing run statuses
const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// ProcessingRun records one execution of the deal pipeline.
type ProcessingRun struct {
	ID          uint
	Mode        string
	Status      string
	TripCount   int
	ErrorDetail string
	StartedAt   time.Time
	FinishedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
