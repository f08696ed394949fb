package entity

import "time"

// Processing modes
const (
	ModeWeekend  = "weekend"
	ModeDuration = "duration"
)

// Report is a rendered deals report ready for delivery.
type Report struct {
	ID          string    `bson:"_id,omitempty"`
	Mode        string    `bson:"mode"`
	HTML        string    `bson:"html"`
	TripCount   int       `bson:"tripCount"`
	GeneratedAt time.Time `bson:"generatedAt"`
}
