package repository

import (
	"time"

	"flightdeals-service/internal/domain/entity"
)

// TimetableRepository answers scheduled-time queries against the static
// published schedules of the home airports.
type TimetableRepository interface {
	// Lookup returns the scheduled time for the route on the given date, or
	// nil when no published entry covers it (charter or irregular service).
	// Direction "departures" resolves the departure time of the home->away
	// leg; "arrivals" resolves the landing time of the away->home leg.
	Lookup(originAirport, direction, awayAirport string, date time.Time) *entity.ClockTime
}
