package entity

import "time"

// Timetable directions as they appear in the scraped schedule documents.
const (
	DirectionDepartures = "departures"
	DirectionArrivals   = "arrivals"
)

// RawTimetableEntry is one scheduled-service record as published per airport.
// Weekdays holds Polish abbreviations or 1-indexed numbers; dates and times are
// strings in the airport's published formats.
type RawTimetableEntry struct {
	StartTime   string        `bson:"start_time" json:"start_time"`
	LandingTime string        `bson:"landing_time" json:"landing_time"`
	Weekdays    []interface{} `bson:"weekdays" json:"weekdays"`
	StartDate   string        `bson:"start_date" json:"start_date"`
	EndDate     string        `bson:"end_date" json:"end_date"`
}

// RawTimetableDocument maps direction -> away airport IATA -> published entries.
type RawTimetableDocument map[string]map[string][]RawTimetableEntry

// TimetableEntry is a parsed scheduled-service season record for one route direction.
// Weekdays uses Monday=0 .. Sunday=6 numbering.
type TimetableEntry struct {
	DepartureTime ClockTime
	ArrivalTime   ClockTime
	Weekdays      []int
	SeasonStart   time.Time
	SeasonEnd     time.Time
}

// Covers reports whether the entry's season contains date and the entry
// operates on date's weekday.
func (e TimetableEntry) Covers(date time.Time) bool {
	if date.Before(e.SeasonStart) || date.After(e.SeasonEnd) {
		return false
	}
	weekday := WeekdayIndex(date)
	for _, d := range e.Weekdays {
		if d == weekday {
			return true
		}
	}
	return false
}
