// internal/domain/entity/flight.go
package entity

import (
	"fmt"
	"time"
)

// ClockTime is a time of day without a date component.
type ClockTime struct {
	Hour   int
	Minute int
}

// String formats the time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// After reports whether c is later in the day than other.
func (c ClockTime) After(other ClockTime) bool {
	return c.Minutes() > other.Minutes()
}

// At anchors the clock time onto a calendar date.
func (c ClockTime) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// RawObservation is one priced date cell as deposited by the external scraper.
// Price arrives as either a number or a numeric string depending on the source.
type RawObservation struct {
	OriginCode      string      `bson:"origin_code" json:"origin_code"`
	OriginName      string      `bson:"origin_name" json:"origin_name"`
	DestinationCode string      `bson:"destination_code" json:"destination_code"`
	DestinationName string      `bson:"destination_name" json:"destination_name"`
	Date            string      `bson:"date" json:"date"`
	Price           interface{} `bson:"price" json:"price"`
}

// FlightObservation is a single priced one-way flight option on a given date.
// DepartureTime and ArrivalTime stay nil until enriched from the static timetable.
type FlightObservation struct {
	OriginCode      string
	OriginName      string
	DestinationCode string
	DestinationName string
	Date            time.Time
	Price           int
	CalendarWeek    int
	DepartureTime   *ClockTime
	ArrivalTime     *ClockTime
}

// Weekday returns the observation's weekday with Monday=0 .. Sunday=6.
func (f FlightObservation) Weekday() int {
	return WeekdayIndex(f.Date)
}

// Key identifies the underlying priced date cell for deduplication.
func (f FlightObservation) Key() string {
	return fmt.Sprintf("%s-%s-%s-%d", f.OriginCode, f.DestinationCode, f.Date.Format("2006-01-02"), f.Price)
}

// WeekdayIndex converts a date's weekday to Monday=0 .. Sunday=6 numbering.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// AdjustedCalendarWeek computes the ISO week number with Monday dates shifted
// back one day first, so a Friday-Monday span lands in a single bucket.
func AdjustedCalendarWeek(date time.Time) int {
	if date.Weekday() == time.Monday {
		date = date.AddDate(0, 0, -1)
	}
	_, week := date.ISOWeek()
	return week
}
