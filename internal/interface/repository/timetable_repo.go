package repository

import (
	"fmt"
	"time"

	"flightdeals-service/internal/domain/entity"
	"flightdeals-service/internal/domain/repository"
	"flightdeals-service/pkg/logger"
	"flightdeals-service/pkg/utils"
)

// MemoryTimetableRepository implements TimetableRepository over parsed
// per-airport schedule documents held in memory. Documents are parsed once at
// construction and never mutated afterwards.
type MemoryTimetableRepository struct {
	// origin IATA -> direction -> away IATA -> entries in load order
	timetables map[string]map[string]map[string][]entity.TimetableEntry
	logger     logger.Logger
}

// NewMemoryTimetableRepository parses the raw schedule documents, keyed by
// origin airport IATA. Any malformed entry aborts construction: a silently
// dropped timetable row would read as "no scheduled flight" downstream.
func NewMemoryTimetableRepository(documents map[string]entity.RawTimetableDocument, logger logger.Logger) (repository.TimetableRepository, error) {
	timetables := make(map[string]map[string]map[string][]entity.TimetableEntry, len(documents))
	for origin, document := range documents {
		parsed, err := parseTimetableDocument(document)
		if err != nil {
			return nil, fmt.Errorf("timetable for %s: %w", origin, err)
		}
		timetables[origin] = parsed
	}
	return &MemoryTimetableRepository{
		timetables: timetables,
		logger:     logger,
	}, nil
}

// parseTimetableDocument converts one raw {direction: {away: [entries]}}
// document, preserving the published entry order.
func parseTimetableDocument(document entity.RawTimetableDocument) (map[string]map[string][]entity.TimetableEntry, error) {
	parsed := make(map[string]map[string][]entity.TimetableEntry, len(document))
	for direction, routes := range document {
		oneWay := make(map[string][]entity.TimetableEntry, len(routes))
		for away, rawEntries := range routes {
			entries := make([]entity.TimetableEntry, 0, len(rawEntries))
			for _, raw := range rawEntries {
				entry, err := parseTimetableEntry(raw)
				if err != nil {
					return nil, fmt.Errorf("route %s %s: %w", direction, away, err)
				}
				entries = append(entries, entry)
			}
			oneWay[away] = entries
		}
		parsed[direction] = oneWay
	}
	return parsed, nil
}

func parseTimetableEntry(raw entity.RawTimetableEntry) (entity.TimetableEntry, error) {
	seasonStart, err := utils.ParseDate(raw.StartDate)
	if err != nil {
		return entity.TimetableEntry{}, err
	}
	seasonEnd, err := utils.ParseDate(raw.EndDate)
	if err != nil {
		return entity.TimetableEntry{}, err
	}
	departureTime, err := utils.ParseClockTime(raw.StartTime)
	if err != nil {
		return entity.TimetableEntry{}, err
	}
	arrivalTime, err := utils.ParseClockTime(raw.LandingTime)
	if err != nil {
		return entity.TimetableEntry{}, err
	}
	weekdays, err := utils.ParseWeekdays(raw.Weekdays)
	if err != nil {
		return entity.TimetableEntry{}, err
	}
	return entity.TimetableEntry{
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		Weekdays:      weekdays,
		SeasonStart:   seasonStart,
		SeasonEnd:     seasonEnd,
	}, nil
}

// Lookup returns the scheduled time of the first entry, in load order, whose
// season contains the date and which operates on its weekday. There is no
// tie-break between overlapping seasonal entries.
func (r *MemoryTimetableRepository) Lookup(originAirport, direction, awayAirport string, date time.Time) *entity.ClockTime {
	entries := r.timetables[originAirport][direction][awayAirport]
	for _, entry := range entries {
		if !entry.Covers(date) {
			continue
		}
		scheduled := entry.DepartureTime
		if direction == entity.DirectionArrivals {
			scheduled = entry.ArrivalTime
		}
		return &scheduled
	}
	r.logger.Error("No timetable match for route",
		"origin", originAirport,
		"direction", direction,
		"away", awayAirport,
		"date", date.Format("2006-01-02"),
		"weekday", date.Weekday().String(),
	)
	return nil
}
