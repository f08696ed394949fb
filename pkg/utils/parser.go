package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"flightdeals-service/internal/domain/entity"
	derr "flightdeals-service/internal/domain/errors"
)

// Date layouts accepted by the published timetables and the scraper, tried in order.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "02.01.2006"}

// weekdayTokens maps the Polish weekday abbreviations used by the airport
// timetables to Monday=0 .. Sunday=6 numbering. Matching is case-sensitive:
// only the published variants are accepted.
var weekdayTokens = map[string]int{
	"PN": 0, "Pn": 0,
	"WT": 1, "Wt": 1,
	"ŚR": 2, "Śr": 2,
	"CZ": 3, "Cz": 3,
	"PT": 4, "Pt": 4,
	"SB": 5, "So": 5,
	"NDZ": 6, "Nd": 6,
}

// ParseDate parses a calendar date in any of the supported layouts.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", derr.ErrDateFormat, value)
}

// ParseClockTime parses an HH:MM time of day. An empty string is the upstream
// sentinel for "no published value" and maps to 23:59, effectively end of day.
func ParseClockTime(value string) (entity.ClockTime, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "23:59"
	}
	parsed, err := time.Parse("15:04", trimmed)
	if err != nil {
		return entity.ClockTime{}, fmt.Errorf("%w: %q", derr.ErrTimeFormat, value)
	}
	return entity.ClockTime{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// ParseWeekdays converts published weekday tokens to Monday=0 .. Sunday=6
// numbers. Tokens are Polish abbreviations or 1-indexed numbers (1=Monday).
func ParseWeekdays(tokens []interface{}) ([]int, error) {
	parsed := make([]int, 0, len(tokens))
	for _, token := range tokens {
		switch v := token.(type) {
		case string:
			day, ok := weekdayTokens[v]
			if !ok {
				return nil, fmt.Errorf("%w: %q", derr.ErrUnknownWeekday, v)
			}
			parsed = append(parsed, day)
		case int:
			day, err := weekdayFromNumber(v)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, day)
		case int32:
			day, err := weekdayFromNumber(int(v))
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, day)
		case int64:
			day, err := weekdayFromNumber(int(v))
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, day)
		case float64:
			// JSON numbers decode as float64
			if v != float64(int(v)) {
				return nil, fmt.Errorf("%w: %v", derr.ErrUnknownWeekday, v)
			}
			day, err := weekdayFromNumber(int(v))
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, day)
		default:
			return nil, fmt.Errorf("%w: %v", derr.ErrUnknownWeekday, token)
		}
	}
	return parsed, nil
}

func weekdayFromNumber(n int) (int, error) {
	if n < 1 || n > 7 {
		return 0, fmt.Errorf("%w: %d", derr.ErrUnknownWeekday, n)
	}
	return n - 1, nil
}

// ParsePrice normalizes a scraped price to an integer amount. Sources deliver
// prices as numbers or numeric strings; anything else is rejected.
func ParsePrice(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %v", derr.ErrInvalidPrice, v)
		}
		return int(v), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", derr.ErrInvalidPrice, v)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: %T", derr.ErrInvalidPrice, value)
	}
}

// BuildObservation converts a raw scraped record into a domain observation,
// normalizing the price and fixing the adjusted calendar week once.
func BuildObservation(raw entity.RawObservation) (entity.FlightObservation, error) {
	date, err := ParseDate(raw.Date)
	if err != nil {
		return entity.FlightObservation{}, err
	}
	price, err := ParsePrice(raw.Price)
	if err != nil {
		return entity.FlightObservation{}, err
	}
	return entity.FlightObservation{
		OriginCode:      raw.OriginCode,
		OriginName:      raw.OriginName,
		DestinationCode: raw.DestinationCode,
		DestinationName: raw.DestinationName,
		Date:            date,
		Price:           price,
		CalendarWeek:    entity.AdjustedCalendarWeek(date),
	}, nil
}

// BuildObservations converts a whole raw list, failing on the first bad record.
func BuildObservations(raws []entity.RawObservation) ([]entity.FlightObservation, error) {
	observations := make([]entity.FlightObservation, 0, len(raws))
	for _, raw := range raws {
		observation, err := BuildObservation(raw)
		if err != nil {
			return nil, err
		}
		observations = append(observations, observation)
	}
	return observations, nil
}
