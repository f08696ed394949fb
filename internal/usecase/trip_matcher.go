package usecase

import (
	"sort"
	"time"

	"flightdeals-service/internal/domain/entity"
)

// MatchPolicy is the strategy that pairs outbound and inbound legs into
// candidate round trips. The two policies differ only here; the surrounding
// filter pipeline is shared.
type MatchPolicy interface {
	Mode() string
	// PreFilter trims the observation pools before grouping and matching.
	PreFilter(outbound, inbound []entity.FlightObservation) ([]entity.FlightObservation, []entity.FlightObservation)
	// FindTrips forms candidate trips for every destination present in both
	// mappings, each destination's list sorted ascending by total price.
	FindTrips(outbound, inbound map[string][]entity.FlightObservation) entity.TripsByDestination
}

// WeekendPolicy matches legs inside the same adjusted calendar week, with the
// outbound leg on a configured start weekday and the inbound leg on a
// configured end weekday.
type WeekendPolicy struct {
	startWeekdays map[int]bool
	endWeekdays   map[int]bool
}

// NewWeekendPolicy builds a calendar-week policy. Weekdays use Monday=0 ..
// Sunday=6 numbering.
func NewWeekendPolicy(startWeekdays, endWeekdays []int) *WeekendPolicy {
	return &WeekendPolicy{
		startWeekdays: toWeekdaySet(startWeekdays),
		endWeekdays:   toWeekdaySet(endWeekdays),
	}
}

func toWeekdaySet(weekdays []int) map[int]bool {
	set := make(map[int]bool, len(weekdays))
	for _, day := range weekdays {
		set[day] = true
	}
	return set
}

// Mode returns the processing mode this policy implements.
func (p *WeekendPolicy) Mode() string {
	return entity.ModeWeekend
}

// PreFilter keeps outbound legs on start weekdays and inbound legs on end weekdays.
func (p *WeekendPolicy) PreFilter(outbound, inbound []entity.FlightObservation) ([]entity.FlightObservation, []entity.FlightObservation) {
	return filterByWeekdays(outbound, p.startWeekdays), filterByWeekdays(inbound, p.endWeekdays)
}

func filterByWeekdays(observations []entity.FlightObservation, weekdays map[int]bool) []entity.FlightObservation {
	filtered := make([]entity.FlightObservation, 0, len(observations))
	for _, observation := range observations {
		if weekdays[observation.Weekday()] {
			filtered = append(filtered, observation)
		}
	}
	return filtered
}

// FindTrips buckets each destination's legs by adjusted calendar week and
// pairs every outbound with every inbound in the same bucket, keeping pairs
// where the outbound date does not come after the inbound date. The same pair
// can surface through more than one week bucket; deduplication happens later
// in the pipeline.
func (p *WeekendPolicy) FindTrips(outbound, inbound map[string][]entity.FlightObservation) entity.TripsByDestination {
	trips := make(entity.TripsByDestination)
	for iata, startFlights := range outbound {
		backFlights, ok := inbound[iata]
		if !ok {
			continue
		}

		byWeekStart := bucketByWeek(startFlights)
		byWeekBack := bucketByWeek(backFlights)

		for week, starts := range byWeekStart {
			backs, ok := byWeekBack[week]
			if !ok {
				continue
			}
			for _, start := range starts {
				for _, back := range backs {
					if start.Date.After(back.Date) {
						continue
					}
					trips[iata] = append(trips[iata], entity.NewTrip(start, back))
				}
			}
		}
	}
	sortTripsByPrice(trips)
	return trips
}

func bucketByWeek(observations []entity.FlightObservation) map[int][]entity.FlightObservation {
	buckets := make(map[int][]entity.FlightObservation)
	for _, observation := range observations {
		buckets[observation.CalendarWeek] = append(buckets[observation.CalendarWeek], observation)
	}
	return buckets
}

// DurationPolicy matches any outbound/inbound pair whose trip length falls in
// a day-span window, optionally bounded by a global date window. It searches
// the full date range exhaustively per destination.
type DurationPolicy struct {
	minTripDays int
	maxTripDays int
	windowStart *time.Time
	windowEnd   *time.Time
}

// NewDurationPolicy builds a free-duration policy. Nil window bounds leave the
// date range open on that side.
func NewDurationPolicy(minTripDays, maxTripDays int, windowStart, windowEnd *time.Time) *DurationPolicy {
	return &DurationPolicy{
		minTripDays: minTripDays,
		maxTripDays: maxTripDays,
		windowStart: windowStart,
		windowEnd:   windowEnd,
	}
}

// Mode returns the processing mode this policy implements.
func (p *DurationPolicy) Mode() string {
	return entity.ModeDuration
}

// PreFilter is a no-op: the duration policy has no weekday window.
func (p *DurationPolicy) PreFilter(outbound, inbound []entity.FlightObservation) ([]entity.FlightObservation, []entity.FlightObservation) {
	return outbound, inbound
}

func (p *DurationPolicy) isValidStart(flight entity.FlightObservation) bool {
	if p.windowStart != nil && flight.Date.Before(*p.windowStart) {
		return false
	}
	return p.windowEnd == nil || !flight.Date.After(*p.windowEnd)
}

func (p *DurationPolicy) isValidTrip(start, back entity.FlightObservation) bool {
	if !start.Date.Before(back.Date) {
		return false
	}
	if p.windowStart != nil && back.Date.Before(*p.windowStart) {
		return false
	}
	if p.windowEnd != nil && back.Date.After(*p.windowEnd) {
		return false
	}
	duration := int(back.Date.Sub(start.Date).Hours() / 24)
	return duration >= p.minTripDays && duration <= p.maxTripDays
}

// FindTrips pairs every valid outbound with every valid inbound per
// destination. O(n*m) per destination, fine for pair counts in the hundreds.
func (p *DurationPolicy) FindTrips(outbound, inbound map[string][]entity.FlightObservation) entity.TripsByDestination {
	trips := make(entity.TripsByDestination)
	for iata, startFlights := range outbound {
		backFlights, ok := inbound[iata]
		if !ok {
			continue
		}
		for _, start := range startFlights {
			if !p.isValidStart(start) {
				continue
			}
			for _, back := range backFlights {
				if p.isValidTrip(start, back) {
					trips[iata] = append(trips[iata], entity.NewTrip(start, back))
				}
			}
		}
	}
	sortTripsByPrice(trips)
	return trips
}

func sortTripsByPrice(trips entity.TripsByDestination) {
	for _, destinationTrips := range trips {
		sort.SliceStable(destinationTrips, func(i, j int) bool {
			return destinationTrips[i].TotalPrice < destinationTrips[j].TotalPrice
		})
	}
}
