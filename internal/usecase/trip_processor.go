package usecase

import (
	"time"

	"flightdeals-service/internal/domain/entity"
	"flightdeals-service/internal/domain/repository"
	"flightdeals-service/pkg/logger"
	"flightdeals-service/pkg/utils"
)

// TripProcessor runs the ordered filter pipeline over one batch of priced
// observations: price normalization, per-leg price ceiling, the policy's
// weekday pre-filter, matching, timetable enrichment, no-match elimination,
// the same-day dwell-time filter, the total-price ceiling and deduplication.
type TripProcessor struct {
	timetableRepo repository.TimetableRepository
	policy        MatchPolicy
	priceLimit    int
	minTripHours  int
	maxStartHour  entity.ClockTime
	logger        logger.Logger
}

// NewTripProcessor creates a new trip processor.
// priceLimit bounds both the per-leg and the total trip price; the pipeline
// keeps only strictly cheaper fares. maxStartHour and minTripHours apply to
// same-day turnarounds only.
func NewTripProcessor(
	timetableRepo repository.TimetableRepository,
	policy MatchPolicy,
	priceLimit int,
	minTripHours int,
	maxStartHour int,
	logger logger.Logger,
) *TripProcessor {
	return &TripProcessor{
		timetableRepo: timetableRepo,
		policy:        policy,
		priceLimit:    priceLimit,
		minTripHours:  minTripHours,
		maxStartHour:  entity.ClockTime{Hour: maxStartHour},
		logger:        logger,
	}
}

// Mode returns the processing mode of the injected matching policy.
func (p *TripProcessor) Mode() string {
	return p.policy.Mode()
}

// ProcessRaw normalizes the raw scraped records and runs the pipeline.
// A record with an unparseable price or date fails the whole call.
func (p *TripProcessor) ProcessRaw(outboundRaw, inboundRaw []entity.RawObservation) (entity.TripsByDestination, error) {
	outbound, err := utils.BuildObservations(outboundRaw)
	if err != nil {
		return nil, err
	}
	inbound, err := utils.BuildObservations(inboundRaw)
	if err != nil {
		return nil, err
	}
	return p.Process(outbound, inbound), nil
}

// Process runs the filter pipeline over already-normalized observation pools.
// The pools are never mutated; trips carry their own leg copies.
func (p *TripProcessor) Process(outbound, inbound []entity.FlightObservation) entity.TripsByDestination {
	outbound = filterByPrice(outbound, p.priceLimit)
	inbound = filterByPrice(inbound, p.priceLimit)

	outbound, inbound = p.policy.PreFilter(outbound, inbound)

	groupedOutbound := groupByDestination(outbound)
	groupedInbound := groupByOrigin(inbound)

	trips := p.policy.FindTrips(groupedOutbound, groupedInbound)
	trips = p.enrichAndFilterTrips(trips)
	trips = p.filterByTotalPrice(trips)
	trips = dedupeTrips(trips)

	p.logger.Info("Trip pipeline finished",
		"mode", p.policy.Mode(),
		"destinations", len(trips),
		"trips", countTrips(trips),
	)
	return trips
}

func filterByPrice(observations []entity.FlightObservation, priceLimit int) []entity.FlightObservation {
	filtered := make([]entity.FlightObservation, 0, len(observations))
	for _, observation := range observations {
		if observation.Price < priceLimit {
			filtered = append(filtered, observation)
		}
	}
	return filtered
}

func groupByDestination(observations []entity.FlightObservation) map[string][]entity.FlightObservation {
	grouped := make(map[string][]entity.FlightObservation)
	for _, observation := range observations {
		grouped[observation.DestinationCode] = append(grouped[observation.DestinationCode], observation)
	}
	return grouped
}

func groupByOrigin(observations []entity.FlightObservation) map[string][]entity.FlightObservation {
	grouped := make(map[string][]entity.FlightObservation)
	for _, observation := range observations {
		grouped[observation.OriginCode] = append(grouped[observation.OriginCode], observation)
	}
	return grouped
}

// enrichAndFilterTrips resolves scheduled times for every trip's legs and
// applies the schedule-dependent filters. The trip's own leg copies are
// enriched; the observation pools stay untouched. Trips without a timetable
// match (charter or irregular services) are dropped, as are same-day
// turnarounds that leave too late or stay too short.
func (p *TripProcessor) enrichAndFilterTrips(trips entity.TripsByDestination) entity.TripsByDestination {
	filtered := make(entity.TripsByDestination)
	for iata, destinationTrips := range trips {
		kept := make([]entity.Trip, 0, len(destinationTrips))
		for _, trip := range destinationTrips {
			departureTime := p.timetableRepo.Lookup(
				trip.Outbound.OriginCode, entity.DirectionDepartures, trip.Outbound.DestinationCode, trip.Outbound.Date)
			arrivalTime := p.timetableRepo.Lookup(
				trip.Inbound.DestinationCode, entity.DirectionArrivals, trip.Inbound.OriginCode, trip.Inbound.Date)

			trip.Outbound.DepartureTime = departureTime
			trip.Inbound.ArrivalTime = arrivalTime

			if departureTime == nil || arrivalTime == nil {
				continue
			}
			if !p.passesDwellTime(trip, *departureTime, *arrivalTime) {
				continue
			}
			kept = append(kept, trip)
		}
		if len(kept) > 0 {
			filtered[iata] = kept
		}
	}
	return filtered
}

// passesDwellTime applies the same-day turnaround constraints: the outbound
// must leave by maxStartHour and the dwell between scheduled departure and
// scheduled arrival must reach minTripHours. Multi-day trips pass unconditionally.
func (p *TripProcessor) passesDwellTime(trip entity.Trip, departureTime, arrivalTime entity.ClockTime) bool {
	if !trip.Outbound.Date.Equal(trip.Inbound.Date) {
		return true
	}
	if departureTime.After(p.maxStartHour) {
		return false
	}
	dwell := arrivalTime.At(trip.Inbound.Date).Sub(departureTime.At(trip.Outbound.Date))
	return dwell >= time.Duration(p.minTripHours)*time.Hour
}

func (p *TripProcessor) filterByTotalPrice(trips entity.TripsByDestination) entity.TripsByDestination {
	filtered := make(entity.TripsByDestination)
	for iata, destinationTrips := range trips {
		kept := make([]entity.Trip, 0, len(destinationTrips))
		for _, trip := range destinationTrips {
			if trip.TotalPrice < p.priceLimit {
				kept = append(kept, trip)
			}
		}
		if len(kept) > 0 {
			filtered[iata] = kept
		}
	}
	return filtered
}

// dedupeTrips collapses trips built from the same (outbound, inbound) pair,
// keeping the first occurrence. Week bucketing can discover the same pair twice.
func dedupeTrips(trips entity.TripsByDestination) entity.TripsByDestination {
	deduped := make(entity.TripsByDestination, len(trips))
	for iata, destinationTrips := range trips {
		seen := make(map[string]bool, len(destinationTrips))
		kept := make([]entity.Trip, 0, len(destinationTrips))
		for _, trip := range destinationTrips {
			key := trip.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			kept = append(kept, trip)
		}
		deduped[iata] = kept
	}
	return deduped
}

func countTrips(trips entity.TripsByDestination) int {
	total := 0
	for _, destinationTrips := range trips {
		total += len(destinationTrips)
	}
	return total
}
