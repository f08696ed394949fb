package usecase

import (
	"errors"
	"testing"
	"time"

	"flightdeals-service/internal/domain/entity"
	derr "flightdeals-service/internal/domain/errors"
	"flightdeals-service/pkg/logger"
)

// timetableStub serves one fixed time per direction, or nil to simulate a
// route with no published schedule.
type timetableStub struct {
	departure *entity.ClockTime
	arrival   *entity.ClockTime
	calls     int
}

func (s *timetableStub) Lookup(_, direction, _ string, _ time.Time) *entity.ClockTime {
	s.calls++
	if direction == entity.DirectionDepartures {
		return s.departure
	}
	return s.arrival
}

func clock(hour, minute int) *entity.ClockTime {
	return &entity.ClockTime{Hour: hour, Minute: minute}
}

// sameDayProcessor builds a processor whose policy matches the Wednesday
// observations used by the same-day turnaround tests.
func sameDayProcessor(stub *timetableStub) *TripProcessor {
	policy := NewWeekendPolicy([]int{2}, []int{2})
	return NewTripProcessor(stub, policy, 500, 10, 11, logger.NewNop())
}

func TestProcess_SameDayTurnaroundKept(t *testing.T) {
	stub := &timetableStub{departure: clock(9, 0), arrival: clock(19, 30)}
	processor := sameDayProcessor(stub)

	wednesday := day(2025, 10, 1)
	trips := processor.Process(
		[]entity.FlightObservation{obs("WRO", "BCN", wednesday, 150)},
		[]entity.FlightObservation{obs("BCN", "WRO", wednesday, 100)},
	)

	if len(trips["BCN"]) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(trips["BCN"]))
	}
	trip := trips["BCN"][0]
	if trip.Outbound.DepartureTime == nil || trip.Outbound.DepartureTime.String() != "09:00" {
		t.Fatalf("outbound not enriched: %v", trip.Outbound.DepartureTime)
	}
	if trip.Inbound.ArrivalTime == nil || trip.Inbound.ArrivalTime.String() != "19:30" {
		t.Fatalf("inbound not enriched: %v", trip.Inbound.ArrivalTime)
	}
}

func TestProcess_SameDayLateDepartureDropped(t *testing.T) {
	stub := &timetableStub{departure: clock(12, 0), arrival: clock(23, 0)}
	processor := sameDayProcessor(stub)

	wednesday := day(2025, 10, 1)
	trips := processor.Process(
		[]entity.FlightObservation{obs("WRO", "BCN", wednesday, 150)},
		[]entity.FlightObservation{obs("BCN", "WRO", wednesday, 100)},
	)

	if len(trips) != 0 {
		t.Fatalf("expected no trips for a 12:00 same-day departure, got %v", trips)
	}
}

func TestProcess_SameDayShortDwellDropped(t *testing.T) {
	stub := &timetableStub{departure: clock(9, 0), arrival: clock(18, 0)}
	processor := sameDayProcessor(stub)

	wednesday := day(2025, 10, 1)
	trips := processor.Process(
		[]entity.FlightObservation{obs("WRO", "BCN", wednesday, 150)},
		[]entity.FlightObservation{obs("BCN", "WRO", wednesday, 100)},
	)

	if len(trips) != 0 {
		t.Fatalf("expected no trips for a 9 hour dwell, got %v", trips)
	}
}

func TestProcess_MultiDayTripSkipsDwellCheck(t *testing.T) {
	// Late departure and short scheduled day would fail the same-day rules.
	stub := &timetableStub{departure: clock(22, 0), arrival: clock(6, 0)}
	policy := NewDurationPolicy(4, 8, nil, nil)
	processor := NewTripProcessor(stub, policy, 500, 10, 11, logger.NewNop())

	trips := processor.Process(
		[]entity.FlightObservation{obs("WRO", "LIS", day(2025, 10, 1), 200)},
		[]entity.FlightObservation{obs("LIS", "WRO", day(2025, 10, 6), 90)},
	)

	if len(trips["LIS"]) != 1 {
		t.Fatalf("expected the multi-day trip to pass, got %v", trips)
	}
}

func TestProcess_MissingTimetableEliminatesDestination(t *testing.T) {
	stub := &timetableStub{departure: clock(9, 0), arrival: nil}
	policy := NewDurationPolicy(4, 8, nil, nil)
	processor := NewTripProcessor(stub, policy, 500, 10, 11, logger.NewNop())

	trips := processor.Process(
		[]entity.FlightObservation{obs("WRO", "LIS", day(2025, 10, 1), 200)},
		[]entity.FlightObservation{obs("LIS", "WRO", day(2025, 10, 6), 90)},
	)

	if len(trips) != 0 {
		t.Fatalf("expected destination without timetable match to disappear, got %v", trips)
	}
}

func TestProcess_PerLegPriceCeilingIsStrict(t *testing.T) {
	stub := &timetableStub{departure: clock(9, 0), arrival: clock(19, 30)}
	policy := NewDurationPolicy(4, 8, nil, nil)
	processor := NewTripProcessor(stub, policy, 500, 10, 11, logger.NewNop())

	trips := processor.Process(
		[]entity.FlightObservation{obs("WRO", "LIS", day(2025, 10, 1), 500)}, // equal to the limit
		[]entity.FlightObservation{obs("LIS", "WRO", day(2025, 10, 6), 90)},
	)

	if len(trips) != 0 {
		t.Fatalf("a leg priced at the limit must be dropped, got %v", trips)
	}
}

func TestProcess_TotalPriceCeiling(t *testing.T) {
	stub := &timetableStub{departure: clock(9, 0), arrival: clock(19, 30)}
	policy := NewDurationPolicy(4, 8, nil, nil)
	processor := NewTripProcessor(stub, policy, 500, 10, 11, logger.NewNop())

	trips := processor.Process(
		[]entity.FlightObservation{
			obs("WRO", "LIS", day(2025, 10, 1), 260),
			obs("WRO", "LIS", day(2025, 10, 2), 150),
		},
		[]entity.FlightObservation{obs("LIS", "WRO", day(2025, 10, 6), 260)},
	)

	// 260+260 reaches the limit and is dropped; 150+260 stays under it.
	if len(trips["LIS"]) != 1 {
		t.Fatalf("expected exactly the cheap pairing, got %v", trips)
	}
	if trips["LIS"][0].TotalPrice != 410 {
		t.Fatalf("expected total 410, got %d", trips["LIS"][0].TotalPrice)
	}
}

func TestProcess_DoesNotMutateObservationPools(t *testing.T) {
	stub := &timetableStub{departure: clock(9, 0), arrival: clock(19, 30)}
	policy := NewDurationPolicy(4, 8, nil, nil)
	processor := NewTripProcessor(stub, policy, 500, 10, 11, logger.NewNop())

	outbound := []entity.FlightObservation{obs("WRO", "LIS", day(2025, 10, 1), 200)}
	inbound := []entity.FlightObservation{obs("LIS", "WRO", day(2025, 10, 6), 90)}

	processor.Process(outbound, inbound)

	if outbound[0].DepartureTime != nil || inbound[0].ArrivalTime != nil {
		t.Fatalf("observation pools were mutated by enrichment")
	}
}

func TestProcessRaw_BadRecordFailsTheRun(t *testing.T) {
	stub := &timetableStub{departure: clock(9, 0), arrival: clock(19, 30)}
	policy := NewDurationPolicy(4, 8, nil, nil)
	processor := NewTripProcessor(stub, policy, 500, 10, 11, logger.NewNop())

	_, err := processor.ProcessRaw(
		[]entity.RawObservation{{OriginCode: "WRO", DestinationCode: "LIS", Date: "2025-10-01", Price: "???"}},
		nil,
	)
	if !errors.Is(err, derr.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestTripStagesIdempotent(t *testing.T) {
	stub := &timetableStub{departure: clock(9, 0), arrival: clock(19, 30)}
	policy := NewDurationPolicy(4, 8, nil, nil)
	processor := NewTripProcessor(stub, policy, 500, 10, 11, logger.NewNop())

	trips := processor.Process(
		[]entity.FlightObservation{
			obs("WRO", "LIS", day(2025, 10, 1), 200),
			obs("WRO", "BCN", day(2025, 10, 2), 150),
		},
		[]entity.FlightObservation{
			obs("LIS", "WRO", day(2025, 10, 6), 90),
			obs("BCN", "WRO", day(2025, 10, 7), 100),
		},
	)
	before := countTrips(trips)
	if before == 0 {
		t.Fatalf("expected surviving trips to exercise the stages")
	}

	// Already-filtered output passes through the trip-level stages unchanged.
	again := dedupeTrips(processor.filterByTotalPrice(processor.enrichAndFilterTrips(trips)))
	if countTrips(again) != before {
		t.Fatalf("pipeline not idempotent: %d then %d trips", before, countTrips(again))
	}
}

func TestDedupeTrips(t *testing.T) {
	outbound := obs("WRO", "BCN", day(2025, 9, 19), 150)
	inbound := obs("BCN", "WRO", day(2025, 9, 21), 100)
	other := obs("BCN", "WRO", day(2025, 9, 22), 100)

	trips := entity.TripsByDestination{
		"BCN": {
			entity.NewTrip(outbound, inbound),
			entity.NewTrip(outbound, inbound), // same pair seen twice
			entity.NewTrip(outbound, other),
		},
	}

	deduped := dedupeTrips(trips)
	if len(deduped["BCN"]) != 2 {
		t.Fatalf("expected 2 unique trips, got %d", len(deduped["BCN"]))
	}

	// Running the stage again must not change anything.
	again := dedupeTrips(deduped)
	if len(again["BCN"]) != 2 {
		t.Fatalf("dedupe is not idempotent: got %d", len(again["BCN"]))
	}
}
