package entity

// Trip is a candidate round trip built from one outbound and one inbound leg.
// Legs are held by value so timetable enrichment never mutates the shared
// observation pools.
type Trip struct {
	Outbound   FlightObservation
	Inbound    FlightObservation
	TotalPrice int
}

// NewTrip pairs two legs and fixes the total price at construction.
func NewTrip(outbound, inbound FlightObservation) Trip {
	return Trip{
		Outbound:   outbound,
		Inbound:    inbound,
		TotalPrice: outbound.Price + inbound.Price,
	}
}

// DurationDays is the trip length in whole days.
func (t Trip) DurationDays() int {
	return int(t.Inbound.Date.Sub(t.Outbound.Date).Hours() / 24)
}

// Key identifies the (outbound, inbound) pair for deduplication. Two trips
// built from the same pair of observations are duplicates even when they were
// discovered through different week buckets.
func (t Trip) Key() string {
	return t.Outbound.Key() + "|" + t.Inbound.Key()
}

// TripsByDestination maps away-airport IATA code to trips sorted by total price.
type TripsByDestination map[string][]Trip
