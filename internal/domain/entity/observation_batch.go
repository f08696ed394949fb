package entity

import "time"

// ObservationBatch is one scraper run's worth of raw priced observations:
// everything leaving the home airports and everything returning to them.
type ObservationBatch struct {
	ID               string           `bson:"_id,omitempty"`
	ScrapedAt        time.Time        `bson:"scrapedAt"`
	OriginToAnywhere []RawObservation `bson:"originToAnywhere"`
	AnywhereToOrigin []RawObservation `bson:"anywhereToOrigin"`
}
