package usecase

import (
	"sort"
	"time"

	"flightdeals-service/internal/domain/entity"
)

// TripView is one rendered trip line.
type TripView struct {
	TotalPrice int
	Duration   int
	StartDate  string
	StartName  string
	StartCode  string
	StartTime  string
	BackDate   string
	BackName   string
	BackCode   string
	BackTime   string
}

// WeekGroup groups weekend trips by adjusted calendar week.
type WeekGroup struct {
	Week  int
	Trips []TripView
}

// DestinationView is a destination's section of the report. Weeks is populated
// in weekend mode, Trips in duration mode.
type DestinationView struct {
	DestinationName string
	IATA            string
	LowestPrice     int
	Weeks           []WeekGroup
	Trips           []TripView
}

// ReportView is the full view model handed to the renderer.
type ReportView struct {
	Mode         string
	GeneratedAt  time.Time
	Destinations []DestinationView
}

// ReportRenderer turns a view model into the delivered HTML document.
type ReportRenderer interface {
	Render(view ReportView) (string, error)
}

const reportDateLayout = "2006-01-02 (Monday)"

// ReportBuilder shapes filtered trips into the report view model:
// destinations ordered by display name, weekend trips grouped per calendar
// week, everything price-sorted within its group.
type ReportBuilder struct{}

// NewReportBuilder creates a new report builder.
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// Build assembles the view model for the given mode.
func (b *ReportBuilder) Build(mode string, trips entity.TripsByDestination, generatedAt time.Time) ReportView {
	view := ReportView{
		Mode:        mode,
		GeneratedAt: generatedAt,
	}

	for iata, destinationTrips := range trips {
		if len(destinationTrips) == 0 {
			continue
		}
		destination := DestinationView{
			DestinationName: destinationTrips[0].Outbound.DestinationName,
			IATA:            iata,
			LowestPrice:     destinationTrips[0].TotalPrice,
		}
		if mode == entity.ModeWeekend {
			destination.Weeks = buildWeekGroups(destinationTrips)
		} else {
			destination.Trips = buildTripViews(destinationTrips)
		}
		view.Destinations = append(view.Destinations, destination)
	}

	sort.SliceStable(view.Destinations, func(i, j int) bool {
		return view.Destinations[i].DestinationName < view.Destinations[j].DestinationName
	})
	return view
}

func buildWeekGroups(trips []entity.Trip) []WeekGroup {
	byWeek := make(map[int][]entity.Trip)
	for _, trip := range trips {
		week := trip.Outbound.CalendarWeek
		byWeek[week] = append(byWeek[week], trip)
	}

	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	groups := make([]WeekGroup, 0, len(weeks))
	for _, week := range weeks {
		groups = append(groups, WeekGroup{
			Week:  week,
			Trips: buildTripViews(byWeek[week]),
		})
	}
	return groups
}

func buildTripViews(trips []entity.Trip) []TripView {
	sorted := make([]entity.Trip, len(trips))
	copy(sorted, trips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPrice < sorted[j].TotalPrice
	})

	views := make([]TripView, 0, len(sorted))
	for _, trip := range sorted {
		views = append(views, TripView{
			TotalPrice: trip.TotalPrice,
			Duration:   trip.DurationDays(),
			StartDate:  trip.Outbound.Date.Format(reportDateLayout),
			StartName:  trip.Outbound.OriginName,
			StartCode:  trip.Outbound.OriginCode,
			StartTime:  formatClockTime(trip.Outbound.DepartureTime),
			BackDate:   trip.Inbound.Date.Format(reportDateLayout),
			BackName:   trip.Inbound.DestinationName,
			BackCode:   trip.Inbound.DestinationCode,
			BackTime:   formatClockTime(trip.Inbound.ArrivalTime),
		})
	}
	return views
}

func formatClockTime(clockTime *entity.ClockTime) string {
	if clockTime == nil {
		return "N/A"
	}
	return clockTime.String()
}
