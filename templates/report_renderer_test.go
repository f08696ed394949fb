package templates

import (
	"strings"
	"testing"
	"time"

	"flightdeals-service/internal/domain/entity"
	"flightdeals-service/internal/usecase"
)

func TestRender_DurationReport(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := usecase.ReportView{
		Mode:        entity.ModeDuration,
		GeneratedAt: time.Date(2025, 10, 10, 6, 0, 0, 0, time.UTC),
		Destinations: []usecase.DestinationView{
			{
				DestinationName: "Barcelona",
				IATA:            "BCN",
				LowestPrice:     250,
				Trips: []usecase.TripView{
					{
						TotalPrice: 250,
						Duration:   5,
						StartDate:  "2025-10-01 (Wednesday)",
						StartName:  "Wroclaw",
						StartCode:  "WRO",
						StartTime:  "06:10",
						BackDate:   "2025-10-06 (Monday)",
						BackName:   "Wroclaw",
						BackCode:   "WRO",
						BackTime:   "21:20",
					},
				},
			},
		},
	}

	html, err := renderer.Render(view)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Barcelona (BCN)", "250", "06:10", "2025-10-01 (Wednesday)"} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered report missing %q", want)
		}
	}
	if strings.Contains(html, "No deals found.") {
		t.Fatalf("empty state rendered for a non-empty report")
	}
}

func TestRender_WeekendReportShowsWeekHeadings(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view := usecase.ReportView{
		Mode:        entity.ModeWeekend,
		GeneratedAt: time.Now(),
		Destinations: []usecase.DestinationView{
			{
				DestinationName: "Barcelona",
				IATA:            "BCN",
				LowestPrice:     250,
				Weeks: []usecase.WeekGroup{
					{Week: 38, Trips: []usecase.TripView{{TotalPrice: 250}}},
				},
			},
		},
	}

	html, err := renderer.Render(view)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "Week 38") {
		t.Fatalf("weekend report missing week heading")
	}
	if !strings.Contains(html, "Weekend flight deals") {
		t.Fatalf("weekend template not selected")
	}
}

func TestRender_EmptyReport(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html, err := renderer.Render(usecase.ReportView{Mode: entity.ModeDuration, GeneratedAt: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "No deals found.") {
		t.Fatalf("empty report missing the empty state")
	}
}
