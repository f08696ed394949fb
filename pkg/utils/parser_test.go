package utils

import (
	"errors"
	"testing"
	"time"

	"flightdeals-service/internal/domain/entity"
	derr "flightdeals-service/internal/domain/errors"
)

func TestParseDate_SupportedLayouts(t *testing.T) {
	want := time.Date(2025, 9, 19, 0, 0, 0, 0, time.UTC)

	cases := []string{"2025-09-19", "2025/09/19", "19.09.2025", " 2025-09-19 "}
	for _, value := range cases {
		got, err := ParseDate(value)
		if err != nil {
			t.Fatalf("ParseDate(%q): unexpected error %v", value, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("19th September 2025")
	if !errors.Is(err, derr.ErrDateFormat) {
		t.Fatalf("expected ErrDateFormat, got %v", err)
	}
}

func TestParseClockTime(t *testing.T) {
	got, err := ParseClockTime("09:35")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour != 9 || got.Minute != 35 {
		t.Fatalf("ParseClockTime(09:35) = %v", got)
	}
}

func TestParseClockTime_EmptyMapsToEndOfDay(t *testing.T) {
	got, err := ParseClockTime("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour != 23 || got.Minute != 59 {
		t.Fatalf("expected 23:59 sentinel, got %v", got)
	}
}

func TestParseClockTime_Invalid(t *testing.T) {
	_, err := ParseClockTime("25:99")
	if !errors.Is(err, derr.ErrTimeFormat) {
		t.Fatalf("expected ErrTimeFormat, got %v", err)
	}
}

func TestParseWeekdays_Tokens(t *testing.T) {
	got, err := ParseWeekdays([]interface{}{"PN", "Wt", "ŚR", "Cz", "PT", "So", "Nd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseWeekdays_Numbers(t *testing.T) {
	// JSON decodes numbers as float64; 1-indexed with 1=Monday.
	got, err := ParseWeekdays([]interface{}{float64(1), 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 0 || got[1] != 6 {
		t.Fatalf("got %v, want [0 6]", got)
	}
}

func TestParseWeekdays_Unknown(t *testing.T) {
	cases := []interface{}{"pn", "MON", 0, 8, 1.5, true}
	for _, token := range cases {
		_, err := ParseWeekdays([]interface{}{token})
		if !errors.Is(err, derr.ErrUnknownWeekday) {
			t.Fatalf("token %v: expected ErrUnknownWeekday, got %v", token, err)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		value interface{}
		want  int
	}{
		{150, 150},
		{int64(99), 99},
		{float64(230), 230},
		{"175", 175},
		{" 42 ", 42},
	}
	for _, c := range cases {
		got, err := ParsePrice(c.value)
		if err != nil {
			t.Fatalf("ParsePrice(%v): unexpected error %v", c.value, err)
		}
		if got != c.want {
			t.Fatalf("ParsePrice(%v) = %d, want %d", c.value, got, c.want)
		}
	}
}

func TestParsePrice_Invalid(t *testing.T) {
	cases := []interface{}{"cheap", 149.99, nil, []int{1}}
	for _, value := range cases {
		_, err := ParsePrice(value)
		if !errors.Is(err, derr.ErrInvalidPrice) {
			t.Fatalf("value %v: expected ErrInvalidPrice, got %v", value, err)
		}
	}
}

func TestBuildObservation(t *testing.T) {
	raw := entity.RawObservation{
		OriginCode:      "WRO",
		OriginName:      "Wroclaw",
		DestinationCode: "BCN",
		DestinationName: "Barcelona",
		Date:            "2025-09-19",
		Price:           "150",
	}

	got, err := BuildObservation(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Price != 150 {
		t.Fatalf("expected price 150, got %d", got.Price)
	}
	if got.Weekday() != 4 {
		t.Fatalf("expected Friday index 4, got %d", got.Weekday())
	}
	if got.CalendarWeek != 38 {
		t.Fatalf("expected calendar week 38, got %d", got.CalendarWeek)
	}
}

func TestBuildObservations_FailsOnFirstBadRecord(t *testing.T) {
	raws := []entity.RawObservation{
		{OriginCode: "WRO", DestinationCode: "BCN", Date: "2025-09-19", Price: 150},
		{OriginCode: "WRO", DestinationCode: "BCN", Date: "2025-09-20", Price: "soldout"},
	}
	_, err := BuildObservations(raws)
	if !errors.Is(err, derr.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}
