package booking

import (
	"testing"
	"time"

	"github.com/sharpcut-app/booking-api/internal/models"
)

func day() time.Time {
	return time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	d := day()

	at := func(hm string) time.Time { return AtTimeOfDay(d, hm) }

	cases := []struct {
		name                         string
		aStart, aEnd, bStart, bEnd   string
		want                         bool
	}{
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
		{"partial head", "10:00", "10:30", "10:15", "10:45", true},
		{"partial tail", "10:15", "10:45", "10:00", "10:30", true},
		{"contained", "10:00", "11:00", "10:15", "10:30", true},
		{"back to back", "10:00", "10:30", "10:30", "11:00", false},
		{"disjoint", "09:00", "09:30", "11:00", "11:30", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(at(tc.aStart), at(tc.aEnd), at(tc.bStart), at(tc.bEnd))
			if got != tc.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestWithinWorkingHours(t *testing.T) {
	d := day()
	at := func(hm string) time.Time { return AtTimeOfDay(d, hm) }

	wh := &models.WorkingHours{
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside morning", "10:00", "10:30", true},
		{"ends at closing", "17:30", "18:00", true},
		{"before opening", "08:30", "09:00", false},
		{"past closing", "17:45", "18:15", false},
		{"inside lunch", "12:15", "12:45", false},
		{"overlaps lunch start", "11:45", "12:15", false},
		{"ends at lunch start", "11:30", "12:00", true},
		{"starts at lunch end", "13:00", "13:30", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WithinWorkingHours(wh, at(tc.start), at(tc.end))
			if got != tc.want {
				t.Errorf("WithinWorkingHours(%s-%s) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestWithinWorkingHours_DayOff(t *testing.T) {
	d := day()
	start, end := AtTimeOfDay(d, "10:00"), AtTimeOfDay(d, "10:30")

	if WithinWorkingHours(nil, start, end) {
		t.Error("nil template should mean day off")
	}

	inactive := &models.WorkingHours{Active: false, StartTime: "09:00", EndTime: "18:00"}
	if WithinWorkingHours(inactive, start, end) {
		t.Error("inactive template should mean day off")
	}

	empty := &models.WorkingHours{Active: true}
	if WithinWorkingHours(empty, start, end) {
		t.Error("template without a window should mean day off")
	}
}

func TestAtTimeOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Paris")
	d := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)

	got := AtTimeOfDay(d, "14:30")

	if got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("got %s, want 14:30", got.Format("15:04"))
	}
	if got.Location() != loc {
		t.Errorf("location changed: %v", got.Location())
	}
	if got.Year() != 2026 || got.Month() != time.September || got.Day() != 14 {
		t.Errorf("date changed: %s", got.Format("2006-01-02"))
	}
}
