package booking

import (
	"time"

	"github.com/sharpcut-app/booking-api/internal/models"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// WithinWorkingHours validates that [start, end) fits inside the barber's
// working window for that day, lunch break excluded. wh may be nil (day off).
func WithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	workStart := AtTimeOfDay(start, wh.StartTime)
	workEnd := AtTimeOfDay(start, wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart := AtTimeOfDay(start, wh.LunchStart)
		lunchEnd := AtTimeOfDay(start, wh.LunchEnd)
		if Overlaps(start, end, lunchStart, lunchEnd) {
			return false
		}
	}

	return true
}

// AtTimeOfDay pins an "HH:mm" clock string onto day's calendar date, in
// day's location.
func AtTimeOfDay(day time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}
