package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute builds the booking grid for one barber, one service, one date.
// Slots step through the working window in service-duration increments; a
// trailing window too short for the service is dropped. Every slot is
// emitted, with Available=false when it collides with a confirmed
// appointment, the lunch break, or the minimum booking advance. The result
// is a snapshot: Book re-validates at commit time.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return nil, err
	}
	if !service.Active {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return nil, err
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	weekday := int(in.Date.Weekday())

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, weekday)
	if err != nil {
		// Only a missing template means day off; a storage failure must not
		// masquerade as an empty grid.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []domain.Slot{}, nil
		}
		return nil, err
	}
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return []domain.Slot{}, nil
	}

	dayStart := domain.AtTimeOfDay(in.Date, wh.StartTime)
	dayEnd := domain.AtTimeOfDay(in.Date, wh.EndTime)

	hasLunch := wh.LunchStart != "" && wh.LunchEnd != ""
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = domain.AtTimeOfDay(in.Date, wh.LunchStart)
		lunchEnd = domain.AtTimeOfDay(in.Date, wh.LunchEnd)
	}

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.BarberID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	minAdvance := settings.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}
	earliest := timezone.NowIn(settings.Timezone).
		Add(time.Duration(minAdvance) * time.Minute)

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	var slots []domain.Slot

	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		// Appointments are ordered by start; skip ones that ended before
		// this slot so each is visited at most once.
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		if apIdx < len(appointments) {
			ap := appointments[apIdx]
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
			}
		}

		inLunch := hasLunch && domain.Overlaps(slotStart, slotEnd, lunchStart, lunchEnd)
		tooSoon := slotStart.Before(earliest)

		slots = append(slots, domain.Slot{
			StartTime: slotStart,
			EndTime:   slotEnd,
			Available: !conflict && !inLunch && !tooSoon,
		})
	}

	return slots, nil
}
