package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/audit"
	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/events"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// Book is the booking arbiter: it validates the request against the same
// rules the availability grid uses, then hands the atomic check-and-insert
// to the repository. Two concurrent calls for overlapping intervals on the
// same barber are serialized there; exactly one wins, the other gets
// time_conflict.
type Book struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events *events.Publisher
}

func NewBook(
	repo domain.Repository,
	audit *audit.Dispatcher,
	events *events.Publisher,
) *Book {
	return &Book{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
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

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(settings.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	if err := checkWindow(ctx, uc.repo, settings, in.BarberID, start, end); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		Code:      uuid.NewString(),
		BarberID:  in.BarberID,
		ClientID:  in.ClientID,
		ServiceID: service.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateIfNoOverlap(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.events.Publish(events.BookingEvent{
		Type:          events.TypeConfirmed,
		AppointmentID: ap.ID,
		Code:          ap.Code,
		BarberID:      ap.BarberID,
		ClientID:      ap.ClientID,
		StartTime:     ap.StartTime,
	})

	return ap, nil
}

// checkWindow applies the advisory rules shared by Book and Reschedule:
// minimum advance, then the barber's working window. Overlap with other
// appointments is deliberately NOT checked here -- that belongs to the
// atomic section in the repository.
func checkWindow(
	ctx context.Context,
	repo domain.Repository,
	settings *models.ShopSettings,
	barberID uint,
	start time.Time,
	end time.Time,
) error {

	minAdvance := settings.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := timezone.NowIn(settings.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	wh, err := repo.GetWorkingHours(ctx, barberID, int(start.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness(httperr.CodeInvalidSlot)
		}
		return err
	}
	if !domain.WithinWorkingHours(wh, start, end) {
		return httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	// The start must sit on the grid the availability view emits: whole
	// service-duration steps from the day's opening. An off-grid booking
	// would fragment every surrounding slot.
	duration := end.Sub(start)
	dayStart := domain.AtTimeOfDay(start, wh.StartTime)
	if duration <= 0 || start.Sub(dayStart)%duration != 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	return nil
}
