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

type RescheduleInput struct {
	AppointmentID uint
	RequesterID   uint
	RequesterRole string

	Date string // YYYY-MM-DD
	Time string // HH:mm
}

// Reschedule moves an appointment to a new interval as one logical
// transaction: cancel-then-rebook, both legs or neither. A conflict on the
// new interval leaves the original confirmed.
type Reschedule struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events *events.Publisher
}

func NewReschedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
	events *events.Publisher,
) *Reschedule {
	return &Reschedule{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	original, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	if err := authorize(ctx, uc.repo, original, in.RequesterID, in.RequesterRole); err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(original.Status)); err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, original.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return nil, err
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

	if err := checkWindow(ctx, uc.repo, settings, original.BarberID, start, end); err != nil {
		return nil, err
	}

	replacement := &models.Appointment{
		Code:      uuid.NewString(),
		BarberID:  original.BarberID,
		ClientID:  original.ClientID,
		ServiceID: original.ServiceID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     original.Notes,
	}

	if err := uc.repo.RescheduleIfNoOverlap(ctx, original, replacement); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.RequesterID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &replacement.ID,
		Metadata: map[string]any{"previous_id": original.ID},
	})

	uc.events.Publish(events.BookingEvent{
		Type:          events.TypeRescheduled,
		AppointmentID: replacement.ID,
		Code:          replacement.Code,
		BarberID:      replacement.BarberID,
		ClientID:      replacement.ClientID,
		StartTime:     replacement.StartTime,
	})

	return replacement, nil
}
