package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/audit"
	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/events"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

type Cancel struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events *events.Publisher
}

func NewCancel(
	repo domain.Repository,
	audit *audit.Dispatcher,
	events *events.Publisher,
) *Cancel {
	return &Cancel{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	appointmentID uint,
	requesterID uint,
	requesterRole string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	if err := authorize(ctx, uc.repo, ap, requesterID, requesterRole); err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(settings.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	// Conditional on the row still being confirmed; a concurrent transition
	// that committed first wins and surfaces as its business error.
	if err := uc.repo.UpdateAppointmentStatus(ctx, ap, string(domain.StatusConfirmed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.events.Publish(events.BookingEvent{
		Type:          events.TypeCancelled,
		AppointmentID: ap.ID,
		Code:          ap.Code,
		BarberID:      ap.BarberID,
		ClientID:      ap.ClientID,
		StartTime:     ap.StartTime,
	})

	return ap, nil
}

// authorize allows the owning client, the appointment's barber (via the
// linked account) and admins to act on an appointment.
func authorize(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
	requesterID uint,
	requesterRole string,
) error {

	if requesterRole == "admin" || ap.ClientID == requesterID {
		return nil
	}

	if requesterRole == "barber" {
		barber, err := repo.GetBarberByID(ctx, ap.BarberID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && barber.UserID != nil && *barber.UserID == requesterID {
			return nil
		}
	}

	return httperr.ErrBusiness(httperr.CodeForbidden)
}
