package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharpcut-app/booking-api/internal/audit"
	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

type Complete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewComplete(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Complete {
	return &Complete{
		repo:  repo,
		audit: audit,
	}
}

// Execute marks an appointment done. Only the appointment's own barber may
// complete it.
func (uc *Complete) Execute(
	ctx context.Context,
	appointmentID uint,
	barberUserID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	barber, err := uc.repo.GetBarberByID(ctx, ap.BarberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeForbidden)
		}
		return nil, err
	}
	if barber.UserID == nil || *barber.UserID != barberUserID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(settings.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap, string(domain.StatusConfirmed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barberUserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
