package booking

import (
	"context"
	"time"

	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/dto"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

// ======================================================
// BARBER DAY VIEW
// ======================================================

type ListBarberDay struct {
	repo domain.Repository
}

func NewListBarberDay(repo domain.Repository) *ListBarberDay {
	return &ListBarberDay{repo: repo}
}

func (uc *ListBarberDay) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		date.Location(),
	)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(ap))
	}

	return out, nil
}

// ======================================================
// CLIENT VIEW (upcoming / history)
// ======================================================

type ListClientAppointments struct {
	repo domain.Repository
}

func NewListClientAppointments(repo domain.Repository) *ListClientAppointments {
	return &ListClientAppointments{repo: repo}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID uint,
) (*dto.ClientAppointmentsDTO, error) {

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(settings.Timezone)

	out := &dto.ClientAppointmentsDTO{
		Upcoming: []dto.AppointmentListDTO{},
		History:  []dto.AppointmentListDTO{},
	}

	for _, ap := range appointments {
		item := toListDTO(ap)

		// Cancelled and completed bookings belong to history regardless of
		// their start time.
		if ap.Status == string(domain.StatusConfirmed) && ap.StartTime.After(now) {
			out.Upcoming = append(out.Upcoming, item)
		} else {
			out.History = append(out.History, item)
		}
	}

	return out, nil
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	return dto.AppointmentListDTO{
		ID:          ap.ID,
		Code:        ap.Code,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Status:      ap.Status,
		BarberName:  ap.Barber.Name,
		ClientName:  ap.Client.Name,
		ServiceName: ap.Service.Name,
	}
}
