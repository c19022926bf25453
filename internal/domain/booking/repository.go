package booking

import (
	"context"
	"time"

	"github.com/sharpcut-app/booking-api/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetSettings(
		ctx context.Context,
	) (*models.ShopSettings, error)

	// -------- Barber --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Working hours --------
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Appointment (create / conflict) --------

	// CreateIfNoOverlap is the atomic check-and-insert: inside one
	// transaction it locks the barber's confirmed rows in the window,
	// verifies no overlap, and inserts. Overlap (detected by the check or by
	// the exclusion constraint at commit) returns the time_conflict business
	// error.
	CreateIfNoOverlap(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleIfNoOverlap cancels original and inserts replacement as one
	// transaction; original's own interval does not count as a conflict. On
	// any failure the original is left untouched.
	RescheduleIfNoOverlap(
		ctx context.Context,
		original *models.Appointment,
		replacement *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// UpdateAppointmentStatus persists ap's status transition only if the
	// stored row is still in the expected status. A concurrent transition
	// that committed first wins; the loser gets the business error matching
	// the row's current state, so a cancelled row can never be resurrected.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		expected string,
	) error

	// -------- Listings --------
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)
}
