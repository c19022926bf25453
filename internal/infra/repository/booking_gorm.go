package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *BookingGormRepository) GetSettings(
	ctx context.Context,
) (*models.ShopSettings, error) {

	var settings models.ShopSettings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// --------------------------------------------------
// Barber / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

// --------------------------------------------------
// Appointment (atomic create)
// --------------------------------------------------

// CreateIfNoOverlap locks the barber's conflicting confirmed rows FOR
// UPDATE, so a concurrent attempt on an overlapping interval blocks until
// this transaction commits and then sees the new row. The exclusion
// constraint catches the remaining window where both transactions saw zero
// rows to lock.
func (r *BookingGormRepository) CreateIfNoOverlap(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status = ? AND start_time < ? AND end_time > ?",
				ap.BarberID,
				string(domain.StatusConfirmed),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return tx.Create(ap).Error
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
		return err
	}

	return nil
}

// RescheduleIfNoOverlap runs cancel-then-rebook as one transaction. The
// original row is locked and cancelled before the overlap check, so its own
// interval never counts against the replacement.
func (r *BookingGormRepository) RescheduleIfNoOverlap(
	ctx context.Context,
	original *models.Appointment,
	replacement *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, original.ID).Error; err != nil {
			return err
		}

		if current.Status != string(domain.StatusConfirmed) {
			return httperr.ErrBusiness(httperr.CodeInvalidState)
		}

		now := time.Now()
		if err := tx.Model(&current).Updates(map[string]any{
			"status":       string(domain.StatusCancelled),
			"cancelled_at": &now,
		}).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status = ? AND id <> ? AND start_time < ? AND end_time > ?",
				replacement.BarberID,
				string(domain.StatusConfirmed),
				original.ID,
				replacement.EndTime,
				replacement.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return tx.Create(replacement).Error
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
		return err
	}

	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

// UpdateAppointmentStatus is a compare-and-set on the status column. Zero
// rows affected means the row moved under us (or is gone); the stored state
// decides which error the caller sees.
func (r *BookingGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	expected string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, expected).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var current models.Appointment
		if err := r.db.WithContext(ctx).First(&current, ap.ID).Error; err != nil {
			return err
		}
		return lostTransitionError(ap.Status, current.Status)
	}

	return nil
}

// lostTransitionError maps a lost status race to the error the caller's
// intended transition implies.
func lostTransitionError(target, current string) error {
	var err error
	if target == string(domain.StatusCancelled) {
		err = domain.CanCancel(domain.Status(current))
	} else {
		err = domain.CanComplete(domain.Status(current))
	}
	if err != nil {
		return err
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"barber_id = ? AND status = ? AND start_time < ? AND end_time > ?",
			barberID, string(domain.StatusConfirmed), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Barber").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Preload("Client").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
