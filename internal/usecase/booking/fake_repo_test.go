package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/models"
	"github.com/sharpcut-app/booking-api/internal/timezone"
)

// errBoom stands in for a broken database connection.
var errBoom = errors.New("connection refused")

type whKey struct {
	barberID uint
	weekday  int
}

// fakeRepo is an in-memory stand-in for the gorm repository. It reproduces
// the same contract: CreateIfNoOverlap and RescheduleIfNoOverlap are atomic
// under a single mutex, and listings only count confirmed rows where the real
// queries do.
type fakeRepo struct {
	mu sync.Mutex

	settings     models.ShopSettings
	barbers      map[uint]models.Barber
	services     map[uint]models.Service
	workingHours map[whKey]models.WorkingHours
	appointments map[uint]*models.Appointment

	nextID uint

	// Injected failures, emulating a broken connection.
	failBarbers      error
	failServices     error
	failHours        error
	failAppointments error

	// afterGet fires once after the next GetAppointmentByID, emulating a
	// concurrent writer that slips in between read and update.
	afterGet func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		settings: models.ShopSettings{
			ID:                1,
			Name:              "SharpCut",
			Timezone:          timezone.DefaultTimezone,
			MinAdvanceMinutes: 60,
		},
		barbers:      map[uint]models.Barber{},
		services:     map[uint]models.Service{},
		workingHours: map[whKey]models.WorkingHours{},
		appointments: map[uint]*models.Appointment{},
	}
}

// -------- fixtures --------

func (f *fakeRepo) addBarber(b models.Barber) {
	f.barbers[b.ID] = b
}

func (f *fakeRepo) addService(s models.Service) {
	f.services[s.ID] = s
}

func (f *fakeRepo) setHours(barberID uint, weekday int, wh models.WorkingHours) {
	wh.BarberID = barberID
	wh.Weekday = weekday
	f.workingHours[whKey{barberID, weekday}] = wh
}

func (f *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	ap.ID = f.nextID
	f.appointments[ap.ID] = &ap
	return &ap
}

// -------- domain.Repository --------

func (f *fakeRepo) GetSettings(ctx context.Context) (*models.ShopSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeRepo) GetBarberByID(ctx context.Context, id uint) (*models.Barber, error) {
	if f.failBarbers != nil {
		return nil, f.failBarbers
	}
	b, ok := f.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	if f.failServices != nil {
		return nil, f.failServices
	}
	s, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (f *fakeRepo) GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	if f.failHours != nil {
		return nil, f.failHours
	}
	wh, ok := f.workingHours[whKey{barberID, weekday}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &wh, nil
}

func (f *fakeRepo) CreateIfNoOverlap(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hasOverlapLocked(ap.BarberID, ap.StartTime, ap.EndTime, 0) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	f.nextID++
	ap.ID = f.nextID

	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) RescheduleIfNoOverlap(ctx context.Context, original, replacement *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.appointments[original.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	if current.Status != string(domain.StatusConfirmed) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	if f.hasOverlapLocked(replacement.BarberID, replacement.StartTime, replacement.EndTime, original.ID) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	now := time.Now()
	current.Status = string(domain.StatusCancelled)
	current.CancelledAt = &now

	f.nextID++
	replacement.ID = f.nextID

	stored := *replacement
	f.appointments[replacement.ID] = &stored
	return nil
}

func (f *fakeRepo) hasOverlapLocked(barberID uint, start, end time.Time, excludeID uint) bool {
	for _, ap := range f.appointments {
		if ap.ID == excludeID || ap.BarberID != barberID {
			continue
		}
		if ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	if f.failAppointments != nil {
		return nil, f.failAppointments
	}

	f.mu.Lock()
	ap, ok := f.appointments[id]
	if !ok {
		f.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	out := *ap
	f.mu.Unlock()

	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil
		hook()
	}

	return &out, nil
}

func (f *fakeRepo) UpdateAppointmentStatus(ctx context.Context, ap *models.Appointment, expected string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.appointments[ap.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	if current.Status != expected {
		var err error
		if ap.Status == string(domain.StatusCancelled) {
			err = domain.CanCancel(domain.Status(current.Status))
		} else {
			err = domain.CanComplete(domain.Status(current.Status))
		}
		if err != nil {
			return err
		}
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) forceStatus(id uint, status domain.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments[id].Status = string(status)
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID || ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}

	sortByStart(out)
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}

	sortByStart(out)
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClientID == clientID {
			out = append(out, *ap)
		}
	}

	sortByStart(out)
	return out, nil
}

func sortByStart(apps []models.Appointment) {
	for i := 1; i < len(apps); i++ {
		for j := i; j > 0 && apps[j].StartTime.Before(apps[j-1].StartTime); j-- {
			apps[j], apps[j-1] = apps[j-1], apps[j]
		}
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

// -------- shared fixtures --------

const (
	testBarberID  = uint(1)
	testServiceID = uint(1)
	testClientID  = uint(10)
)

// futureDate returns a date far enough ahead that the default minimum
// advance never interferes, at midnight in the shop timezone.
func futureDate() time.Time {
	loc := timezone.Location(timezone.DefaultTimezone)
	d := time.Now().In(loc).AddDate(0, 0, 30)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// setupShop wires one active barber working 09:00-12:00 on date's weekday
// and one active 30-minute service.
func setupShop(repo *fakeRepo, date time.Time) {
	repo.addBarber(models.Barber{ID: testBarberID, Name: "Marco", Active: true})
	repo.addService(models.Service{ID: testServiceID, Name: "Classic Cut", DurationMin: 30, Active: true})
	repo.setHours(testBarberID, int(date.Weekday()), models.WorkingHours{
		Active:    true,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
}

func confirmedAppointment(date time.Time, startHM, endHM string) models.Appointment {
	return models.Appointment{
		Code:      "test-code",
		BarberID:  testBarberID,
		ClientID:  testClientID,
		ServiceID: testServiceID,
		StartTime: domain.AtTimeOfDay(date, startHM),
		EndTime:   domain.AtTimeOfDay(date, endHM),
		Status:    string(domain.StatusConfirmed),
	}
}
