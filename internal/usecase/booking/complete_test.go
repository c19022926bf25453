package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
	"github.com/sharpcut-app/booking-api/internal/httperr"
	"github.com/sharpcut-app/booking-api/internal/models"
)

func TestComplete_ByOwnBarber(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	barberUserID := uint(42)
	repo.addBarber(models.Barber{ID: testBarberID, Name: "Marco", Active: true, UserID: &barberUserID})

	ap := repo.addAppointment(confirmedAppointment(date, "10:00", "10:30"))

	out, err := NewComplete(repo, nil).Execute(context.Background(), ap.ID, barberUserID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), out.Status)
	require.NotNil(t, out.CompletedAt)

	stored, err := repo.GetAppointmentByID(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
}

func TestComplete_OtherBarberForbidden(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	barberUserID := uint(42)
	repo.addBarber(models.Barber{ID: testBarberID, Name: "Marco", Active: true, UserID: &barberUserID})

	ap := repo.addAppointment(confirmedAppointment(date, "10:00", "10:30"))

	_, err := NewComplete(repo, nil).Execute(context.Background(), ap.ID, barberUserID+1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

func TestComplete_CancelledAppointment(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	barberUserID := uint(42)
	repo.addBarber(models.Barber{ID: testBarberID, Name: "Marco", Active: true, UserID: &barberUserID})

	ap := confirmedAppointment(date, "10:00", "10:30")
	ap.Status = string(domain.StatusCancelled)
	stored := repo.addAppointment(ap)

	_, err := NewComplete(repo, nil).Execute(context.Background(), stored.ID, barberUserID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestComplete_Twice(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	barberUserID := uint(42)
	repo.addBarber(models.Barber{ID: testBarberID, Name: "Marco", Active: true, UserID: &barberUserID})

	ap := repo.addAppointment(confirmedAppointment(date, "10:00", "10:30"))

	uc := NewComplete(repo, nil)

	_, err := uc.Execute(context.Background(), ap.ID, barberUserID)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ap.ID, barberUserID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestComplete_LosesRaceToCancel(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	barberUserID := uint(42)
	repo.addBarber(models.Barber{ID: testBarberID, Name: "Marco", Active: true, UserID: &barberUserID})

	ap := repo.addAppointment(confirmedAppointment(date, "10:00", "10:30"))

	// The client cancels between our read and our write. The cancellation
	// must stick; the row may not come back as completed.
	repo.afterGet = func() {
		repo.forceStatus(ap.ID, domain.StatusCancelled)
	}

	_, err := NewComplete(repo, nil).Execute(context.Background(), ap.ID, barberUserID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	stored, err := repo.GetAppointmentByID(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
}

func TestComplete_NotFound(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	_, err := NewComplete(repo, nil).Execute(context.Background(), 999, 42)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}
