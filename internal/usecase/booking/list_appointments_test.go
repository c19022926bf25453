package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/sharpcut-app/booking-api/internal/domain/booking"
)

func TestListClientAppointments_SplitsUpcomingAndHistory(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	upcoming := repo.addAppointment(confirmedAppointment(date, "10:00", "10:30"))

	past := confirmedAppointment(date.AddDate(0, 0, -60), "10:00", "10:30")
	pastStored := repo.addAppointment(past)

	cancelled := confirmedAppointment(date, "11:00", "11:30")
	cancelled.Status = string(domain.StatusCancelled)
	cancelledStored := repo.addAppointment(cancelled)

	out, err := NewListClientAppointments(repo).Execute(context.Background(), testClientID)
	require.NoError(t, err)

	require.Len(t, out.Upcoming, 1)
	assert.Equal(t, upcoming.ID, out.Upcoming[0].ID)

	require.Len(t, out.History, 2)
	historyIDs := []uint{out.History[0].ID, out.History[1].ID}
	assert.Contains(t, historyIDs, pastStored.ID)
	assert.Contains(t, historyIDs, cancelledStored.ID)
}

func TestListClientAppointments_OnlyOwnBookings(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	other := confirmedAppointment(date, "10:00", "10:30")
	other.ClientID = testClientID + 1
	repo.addAppointment(other)

	out, err := NewListClientAppointments(repo).Execute(context.Background(), testClientID)
	require.NoError(t, err)

	assert.Empty(t, out.Upcoming)
	assert.Empty(t, out.History)
}

func TestListBarberDay_OrderedByStart(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	repo.addAppointment(confirmedAppointment(date, "11:00", "11:30"))
	repo.addAppointment(confirmedAppointment(date, "09:00", "09:30"))
	repo.addAppointment(confirmedAppointment(date, "10:00", "10:30"))

	items, err := NewListBarberDay(repo).Execute(context.Background(), testBarberID, date)
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "09:00", items[0].StartTime.Format("15:04"))
	assert.Equal(t, "10:00", items[1].StartTime.Format("15:04"))
	assert.Equal(t, "11:00", items[2].StartTime.Format("15:04"))
}

func TestListBarberDay_ExcludesOtherDays(t *testing.T) {
	repo := newFakeRepo()
	date := futureDate()
	setupShop(repo, date)

	repo.addAppointment(confirmedAppointment(date, "10:00", "10:30"))
	repo.addAppointment(confirmedAppointment(date.AddDate(0, 0, 1), "10:00", "10:30"))

	items, err := NewListBarberDay(repo).Execute(context.Background(), testBarberID, date)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
