package booking

import "github.com/sharpcut-app/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Transitions
// ===============================

// CanCancel: only confirmed appointments may be cancelled. Cancelled and
// completed are terminal.
func CanCancel(current Status) error {
	switch current {
	case StatusConfirmed:
		return nil
	case StatusCancelled:
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled)
	default:
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// InitialStatus: bookings are confirmed on creation. There is no pending
// state because no payment-capture step exists.
func InitialStatus() Status {
	return StatusConfirmed
}
