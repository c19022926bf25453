package httperr

import "errors"

// Business error codes shared between use cases and handlers.
const (
	CodeBarberNotFound      = "barber_not_found"
	CodeServiceNotFound     = "service_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeInvalidSlot         = "invalid_slot"
	CodeTimeConflict        = "time_conflict"
	CodeForbidden           = "forbidden"
	CodeAlreadyCancelled    = "already_cancelled"
	CodeInvalidState        = "invalid_state"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
