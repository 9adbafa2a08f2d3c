package appointments

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrServiceNotFound     = errors.New("service item not found")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrNotCancellable      = errors.New("appointment can no longer be cancelled")
	ErrDoubleBooking       = errors.New("another appointment already starts at that time")
)
