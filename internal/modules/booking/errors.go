package booking

import "errors"

var (
	ErrTenantNotFound  = errors.New("shop not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrNotBookable     = errors.New("service is not bookable online")
	ErrInvalidDate     = errors.New("invalid date")
	ErrSlotUnavailable = errors.New("requested slot is not available")
	ErrDoubleBooking   = errors.New("slot was just taken")
)
