package repairorders

import "errors"

var (
	ErrOrderNotFound       = errors.New("repair order not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvalidStatus       = errors.New("invalid repair order status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrInvalidLine         = errors.New("invalid line item")
	ErrOrderClosed         = errors.New("repair order is closed")
)
