package vehicles

import "errors"

var (
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrCustomerNotFound = errors.New("customer not found")
)
