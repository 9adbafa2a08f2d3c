package booking

import (
	"errors"

	"autoshop/internal/availability"
)

// isAvailabilityInputError reports whether the error came from invalid
// caller input to the availability core (bad month, bad duration) as
// opposed to broken stored configuration.
func isAvailabilityInputError(err error) bool {
	var verr *availability.ValidationError
	return errors.As(err, &verr)
}
