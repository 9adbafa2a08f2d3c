package appointments

import (
	"errors"

	"autoshop/internal/availability"
)

func isAvailabilityInputError(err error) bool {
	var verr *availability.ValidationError
	return errors.As(err, &verr)
}
