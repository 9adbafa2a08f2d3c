package availability

import "fmt"

// TimeParseError reports a schedule field that does not hold a strict
// "HH:mm" clock value.
type TimeParseError struct {
	Field string
	Value string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid time %q for %s: expected HH:mm", e.Value, e.Field)
}

// ValidationError reports a rules update rejected before persisting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
