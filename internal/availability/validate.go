package availability

import "fmt"

// Range limits for persisted rules. Checked on write, not on read, so
// legacy rows outside the ranges still generate slots. The generator
// keeps only the guards it needs to terminate.
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 240
	MinAdvanceDays         = 1
	MaxAdvanceDays         = 365
	MinNoticeHours         = 0
	MaxNoticeHours         = 168
)

// ValidateRules checks a rules update before it is persisted. The
// first violation rejects the whole update; nothing is partially
// saved.
func ValidateRules(r *Rules) error {
	if r.SlotDurationMinutes < MinSlotDurationMinutes || r.SlotDurationMinutes > MaxSlotDurationMinutes {
		return &ValidationError{
			Field:   "slotDurationMinutes",
			Message: fmt.Sprintf("must be between %d and %d minutes", MinSlotDurationMinutes, MaxSlotDurationMinutes),
		}
	}
	if r.MaxAdvanceBookingDays < MinAdvanceDays || r.MaxAdvanceBookingDays > MaxAdvanceDays {
		return &ValidationError{
			Field:   "maxAdvanceBookingDays",
			Message: fmt.Sprintf("must be between %d and %d days", MinAdvanceDays, MaxAdvanceDays),
		}
	}
	if r.MinAdvanceBookingHours < MinNoticeHours || r.MinAdvanceBookingHours > MaxNoticeHours {
		return &ValidationError{
			Field:   "minAdvanceBookingHours",
			Message: fmt.Sprintf("must be between %d and %d hours", MinNoticeHours, MaxNoticeHours),
		}
	}
	if r.BufferMinutes < 0 {
		return &ValidationError{Field: "bufferMinutes", Message: "must not be negative"}
	}

	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		sched := r.WeeklySchedule[day]
		if sched == nil || !sched.IsOpen {
			continue
		}
		if _, err := parseClock(sched.OpenTime); err != nil {
			return &ValidationError{
				Field:   day + ".openTime",
				Message: fmt.Sprintf("%q is not a valid HH:mm time", sched.OpenTime),
			}
		}
		if _, err := parseClock(sched.CloseTime); err != nil {
			return &ValidationError{
				Field:   day + ".closeTime",
				Message: fmt.Sprintf("%q is not a valid HH:mm time", sched.CloseTime),
			}
		}
		for i, b := range sched.Breaks {
			if _, err := parseClock(b.StartTime); err != nil {
				return &ValidationError{
					Field:   fmt.Sprintf("%s.breaks[%d].startTime", day, i),
					Message: fmt.Sprintf("%q is not a valid HH:mm time", b.StartTime),
				}
			}
			if _, err := parseClock(b.EndTime); err != nil {
				return &ValidationError{
					Field:   fmt.Sprintf("%s.breaks[%d].endTime", day, i),
					Message: fmt.Sprintf("%q is not a valid HH:mm time", b.EndTime),
				}
			}
		}
	}

	return nil
}
