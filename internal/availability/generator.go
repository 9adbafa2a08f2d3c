package availability

import (
	"time"
)

// Existing appointments block a fixed 60-minute window starting at
// their scheduled time, regardless of the service they reference.
const conflictWindow = 60 * time.Minute

// TimeSlot is one bookable window. Only available slots are emitted,
// so IsAvailable is always true on generated values; the field exists
// for the wire shape.
type TimeSlot struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

// GenerateTimeSlots returns the ordered bookable windows on date for a
// service of the given duration. appointments are the scheduled start
// instants of the tenant's existing appointments; entries on other
// days are harmless. now is injected so callers and tests control the
// advance-notice comparisons.
//
// Candidate starts are walked from the day's open time in steps of
// slotDuration+buffer; a candidate is kept when it respects the
// advance-booking bounds and overlaps neither an existing appointment
// nor a break window.
func GenerateTimeSlots(date time.Time, serviceDurationMinutes int, rules *Rules, appointments []time.Time, now time.Time) ([]TimeSlot, error) {
	if serviceDurationMinutes <= 0 {
		return nil, &ValidationError{Field: "durationMinutes", Message: "must be positive"}
	}
	if rules.SlotDurationMinutes <= 0 {
		return nil, &ValidationError{Field: "slotDurationMinutes", Message: "must be positive"}
	}
	// A negative buffer could drive the candidate step to zero or
	// below and the walk would never terminate. Stored blobs bypass
	// write-time validation, so the guard lives here too.
	if rules.BufferMinutes < 0 {
		return nil, &ValidationError{Field: "bufferMinutes", Message: "must not be negative"}
	}

	day := rules.ScheduleFor(date.Weekday())
	if day == nil || !day.IsOpen {
		return []TimeSlot{}, nil
	}
	if rules.IsClosedDate(date) {
		return []TimeSlot{}, nil
	}

	// A special date with isOpen=true overrides the weekly window and
	// breaks. One with isOpen=false is deliberately ignored here; only
	// the calendar view reports it as closed.
	resolved := day
	if sp := rules.SpecialDateFor(date); sp != nil && sp.IsOpen {
		resolved = sp
	}

	open, err := clockOnDate(date, resolved.OpenTime, DefaultOpenTime, "openTime")
	if err != nil {
		return nil, err
	}
	close, err := clockOnDate(date, resolved.CloseTime, DefaultCloseTime, "closeTime")
	if err != nil {
		return nil, err
	}

	breaks, err := resolveBreaks(date, resolved.Breaks)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(serviceDurationMinutes) * time.Minute
	step := time.Duration(rules.SlotDurationMinutes+rules.BufferMinutes) * time.Minute
	earliest := now.Add(time.Duration(rules.MinAdvanceBookingHours) * time.Hour)
	latest := now.AddDate(0, 0, rules.MaxAdvanceBookingDays)

	lastStart := close.Add(-duration)
	slots := make([]TimeSlot, 0)

	for start := open; !start.After(lastStart); start = start.Add(step) {
		end := start.Add(duration)

		if start.Before(earliest) {
			continue
		}
		if start.After(latest) {
			// Starts only grow from here, the rest of the day is moot.
			break
		}
		if overlapsAppointment(start, end, appointments) {
			continue
		}
		if overlapsBreak(start, end, breaks) {
			continue
		}

		slots = append(slots, TimeSlot{StartTime: start, EndTime: end, IsAvailable: true})
	}

	return slots, nil
}

type window struct {
	start time.Time
	end   time.Time
}

func resolveBreaks(date time.Time, breaks []BreakWindow) ([]window, error) {
	if len(breaks) == 0 {
		return nil, nil
	}
	out := make([]window, 0, len(breaks))
	for _, b := range breaks {
		start, err := clockOnDate(date, b.StartTime, "", "break startTime")
		if err != nil {
			return nil, err
		}
		end, err := clockOnDate(date, b.EndTime, "", "break endTime")
		if err != nil {
			return nil, err
		}
		out = append(out, window{start: start, end: end})
	}
	return out, nil
}

func overlapsAppointment(start, end time.Time, appointments []time.Time) bool {
	for _, at := range appointments {
		if at.Before(end) && at.Add(conflictWindow).After(start) {
			return true
		}
	}
	return false
}

func overlapsBreak(start, end time.Time, breaks []window) bool {
	for _, b := range breaks {
		if b.start.Before(end) && b.end.After(start) {
			return true
		}
	}
	return false
}

// clockOnDate anchors an "HH:mm" value on the given calendar date. An
// empty value falls back to def; an empty def means the value is
// required and the error is typed.
func clockOnDate(date time.Time, value, def, field string) (time.Time, error) {
	if value == "" {
		if def == "" {
			return time.Time{}, &TimeParseError{Field: field, Value: value}
		}
		value = def
	}
	t, err := parseClock(value)
	if err != nil {
		return time.Time{}, &TimeParseError{Field: field, Value: value}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// parseClock accepts strict two-digit "HH:mm" only; time.Parse alone
// would also take "8:00".
func parseClock(value string) (time.Time, error) {
	if len(value) != 5 || value[2] != ':' {
		return time.Time{}, &TimeParseError{Value: value}
	}
	return time.Parse(clockFormat, value)
}
