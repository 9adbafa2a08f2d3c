package availability

import (
	"fmt"
	"time"
)

// Closed-day reasons shown on the booking calendar widget.
const (
	ReasonClosed        = "Closed"
	ReasonHoliday       = "Closed - Holiday"
	ReasonSpecialClosed = "Closed - Special Date"
)

// CalendarDay is one cell of the monthly booking calendar.
type CalendarDay struct {
	Date            string `json:"date"`
	DayOfMonth      int    `json:"day_of_month"`
	DayOfWeek       string `json:"day_of_week"`
	IsOpen          bool   `json:"is_open"`
	IsToday         bool   `json:"is_today"`
	IsPast          bool   `json:"is_past"`
	HasAvailability bool   `json:"has_availability"`
	AvailableSlots  int    `json:"available_slots"`
	Reason          string `json:"reason,omitempty"`
}

// CalendarMonth is the aggregated month view.
type CalendarMonth struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	MonthName string        `json:"month_name"`
	Days      []CalendarDay `json:"days"`
}

// BuildCalendarMonth walks every day of the month and reports whether
// the shop is open and, when a service duration is supplied
// (serviceDurationMinutes > 0), how many slots the generator would
// offer. Closed-date membership outranks special dates, which outrank
// the weekly schedule.
func BuildCalendarMonth(year, month int, rules *Rules, serviceDurationMinutes int, appointments []time.Time, now time.Time) (*CalendarMonth, error) {
	if month < 1 || month > 12 {
		return nil, &ValidationError{Field: "month", Message: fmt.Sprintf("must be between 1 and 12, got %d", month)}
	}
	if year < 1 {
		return nil, &ValidationError{Field: "year", Message: fmt.Sprintf("must be positive, got %d", year)}
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out := &CalendarMonth{
		Year:      year,
		Month:     month,
		MonthName: first.Month().String(),
		Days:      make([]CalendarDay, 0, 31),
	}

	for date := first; date.Month() == first.Month(); date = date.AddDate(0, 0, 1) {
		isOpen := true
		reason := ""

		switch {
		case rules.IsClosedDate(date):
			isOpen = false
			reason = ReasonHoliday
		case rules.SpecialDateFor(date) != nil:
			if !rules.SpecialDateFor(date).IsOpen {
				isOpen = false
				reason = ReasonSpecialClosed
			}
		default:
			day := rules.ScheduleFor(date.Weekday())
			if day == nil || !day.IsOpen {
				isOpen = false
				reason = ReasonClosed
			}
		}

		isPast := date.Before(today)
		isToday := date.Equal(today)

		count := 0
		if isOpen && !isPast && serviceDurationMinutes > 0 {
			slots, err := GenerateTimeSlots(date, serviceDurationMinutes, rules, appointments, now)
			if err != nil {
				return nil, err
			}
			count = len(slots)
		}

		out.Days = append(out.Days, CalendarDay{
			Date:            date.Format(dateFormat),
			DayOfMonth:      date.Day(),
			DayOfWeek:       date.Weekday().String(),
			IsOpen:          isOpen,
			IsToday:         isToday,
			IsPast:          isPast,
			HasAvailability: count > 0,
			AvailableSlots:  count,
			Reason:          reason,
		})
	}

	return out, nil
}
