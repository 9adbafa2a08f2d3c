// Package availability holds the booking-availability core: tenant
// scheduling rules, the time-slot generator and the monthly calendar
// aggregator. Everything in here is pure computation over values the
// caller fetched; nothing reads the clock or the database.
package availability

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// SchemaVersion is the current serialization version of Rules.
	SchemaVersion = 1

	DefaultOpenTime  = "08:00"
	DefaultCloseTime = "17:00"

	clockFormat = "15:04"
	dateFormat  = "2006-01-02"
)

// BreakWindow is a within-day pause (lunch etc.) during which no slot
// may be offered.
type BreakWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DaySchedule describes one weekday (or one special date) of the shop
// schedule. OpenTime/CloseTime are "HH:mm"; when empty on an open day
// the defaults 08:00/17:00 apply.
type DaySchedule struct {
	IsOpen    bool          `json:"isOpen"`
	OpenTime  string        `json:"openTime,omitempty"`
	CloseTime string        `json:"closeTime,omitempty"`
	Breaks    []BreakWindow `json:"breaks,omitempty"`
}

// Rules is the per-tenant availability configuration. It is stored as
// a JSON blob on the tenant row and parsed exactly once, at the
// repository boundary. The generator and aggregator treat it as
// read-only.
type Rules struct {
	SchemaVersion int `json:"schemaVersion"`

	// Advisory only; slot arithmetic is done in naive local time.
	Timezone string `json:"timezone,omitempty"`

	// Keyed by lowercase weekday name ("monday".."sunday"). A missing
	// key means closed that weekday.
	WeeklySchedule map[string]*DaySchedule `json:"weeklySchedule"`

	// Dates ("yyyy-MM-dd") unconditionally closed, e.g. holidays.
	ClosedDates []string `json:"closedDates,omitempty"`

	// Per-date schedule overrides ("yyyy-MM-dd" keys).
	SpecialDates map[string]*DaySchedule `json:"specialDates,omitempty"`

	SlotDurationMinutes    int `json:"slotDurationMinutes"`
	BufferMinutes          int `json:"bufferMinutes"`
	MinAdvanceBookingHours int `json:"minAdvanceBookingHours"`
	MaxAdvanceBookingDays  int `json:"maxAdvanceBookingDays"`
}

// DefaultRules returns the configuration new tenants start with:
// Mon-Fri 08:00-17:00, 30-minute slots, 2 hours notice, 30 days out.
func DefaultRules() *Rules {
	weekly := make(map[string]*DaySchedule, 7)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		weekly[day] = &DaySchedule{IsOpen: true, OpenTime: DefaultOpenTime, CloseTime: DefaultCloseTime}
	}
	return &Rules{
		SchemaVersion:          SchemaVersion,
		WeeklySchedule:         weekly,
		SlotDurationMinutes:    30,
		BufferMinutes:          0,
		MinAdvanceBookingHours: 2,
		MaxAdvanceBookingDays:  30,
	}
}

// ParseRules decodes a stored rules blob. An empty blob yields
// DefaultRules so tenants created before onboarding finished still get
// a working schedule.
func ParseRules(raw []byte) (*Rules, error) {
	if len(raw) == 0 {
		return DefaultRules(), nil
	}
	var r Rules
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse availability rules: %w", err)
	}
	if r.SchemaVersion == 0 {
		r.SchemaVersion = SchemaVersion
	}
	if r.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported availability rules schema version %d", r.SchemaVersion)
	}
	return &r, nil
}

// Marshal serializes the rules for storage, stamping the schema version.
func (r *Rules) Marshal() ([]byte, error) {
	r.SchemaVersion = SchemaVersion
	return json.Marshal(r)
}

// ScheduleFor returns the weekly schedule entry for a weekday, or nil
// when none exists.
func (r *Rules) ScheduleFor(w time.Weekday) *DaySchedule {
	return r.WeeklySchedule[weekdayKey(w)]
}

// IsClosedDate reports whether the date is in the closed-dates set.
func (r *Rules) IsClosedDate(date time.Time) bool {
	key := date.Format(dateFormat)
	for _, d := range r.ClosedDates {
		if d == key {
			return true
		}
	}
	return false
}

// SpecialDateFor returns the special-date override for the date, or nil.
func (r *Rules) SpecialDateFor(date time.Time) *DaySchedule {
	if r.SpecialDates == nil {
		return nil
	}
	return r.SpecialDates[date.Format(dateFormat)]
}

func weekdayKey(w time.Weekday) string {
	switch w {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
