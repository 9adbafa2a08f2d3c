package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendarMonth_DayCounts(t *testing.T) {
	// Month lengths, including leap February.
	tests := []struct {
		year, month, days int
	}{
		{2025, 2, 28},
		{2024, 2, 29},
		{2025, 12, 31},
		{2025, 4, 30},
	}

	for _, tt := range tests {
		cal, err := BuildCalendarMonth(tt.year, tt.month, mondayRules(), 0, nil, testNow)
		require.NoError(t, err)
		assert.Len(t, cal.Days, tt.days, "%d-%02d", tt.year, tt.month)
		assert.Equal(t, tt.year, cal.Year)
		assert.Equal(t, tt.month, cal.Month)
	}

	cal, err := BuildCalendarMonth(2025, 12, mondayRules(), 0, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, "December", cal.MonthName)
	assert.Equal(t, 1, cal.Days[0].DayOfMonth)
	assert.Equal(t, "Monday", cal.Days[0].DayOfWeek)
}

func TestBuildCalendarMonth_InvalidMonth(t *testing.T) {
	var verr *ValidationError

	_, err := BuildCalendarMonth(2025, 0, mondayRules(), 0, nil, testNow)
	require.ErrorAs(t, err, &verr)

	_, err = BuildCalendarMonth(2025, 13, mondayRules(), 0, nil, testNow)
	require.ErrorAs(t, err, &verr)

	_, err = BuildCalendarMonth(0, 6, mondayRules(), 0, nil, testNow)
	require.ErrorAs(t, err, &verr)
}

func TestBuildCalendarMonth_ClosedWeekdays(t *testing.T) {
	// Every Sunday of December 2025 is closed with the
	// plain reason (no sunday entry in the weekly schedule).
	cal, err := BuildCalendarMonth(2025, 12, mondayRules(), 60, nil, testNow)
	require.NoError(t, err)

	for _, day := range cal.Days {
		if day.DayOfWeek == "Sunday" {
			assert.False(t, day.IsOpen, day.Date)
			assert.Equal(t, ReasonClosed, day.Reason)
			assert.Zero(t, day.AvailableSlots)
			assert.False(t, day.HasAvailability)
		}
	}
}

func TestBuildCalendarMonth_ReasonPrecedence(t *testing.T) {
	rules := mondayRules()
	rules.ClosedDates = []string{"2025-06-09"}
	rules.SpecialDates = map[string]*DaySchedule{
		"2025-06-09": {IsOpen: true, OpenTime: "10:00", CloseTime: "14:00"},
		"2025-06-16": {IsOpen: false},
	}

	cal, err := BuildCalendarMonth(2025, 6, rules, 60, nil, testNow)
	require.NoError(t, err)

	byDate := make(map[string]CalendarDay, len(cal.Days))
	for _, d := range cal.Days {
		byDate[d.Date] = d
	}

	// closedDates wins over a special date marked open.
	holiday := byDate["2025-06-09"]
	assert.False(t, holiday.IsOpen)
	assert.Equal(t, ReasonHoliday, holiday.Reason)
	assert.Zero(t, holiday.AvailableSlots)

	// A special date with isOpen=false closes the calendar cell.
	special := byDate["2025-06-16"]
	assert.False(t, special.IsOpen)
	assert.Equal(t, ReasonSpecialClosed, special.Reason)

	// An ordinary open Monday gets slot counts.
	monday := byDate["2025-06-23"]
	assert.True(t, monday.IsOpen)
	assert.Empty(t, monday.Reason)
	assert.True(t, monday.HasAvailability)
	assert.Equal(t, 17, monday.AvailableSlots)
}

func TestBuildCalendarMonth_TodayAndPastFlags(t *testing.T) {
	cal, err := BuildCalendarMonth(2025, 6, mondayRules(), 60, nil, testNow)
	require.NoError(t, err)

	for _, d := range cal.Days {
		switch {
		case d.Date == "2025-06-01":
			assert.True(t, d.IsToday)
			assert.False(t, d.IsPast)
		case d.Date < "2025-06-01":
			assert.True(t, d.IsPast, d.Date)
		default:
			assert.False(t, d.IsPast, d.Date)
			assert.False(t, d.IsToday, d.Date)
		}
	}
}

func TestBuildCalendarMonth_PastDaysSkipGeneration(t *testing.T) {
	// now mid-month: open weekdays before it count zero slots even
	// though the weekday is open.
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC) // Monday
	cal, err := BuildCalendarMonth(2025, 6, mondayRules(), 60, nil, now)
	require.NoError(t, err)

	for _, d := range cal.Days {
		if d.Date == "2025-06-09" { // open Monday, but already past
			assert.True(t, d.IsOpen)
			assert.True(t, d.IsPast)
			assert.Zero(t, d.AvailableSlots)
		}
	}
}

func TestBuildCalendarMonth_NoServiceMeansNoCounts(t *testing.T) {
	cal, err := BuildCalendarMonth(2025, 6, mondayRules(), 0, nil, testNow)
	require.NoError(t, err)
	for _, d := range cal.Days {
		assert.Zero(t, d.AvailableSlots)
		assert.False(t, d.HasAvailability)
	}
}

func TestBuildCalendarMonth_AppointmentsLowerCounts(t *testing.T) {
	appointments := []time.Time{at(testMonday, 8, 0)}
	cal, err := BuildCalendarMonth(2025, 6, mondayRules(), 60, appointments, testNow)
	require.NoError(t, err)

	for _, d := range cal.Days {
		if d.Date == "2025-06-09" {
			assert.Equal(t, 15, d.AvailableSlots)
		}
	}
}
