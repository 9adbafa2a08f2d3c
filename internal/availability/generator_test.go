package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed clock: Sunday 2025-06-01 12:00. The Monday under test is eight
// days out, inside the default 30-day lookahead.
var (
	testNow    = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testMonday = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
)

func mondayRules() *Rules {
	return &Rules{
		SchemaVersion: SchemaVersion,
		WeeklySchedule: map[string]*DaySchedule{
			"monday": {IsOpen: true, OpenTime: "08:00", CloseTime: "17:00"},
		},
		SlotDurationMinutes:    30,
		BufferMinutes:          0,
		MinAdvanceBookingHours: 0,
		MaxAdvanceBookingDays:  30,
	}
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func TestGenerateTimeSlots_FullOpenDay(t *testing.T) {
	// First slot 08:00-09:00, last starts 16:00; a 16:30 start would
	// run past close.
	slots, err := GenerateTimeSlots(testMonday, 60, mondayRules(), nil, testNow)
	require.NoError(t, err)
	require.Len(t, slots, 17) // starts 08:00..16:00 every 30 min

	assert.Equal(t, at(testMonday, 8, 0), slots[0].StartTime)
	assert.Equal(t, at(testMonday, 9, 0), slots[0].EndTime)
	assert.Equal(t, at(testMonday, 8, 30), slots[1].StartTime)

	last := slots[len(slots)-1]
	assert.Equal(t, at(testMonday, 16, 0), last.StartTime)
	assert.Equal(t, at(testMonday, 17, 0), last.EndTime)

	for _, s := range slots {
		assert.True(t, s.IsAvailable)
		// Every slot must end inside the working window.
		assert.False(t, s.EndTime.After(at(testMonday, 17, 0)))
	}
}

func TestGenerateTimeSlots_ClosedWeekday(t *testing.T) {
	// No schedule entry for Tuesday means closed.
	tuesday := testMonday.AddDate(0, 0, 1)
	slots, err := GenerateTimeSlots(tuesday, 60, mondayRules(), nil, testNow)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// An explicit isOpen=false entry behaves the same.
	rules := mondayRules()
	rules.WeeklySchedule["monday"].IsOpen = false
	slots, err = GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_ClosedDateWins(t *testing.T) {
	// closedDates beats the weekly schedule and even a
	// special date marked open.
	rules := mondayRules()
	rules.ClosedDates = []string{"2025-06-09"}
	rules.SpecialDates = map[string]*DaySchedule{
		"2025-06-09": {IsOpen: true, OpenTime: "09:00", CloseTime: "12:00"},
	}

	slots, err := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_ExistingAppointmentConflict(t *testing.T) {
	// An appointment at 08:00 blocks a fixed 60-minute
	// window, so 08:00 and 08:30 candidates are gone and 09:00 is the
	// first offered slot.
	appointments := []time.Time{at(testMonday, 8, 0)}

	slots, err := GenerateTimeSlots(testMonday, 60, mondayRules(), appointments, testNow)
	require.NoError(t, err)
	require.Len(t, slots, 15)
	assert.Equal(t, at(testMonday, 9, 0), slots[0].StartTime)

	// No emitted slot may overlap the blocked window.
	blockEnd := at(testMonday, 8, 0).Add(conflictWindow)
	for _, s := range slots {
		overlap := at(testMonday, 8, 0).Before(s.EndTime) && blockEnd.After(s.StartTime)
		assert.False(t, overlap, "slot %s overlaps appointment", s.StartTime.Format("15:04"))
	}
}

func TestGenerateTimeSlots_AppointmentOnOtherDayIsHarmless(t *testing.T) {
	other := testMonday.AddDate(0, 0, 7)
	appointments := []time.Time{at(other, 8, 0)}

	slots, err := GenerateTimeSlots(testMonday, 60, mondayRules(), appointments, testNow)
	require.NoError(t, err)
	assert.Len(t, slots, 17)
}

func TestGenerateTimeSlots_BreakWindow(t *testing.T) {
	rules := mondayRules()
	rules.WeeklySchedule["monday"].Breaks = []BreakWindow{{StartTime: "12:00", EndTime: "13:00"}}

	slots, err := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.NoError(t, err)

	for _, s := range slots {
		overlap := at(testMonday, 12, 0).Before(s.EndTime) && at(testMonday, 13, 0).After(s.StartTime)
		assert.False(t, overlap, "slot %s overlaps lunch break", s.StartTime.Format("15:04"))
	}
	// Candidates 11:30, 12:00 and 12:30 are all rejected for a
	// 60-minute service.
	assert.Len(t, slots, 14)
}

func TestGenerateTimeSlots_MinAdvanceNotice(t *testing.T) {
	// With now inside the working day, slots before
	// now+notice are withheld.
	rules := mondayRules()
	rules.MinAdvanceBookingHours = 2
	now := at(testMonday, 8, 0) // same day, 08:00

	slots, err := GenerateTimeSlots(testMonday, 60, rules, nil, now)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	earliest := now.Add(2 * time.Hour)
	assert.Equal(t, earliest, slots[0].StartTime)
	for _, s := range slots {
		assert.False(t, s.StartTime.Before(earliest))
	}
}

func TestGenerateTimeSlots_MaxAdvanceLookahead(t *testing.T) {
	// A date beyond the lookahead yields nothing, the
	// walk stops rather than skipping.
	rules := mondayRules()
	rules.MaxAdvanceBookingDays = 3

	slots, err := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_BufferWidensStep(t *testing.T) {
	rules := mondayRules()
	rules.BufferMinutes = 30
	// Step becomes 60 minutes regardless of service duration.
	slots, err := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.NoError(t, err)
	require.Len(t, slots, 9) // 08:00..16:00 hourly
	assert.Equal(t, at(testMonday, 9, 0), slots[1].StartTime)
}

func TestGenerateTimeSlots_SpecialDateOverridesWindow(t *testing.T) {
	rules := mondayRules()
	rules.SpecialDates = map[string]*DaySchedule{
		"2025-06-09": {IsOpen: true, OpenTime: "10:00", CloseTime: "13:00"},
	}

	slots, err := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, at(testMonday, 10, 0), slots[0].StartTime)
	assert.Equal(t, at(testMonday, 12, 0), slots[len(slots)-1].StartTime)
}

func TestGenerateTimeSlots_SpecialDateClosedDoesNotCloseDay(t *testing.T) {
	// An isOpen=false special entry is ignored by the generator; only
	// closedDates and the weekly schedule close a day here. The
	// calendar view is where such entries show as closed.
	rules := mondayRules()
	rules.SpecialDates = map[string]*DaySchedule{
		"2025-06-09": {IsOpen: false},
	}

	slots, err := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.NoError(t, err)
	assert.Len(t, slots, 17)
}

func TestGenerateTimeSlots_DefaultWindowWhenTimesUnset(t *testing.T) {
	rules := mondayRules()
	rules.WeeklySchedule["monday"].OpenTime = ""
	rules.WeeklySchedule["monday"].CloseTime = ""

	slots, err := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, at(testMonday, 8, 0), slots[0].StartTime)
	assert.Equal(t, at(testMonday, 16, 0), slots[len(slots)-1].StartTime)
}

func TestGenerateTimeSlots_MalformedTimeIsTypedError(t *testing.T) {
	rules := mondayRules()
	rules.WeeklySchedule["monday"].OpenTime = "8am"

	_, err := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	var perr *TimeParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "openTime", perr.Field)

	// Single-digit hours are rejected too; only strict HH:mm passes.
	rules.WeeklySchedule["monday"].OpenTime = "8:00"
	_, err = GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.ErrorAs(t, err, &perr)
}

func TestGenerateTimeSlots_InvalidDurations(t *testing.T) {
	var verr *ValidationError

	_, err := GenerateTimeSlots(testMonday, 0, mondayRules(), nil, testNow)
	require.ErrorAs(t, err, &verr)

	rules := mondayRules()
	rules.SlotDurationMinutes = 0
	_, err = GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
	require.ErrorAs(t, err, &verr)
}

func TestGenerateTimeSlots_NegativeBufferRejected(t *testing.T) {
	// A stored blob with a buffer cancelling out the slot duration must
	// error instead of looping forever on a non-advancing step.
	rules, err := ParseRules([]byte(`{"schemaVersion":1,"weeklySchedule":{"monday":{"isOpen":true,"openTime":"08:00","closeTime":"17:00"}},"slotDurationMinutes":30,"bufferMinutes":-60,"minAdvanceBookingHours":0,"maxAdvanceBookingDays":30}`))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, genErr := GenerateTimeSlots(testMonday, 60, rules, nil, testNow)
		done <- genErr
	}()

	select {
	case genErr := <-done:
		var verr *ValidationError
		require.ErrorAs(t, genErr, &verr)
		assert.Equal(t, "bufferMinutes", verr.Field)
	case <-time.After(2 * time.Second):
		t.Fatal("slot generation did not return")
	}
}

func TestGenerateTimeSlots_ChronologicalAndIdempotent(t *testing.T) {
	appointments := []time.Time{at(testMonday, 10, 0), at(testMonday, 14, 30)}

	first, err := GenerateTimeSlots(testMonday, 45, mondayRules(), appointments, testNow)
	require.NoError(t, err)
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i].StartTime.After(first[i-1].StartTime))
	}

	second, err := GenerateTimeSlots(testMonday, 45, mondayRules(), appointments, testNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateTimeSlots_DoesNotMutateInputs(t *testing.T) {
	rules := mondayRules()
	appointments := []time.Time{at(testMonday, 10, 0)}
	snapshot := make([]time.Time, len(appointments))
	copy(snapshot, appointments)

	_, err := GenerateTimeSlots(testMonday, 60, rules, appointments, testNow)
	require.NoError(t, err)
	assert.Equal(t, snapshot, appointments)
	assert.Equal(t, "08:00", rules.WeeklySchedule["monday"].OpenTime)
}

func TestParseRules(t *testing.T) {
	t.Run("empty blob falls back to defaults", func(t *testing.T) {
		r, err := ParseRules(nil)
		require.NoError(t, err)
		assert.Equal(t, 30, r.SlotDurationMinutes)
		assert.NotNil(t, r.ScheduleFor(time.Monday))
		assert.Nil(t, r.ScheduleFor(time.Sunday))
	})

	t.Run("round trip", func(t *testing.T) {
		rules := mondayRules()
		raw, err := rules.Marshal()
		require.NoError(t, err)

		parsed, err := ParseRules(raw)
		require.NoError(t, err)
		assert.Equal(t, rules.SlotDurationMinutes, parsed.SlotDurationMinutes)
		assert.Equal(t, "08:00", parsed.WeeklySchedule["monday"].OpenTime)
	})

	t.Run("unknown schema version rejected", func(t *testing.T) {
		_, err := ParseRules([]byte(`{"schemaVersion": 99}`))
		require.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseRules([]byte(`{not json`))
		require.Error(t, err)
	})
}
