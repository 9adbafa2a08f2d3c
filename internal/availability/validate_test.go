package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Rules)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(r *Rules) {},
		},
		{
			name:    "slot duration too short",
			mutate:  func(r *Rules) { r.SlotDurationMinutes = 10 },
			wantErr: "slotDurationMinutes",
		},
		{
			name:    "slot duration too long",
			mutate:  func(r *Rules) { r.SlotDurationMinutes = 300 },
			wantErr: "slotDurationMinutes",
		},
		{
			name:    "advance days zero",
			mutate:  func(r *Rules) { r.MaxAdvanceBookingDays = 0 },
			wantErr: "maxAdvanceBookingDays",
		},
		{
			name:    "advance days beyond a year",
			mutate:  func(r *Rules) { r.MaxAdvanceBookingDays = 400 },
			wantErr: "maxAdvanceBookingDays",
		},
		{
			name:    "notice hours beyond a week",
			mutate:  func(r *Rules) { r.MinAdvanceBookingHours = 200 },
			wantErr: "minAdvanceBookingHours",
		},
		{
			name:    "negative notice hours",
			mutate:  func(r *Rules) { r.MinAdvanceBookingHours = -1 },
			wantErr: "minAdvanceBookingHours",
		},
		{
			name:    "negative buffer",
			mutate:  func(r *Rules) { r.BufferMinutes = -5 },
			wantErr: "bufferMinutes",
		},
		{
			name: "open day with malformed open time",
			mutate: func(r *Rules) {
				r.WeeklySchedule["wednesday"] = &DaySchedule{IsOpen: true, OpenTime: "9:00", CloseTime: "17:00"}
			},
			wantErr: "wednesday.openTime",
		},
		{
			name: "open day with missing close time",
			mutate: func(r *Rules) {
				r.WeeklySchedule["friday"].CloseTime = ""
			},
			wantErr: "friday.closeTime",
		},
		{
			name: "malformed break time",
			mutate: func(r *Rules) {
				r.WeeklySchedule["monday"].Breaks = []BreakWindow{{StartTime: "12:00", EndTime: "13h00"}}
			},
			wantErr: "monday.breaks[0].endTime",
		},
		{
			name: "closed day with garbage times passes",
			mutate: func(r *Rules) {
				r.WeeklySchedule["saturday"] = &DaySchedule{IsOpen: false, OpenTime: "junk"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(rules)

			err := ValidateRules(rules)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Field)
		})
	}
}
