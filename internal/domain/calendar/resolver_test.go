package calendar

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/stretchr/testify/assert"
)

func TestResolve_Priority(t *testing.T) {
	monday := dateutil.New(2024, 3, 4)
	sunday := dateutil.New(2024, 3, 3)

	tests := []struct {
		name          string
		facts         DayFacts
		wantStatus    DayStatus
		wantDefaulted bool
	}{
		{
			name:       "holiday beats approved leave and record",
			facts:      DayFacts{Date: monday, Holiday: true, OnApprovedLeave: true, RecordStatus: "present"},
			wantStatus: StatusHoliday,
		},
		{
			name:       "approved leave beats record",
			facts:      DayFacts{Date: monday, OnApprovedLeave: true, RecordStatus: "late"},
			wantStatus: StatusLeave,
		},
		{
			name:       "record present",
			facts:      DayFacts{Date: monday, RecordStatus: "present"},
			wantStatus: StatusPresent,
		},
		{
			name:       "record late",
			facts:      DayFacts{Date: monday, RecordStatus: "late"},
			wantStatus: StatusLate,
		},
		{
			name:       "record on sunday still wins",
			facts:      DayFacts{Date: sunday, RecordStatus: "present"},
			wantStatus: StatusPresent,
		},
		{
			name:       "sunday weekoff",
			facts:      DayFacts{Date: sunday},
			wantStatus: StatusWeekoff,
		},
		{
			name:          "weekday without facts defaults to weekoff",
			facts:         DayFacts{Date: monday},
			wantStatus:    StatusWeekoff,
			wantDefaulted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.facts)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantDefaulted, got.Defaulted)
		})
	}
}

func TestResolution_Fact(t *testing.T) {
	assert.Equal(t, StatusNoRecord, Resolve(DayFacts{Date: dateutil.New(2024, 3, 4)}).Fact())
	assert.Equal(t, StatusWeekoff, Resolve(DayFacts{Date: dateutil.New(2024, 3, 3)}).Fact())
}

func TestBuildMonth(t *testing.T) {
	// Setup: March 2024 starts on a Friday and has 5 Sundays.
	src := Sources{
		Holidays: map[string]string{"2024-03-08": "Maha Shivaratri"},
		Leaves: []Span{
			{Start: dateutil.New(2024, 3, 7), End: dateutil.New(2024, 3, 9)},
		},
		Records: map[string]string{
			"2024-03-01": "present",
			"2024-03-04": "late",
			"2024-03-07": "present",
		},
	}

	// Act
	m := BuildMonth("emp-1", 2024, time.March, src)

	// Assert
	assert.Len(t, m.Days, 31)
	assert.Equal(t, StatusPresent, m.Days[0].Status)
	assert.Equal(t, StatusLate, m.Days[3].Status)
	assert.Equal(t, StatusLeave, m.Days[6].Status, "leave beats record")
	assert.Equal(t, StatusHoliday, m.Days[7].Status, "holiday beats leave")
	assert.Equal(t, "Maha Shivaratri", m.Days[7].HolidayName)
	assert.Equal(t, StatusLeave, m.Days[8].Status)
	assert.Equal(t, "Sunday", m.Days[2].Weekday)

	assert.Equal(t, 1, m.Stats.Present)
	assert.Equal(t, 1, m.Stats.Late)
	assert.Equal(t, 2, m.Stats.Leave)
	assert.Equal(t, 1, m.Stats.Holiday)
	assert.Equal(t, 31-5, m.Stats.Weekoff)
}
