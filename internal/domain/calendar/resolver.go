// Package calendar resolves the display status of an employee-day from the
// holiday, leave, attendance and weekday facts. Nothing here is persisted.
package calendar

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
)

type DayStatus string

const (
	StatusPresent  DayStatus = "present"
	StatusLate     DayStatus = "late"
	StatusLeave    DayStatus = "leave"
	StatusWeekoff  DayStatus = "weekoff"
	StatusHoliday  DayStatus = "holiday"
	StatusNoRecord DayStatus = "no-record"
)

// DayFacts are the inputs for a single employee-date.
type DayFacts struct {
	Date        time.Time
	Holiday     bool
	HolidayName string
	// OnApprovedLeave is true when an approved leave span covers Date.
	OnApprovedLeave bool
	// RecordStatus is the stored attendance status, empty when no record exists.
	RecordStatus string
}

type Resolution struct {
	Status DayStatus
	// Defaulted marks a non-Sunday without any fact that falls back to weekoff.
	Defaulted bool
}

// Fact returns no-record for defaulted days and Status otherwise.
func (r Resolution) Fact() DayStatus {
	if r.Defaulted {
		return StatusNoRecord
	}
	return r.Status
}

// Resolve applies holiday > approved leave > record > Sunday > default weekoff.
func Resolve(f DayFacts) Resolution {
	if f.Holiday {
		return Resolution{Status: StatusHoliday}
	}
	if f.OnApprovedLeave {
		return Resolution{Status: StatusLeave}
	}
	switch f.RecordStatus {
	case string(StatusPresent):
		return Resolution{Status: StatusPresent}
	case string(StatusLate):
		return Resolution{Status: StatusLate}
	}
	if f.Date.Weekday() == time.Sunday {
		return Resolution{Status: StatusWeekoff}
	}
	return Resolution{Status: StatusWeekoff, Defaulted: true}
}

// Span is an inclusive approved leave range.
type Span struct {
	Start time.Time
	End   time.Time
}

// Sources holds every fact needed to resolve a window for one employee.
type Sources struct {
	Holidays map[string]string // YYYY-MM-DD -> name
	Leaves   []Span
	Records  map[string]string // YYYY-MM-DD -> stored status
}

// FactsFor collects the facts for date.
func (s Sources) FactsFor(date time.Time) DayFacts {
	key := dateutil.Format(date)
	f := DayFacts{Date: dateutil.Date(date)}

	if name, ok := s.Holidays[key]; ok {
		f.Holiday = true
		f.HolidayName = name
	}
	for _, span := range s.Leaves {
		if dateutil.Within(date, span.Start, span.End) {
			f.OnApprovedLeave = true
			break
		}
	}
	f.RecordStatus = s.Records[key]
	return f
}
