package calendar

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
)

type Day struct {
	Date        string    `json:"date"`
	Weekday     string    `json:"weekday"`
	Status      DayStatus `json:"status"`
	Defaulted   bool      `json:"defaulted"`
	HolidayName string    `json:"holiday_name,omitempty"`
}

type Stats struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Leave   int `json:"leave"`
	Weekoff int `json:"weekoff"`
	Holiday int `json:"holiday"`
}

type Month struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Days       []Day  `json:"days"`
	Stats      Stats  `json:"stats"`
}

// BuildMonth resolves every day of the month from src.
func BuildMonth(employeeID string, year int, month time.Month, src Sources) Month {
	first, last := dateutil.MonthRange(year, month)
	out := Month{
		EmployeeID: employeeID,
		Year:       year,
		Month:      int(month),
		Days:       make([]Day, 0, last.Day()),
	}

	dateutil.EachDay(first, last, func(d time.Time) {
		facts := src.FactsFor(d)
		res := Resolve(facts)
		out.Days = append(out.Days, Day{
			Date:        dateutil.Format(d),
			Weekday:     d.Weekday().String(),
			Status:      res.Status,
			Defaulted:   res.Defaulted,
			HolidayName: facts.HolidayName,
		})
		out.Stats.add(res.Status)
	})

	return out
}

func (s *Stats) add(status DayStatus) {
	switch status {
	case StatusPresent:
		s.Present++
	case StatusLate:
		s.Late++
	case StatusLeave:
		s.Leave++
	case StatusWeekoff:
		s.Weekoff++
	case StatusHoliday:
		s.Holiday++
	}
}
