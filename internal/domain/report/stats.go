package report

import (
	"slices"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

// Counts are the per-employee day tallies of a report window.
type Counts struct {
	Present int `json:"present_days"`
	Late    int `json:"late_days"`
	Leave   int `json:"leave_days"`
	Absent  int `json:"absent_days"`
}

// Add tallies one resolved day. A defaulted weekday counts as absent once it
// is no longer in the future relative to asOf.
func (c *Counts) Add(res calendar.Resolution, date, asOf time.Time) {
	switch {
	case res.Status == calendar.StatusPresent:
		c.Present++
	case res.Status == calendar.StatusLate:
		c.Late++
	case res.Status == calendar.StatusLeave:
		c.Leave++
	case res.Defaulted && !date.After(asOf):
		c.Absent++
	}
}

func (c Counts) Attended() int {
	return c.Present + c.Late
}

func (c Counts) WorkingDays() int {
	return c.Present + c.Late + c.Leave + c.Absent
}

// AttendancePercentage is attended/working*100 rounded to one decimal, 0 without working days.
func (c Counts) AttendancePercentage() float64 {
	total := c.WorkingDays()
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(c.Attended())).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}

// AverageWorkHours is the mean over positive values, rounded to two decimals.
func AverageWorkHours(hours []float64) float64 {
	sum := decimal.Zero
	n := 0
	for _, h := range hours {
		if h > 0 {
			sum = sum.Add(decimal.NewFromFloat(h))
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64()
}

// Mean averages values rounded to one decimal.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))).Round(1).InexactFloat64()
}

type Badge string

const (
	BadgeExcellent Badge = "Excellent"
	BadgeGood      Badge = "Good"
	BadgeAverage   Badge = "Average"
	BadgePoor      Badge = "Poor"
)

// BadgeFor maps a percentage onto the >=95 / 85-94 / 75-84 / <75 bands.
func BadgeFor(pct float64) Badge {
	switch {
	case pct >= 95:
		return BadgeExcellent
	case pct >= 85:
		return BadgeGood
	case pct >= 75:
		return BadgeAverage
	default:
		return BadgePoor
	}
}

type Distribution struct {
	From95To100 int `json:"95_100"`
	From85To94  int `json:"85_94"`
	From75To84  int `json:"75_84"`
	Below75     int `json:"below_75"`
}

func Distribute(pcts []float64) Distribution {
	var d Distribution
	for _, p := range pcts {
		switch BadgeFor(p) {
		case BadgeExcellent:
			d.From95To100++
		case BadgeGood:
			d.From85To94++
		case BadgeAverage:
			d.From75To84++
		default:
			d.Below75++
		}
	}
	return d
}

// DepartmentAverages groups rows by department, sorted by department name.
func DepartmentAverages(rows []EmployeeRow) []DepartmentAverage {
	byDept := make(map[string][]float64)
	var order []string
	for _, r := range rows {
		if _, ok := byDept[r.Department]; !ok {
			order = append(order, r.Department)
		}
		byDept[r.Department] = append(byDept[r.Department], r.AttendancePercentage)
	}

	slices.Sort(order)
	out := make([]DepartmentAverage, 0, len(order))
	for _, dept := range order {
		out = append(out, DepartmentAverage{
			Department:        dept,
			Employees:         len(byDept[dept]),
			AverageAttendance: Mean(byDept[dept]),
		})
	}
	return out
}
