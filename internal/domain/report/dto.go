package report

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// REQUESTS
// ========================================

// PeriodRequest selects a report window; From/To win over Year/Month.
type PeriodRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	Department *string `json:"department,omitempty"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.From != "" || r.To != "" {
		from, okFrom := validator.IsValidDate(r.From)
		if !okFrom {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
		to, okTo := validator.IsValidDate(r.To)
		if !okTo {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
		if okFrom && okTo {
			if to.Before(from) {
				errs.Add("to", "to must not be before from")
			} else if dateutil.DaysBetween(from, to) > 366 {
				errs.Add("to", "period must not exceed 366 days")
			}
		}
		return errs.Err()
	}

	if !validator.IsValidMonth(r.Year, r.Month) {
		errs.Add("month", "year and month must be a valid month between 2000 and 2100")
	}
	return errs.Err()
}

type DailyReportRequest struct {
	Date       string  `json:"date"`
	Department *string `json:"department,omitempty"`
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	return errs.Err()
}

// ========================================
// RESPONSES
// ========================================

type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
	// AsOf is the last day counted for absences.
	AsOf string `json:"as_of"`
}

type EmployeeRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Counts
	AverageWorkHours     float64 `json:"avg_work_hours"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	Badge                Badge   `json:"badge"`
}

type DepartmentAverage struct {
	Department        string  `json:"department"`
	Employees         int     `json:"employees"`
	AverageAttendance float64 `json:"average_attendance"`
}

type Overall struct {
	TotalEmployees    int     `json:"total_employees"`
	AverageAttendance float64 `json:"average_attendance"`
	TotalPresentDays  int     `json:"total_present_days"`
	AverageWorkHours  float64 `json:"average_work_hours"`
}

type CompanyReport struct {
	Period       Period              `json:"period"`
	GeneratedAt  string              `json:"generated_at"`
	Overall      Overall             `json:"overall"`
	Departments  []DepartmentAverage `json:"departments"`
	Distribution Distribution        `json:"distribution"`
	Employees    []EmployeeRow       `json:"employees"`
}

type EmployeeReport struct {
	Period      Period      `json:"period"`
	GeneratedAt string      `json:"generated_at"`
	Employee    EmployeeRow `json:"employee"`
}

type DailyRow struct {
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  string   `json:"employee_name"`
	EmployeeCode  string   `json:"employee_code"`
	Department    string   `json:"department"`
	Gender        string   `json:"gender"`
	Status        string   `json:"status"`
	WorkMode      *string  `json:"work_mode,omitempty"`
	PunchIn       *string  `json:"punch_in,omitempty"`
	PunchOut      *string  `json:"punch_out,omitempty"`
	WorkHours     *float64 `json:"work_hours,omitempty"`
	HomeReached   *bool    `json:"home_reached,omitempty"`
	HomeReachedAt *string  `json:"home_reached_at,omitempty"`
}

type DailySummary struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Leave   int `json:"leave"`
	Absent  int `json:"absent"`
}

type DailyReport struct {
	Date    string       `json:"date"`
	Holiday *string      `json:"holiday,omitempty"`
	Summary DailySummary `json:"summary"`
	Rows    []DailyRow   `json:"rows"`
}
