package employee_dashboard

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========== COMBINED EMPLOYEE DASHBOARD ==========

// EmployeeDashboardResponse is the combined response for employee dashboard
type EmployeeDashboardResponse struct {
	Today          attendance.TodayResponse `json:"today"`
	Month          report.EmployeeReport    `json:"month"`
	LeaveBalance   leave.BalanceResponse    `json:"leave_balance"`
	WorkHoursChart WorkHoursChartResponse   `json:"work_hours_chart"`
}

// DashboardRequest picks the week shown in the chart by any date inside it.
type DashboardRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

func (r *DashboardRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	return errs.Err()
}

// ========== WORK HOURS CHART (Bar Chart) ==========

// WorkHoursChartResponse represents daily work hours for a Monday-Sunday week
type WorkHoursChartResponse struct {
	TotalWorkHours   string              `json:"total_work_hours"`   // Format: "40h 30m"
	TotalWorkMinutes int64               `json:"total_work_minutes"` // Total minutes
	WeekStart        string              `json:"week_start"`
	WeekEnd          string              `json:"week_end"`
	DailyWorkHours   []DailyWorkHourItem `json:"daily_work_hours"`
}

// DailyWorkHourItem represents work hours for a single day
type DailyWorkHourItem struct {
	Date        string `json:"date"`         // Format: "2006-01-02"
	DayName     string `json:"day_name"`     // "Monday", "Tuesday", etc
	WorkHours   string `json:"work_hours"`   // Format: "8h 30m"
	WorkMinutes int64  `json:"work_minutes"` // Total minutes
	Open        bool   `json:"open"`         // punched in, not yet out
}
