package employee_dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	empDashboard "github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"golang.org/x/sync/errgroup"
)

type EmployeeDashboardServiceImpl struct {
	attendance attendance.AttendanceService
	leave      leave.LeaveService
	report     report.ReportService
	location   *time.Location
	now        func() time.Time
}

func NewEmployeeDashboardService(
	attendanceSvc attendance.AttendanceService,
	leaveSvc leave.LeaveService,
	reportSvc report.ReportService,
	location *time.Location,
) *EmployeeDashboardServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &EmployeeDashboardServiceImpl{
		attendance: attendanceSvc,
		leave:      leaveSvc,
		report:     reportSvc,
		location:   location,
		now:        time.Now,
	}
}

var _ empDashboard.EmployeeDashboardService = (*EmployeeDashboardServiceImpl)(nil)

// formatWorkHours formats minutes to "Xh Ym" format
func formatWorkHours(minutes int64) string {
	hours := minutes / 60
	mins := minutes % 60
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// anchor returns the requested date, or today in the business zone.
func (s *EmployeeDashboardServiceImpl) anchor(req empDashboard.DashboardRequest) (time.Time, error) {
	if err := req.Validate(); err != nil {
		return time.Time{}, err
	}
	if req.Date == "" {
		return dateutil.In(s.now(), s.location), nil
	}
	return dateutil.Parse(req.Date)
}

// weekOf returns the Monday and Sunday around d.
func weekOf(d time.Time) (time.Time, time.Time) {
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// GetDashboard returns combined employee dashboard data
func (s *EmployeeDashboardServiceImpl) GetDashboard(ctx context.Context, req empDashboard.DashboardRequest) (empDashboard.EmployeeDashboardResponse, error) {
	day, err := s.anchor(req)
	if err != nil {
		return empDashboard.EmployeeDashboardResponse{}, err
	}

	var resp empDashboard.EmployeeDashboardResponse

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Today
	g.Go(func() error {
		today, err := s.attendance.GetToday(gCtx)
		if err != nil {
			return err
		}
		resp.Today = today
		return nil
	})

	// 2. Month report
	g.Go(func() error {
		month, err := s.report.MyReport(gCtx, report.PeriodRequest{Year: day.Year(), Month: int(day.Month())})
		if err != nil {
			return err
		}
		resp.Month = month
		return nil
	})

	// 3. Leave balance
	g.Go(func() error {
		balance, err := s.leave.GetMyBalance(gCtx)
		if err != nil {
			return err
		}
		resp.LeaveBalance = balance
		return nil
	})

	// 4. Work Hours Chart
	g.Go(func() error {
		chart, err := s.workHoursChart(gCtx, day)
		if err != nil {
			return err
		}
		resp.WorkHoursChart = chart
		return nil
	})

	if err := g.Wait(); err != nil {
		return empDashboard.EmployeeDashboardResponse{}, err
	}
	return resp, nil
}

// GetWorkHoursChart returns daily work hours for the week containing req.Date
func (s *EmployeeDashboardServiceImpl) GetWorkHoursChart(ctx context.Context, req empDashboard.DashboardRequest) (empDashboard.WorkHoursChartResponse, error) {
	day, err := s.anchor(req)
	if err != nil {
		return empDashboard.WorkHoursChartResponse{}, err
	}
	return s.workHoursChart(ctx, day)
}

func (s *EmployeeDashboardServiceImpl) workHoursChart(ctx context.Context, day time.Time) (empDashboard.WorkHoursChartResponse, error) {
	monday, sunday := weekOf(day)
	start, end := dateutil.Format(monday), dateutil.Format(sunday)

	list, err := s.attendance.GetMyAttendance(ctx, attendance.AttendanceFilter{
		StartDate: &start,
		EndDate:   &end,
		Page:      1,
		Limit:     7,
		SortBy:    "date",
		SortOrder: "asc",
	})
	if err != nil {
		return empDashboard.WorkHoursChartResponse{}, err
	}

	byDate := make(map[string]attendance.AttendanceResponse, len(list.Attendances))
	for _, a := range list.Attendances {
		byDate[a.Date] = a
	}

	chart := empDashboard.WorkHoursChartResponse{
		WeekStart:      start,
		WeekEnd:        end,
		DailyWorkHours: make([]empDashboard.DailyWorkHourItem, 0, 7),
	}
	dateutil.EachDay(monday, sunday, func(d time.Time) {
		item := empDashboard.DailyWorkHourItem{
			Date:    dateutil.Format(d),
			DayName: d.Weekday().String(),
		}
		if a, ok := byDate[item.Date]; ok {
			if a.WorkHours != nil {
				item.WorkMinutes = int64(*a.WorkHours*60 + 0.5)
			}
			item.Open = a.PunchOut == nil
		}
		item.WorkHours = formatWorkHours(item.WorkMinutes)
		chart.TotalWorkMinutes += item.WorkMinutes
		chart.DailyWorkHours = append(chart.DailyWorkHours, item)
	})
	chart.TotalWorkHours = formatWorkHours(chart.TotalWorkMinutes)
	return chart, nil
}
