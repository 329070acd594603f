package employee_dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	empDashboard "github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendance struct {
	attendance.AttendanceService
	records []attendance.AttendanceResponse
	filter  attendance.AttendanceFilter
}

func (s *stubAttendance) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	return attendance.TodayResponse{Date: "2024-03-06", State: "punched_in", CanPunchOut: true}, nil
}

func (s *stubAttendance) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	s.filter = filter
	return attendance.ListAttendanceResponse{Attendances: s.records}, nil
}

type stubLeave struct {
	leave.LeaveService
	err error
}

func (s *stubLeave) GetMyBalance(ctx context.Context) (leave.BalanceResponse, error) {
	return leave.BalanceResponse{}, s.err
}

type stubReport struct {
	report.ReportService
	req report.PeriodRequest
}

func (s *stubReport) MyReport(ctx context.Context, req report.PeriodRequest) (report.EmployeeReport, error) {
	s.req = req
	return report.EmployeeReport{Employee: report.EmployeeRow{EmployeeID: "emp-1"}}, nil
}

func hours(h float64) *float64 { return &h }

func out(s string) *string { return &s }

func newService(att *stubAttendance, lv *stubLeave, rep *stubReport) *EmployeeDashboardServiceImpl {
	svc := NewEmployeeDashboardService(att, lv, rep, time.UTC)
	// Wednesday
	svc.now = func() time.Time { return time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestEmployeeDashboardService_GetDashboard(t *testing.T) {
	// Setup
	att := &stubAttendance{records: []attendance.AttendanceResponse{
		{Date: "2024-03-04", WorkHours: hours(8.5), PunchOut: out("2024-03-04T17:30:00Z")},
		{Date: "2024-03-05", WorkHours: hours(7.25), PunchOut: out("2024-03-05T16:15:00Z")},
		{Date: "2024-03-06"},
	}}
	rep := &stubReport{}
	svc := newService(att, &stubLeave{}, rep)

	// Act
	result, err := svc.GetDashboard(context.Background(), empDashboard.DashboardRequest{})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Today.CanPunchOut)
	assert.Equal(t, "emp-1", result.Month.Employee.EmployeeID)
	assert.Equal(t, report.PeriodRequest{Year: 2024, Month: 3}, rep.req)

	chart := result.WorkHoursChart
	assert.Equal(t, "2024-03-04", chart.WeekStart)
	assert.Equal(t, "2024-03-10", chart.WeekEnd)
	require.Len(t, chart.DailyWorkHours, 7)
	assert.Equal(t, "Monday", chart.DailyWorkHours[0].DayName)
	assert.Equal(t, "8h 30m", chart.DailyWorkHours[0].WorkHours)
	assert.Equal(t, int64(435), chart.DailyWorkHours[1].WorkMinutes)
	assert.True(t, chart.DailyWorkHours[2].Open)
	assert.False(t, chart.DailyWorkHours[3].Open)
	assert.Equal(t, "Sunday", chart.DailyWorkHours[6].DayName)
	assert.Equal(t, int64(945), chart.TotalWorkMinutes)
	assert.Equal(t, "15h 45m", chart.TotalWorkHours)

	require.NotNil(t, att.filter.StartDate)
	assert.Equal(t, "2024-03-04", *att.filter.StartDate)
	assert.Equal(t, "2024-03-10", *att.filter.EndDate)
}

func TestEmployeeDashboardService_GetWorkHoursChart_SundayAnchor(t *testing.T) {
	// Setup
	svc := newService(&stubAttendance{}, &stubLeave{}, &stubReport{})

	// Act
	chart, err := svc.GetWorkHoursChart(context.Background(), empDashboard.DashboardRequest{Date: "2024-03-10"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", chart.WeekStart)
	assert.Equal(t, "0h 0m", chart.TotalWorkHours)
}

func TestEmployeeDashboardService_GetDashboard_InvalidDate(t *testing.T) {
	svc := newService(&stubAttendance{}, &stubLeave{}, &stubReport{})

	_, err := svc.GetDashboard(context.Background(), empDashboard.DashboardRequest{Date: "06/03/2024"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
}

func TestEmployeeDashboardService_GetDashboard_PropagatesError(t *testing.T) {
	// Setup
	boom := errors.New("balance unavailable")
	svc := newService(&stubAttendance{}, &stubLeave{err: boom}, &stubReport{})

	// Act
	_, err := svc.GetDashboard(context.Background(), empDashboard.DashboardRequest{})

	// Assert
	assert.ErrorIs(t, err, boom)
}
