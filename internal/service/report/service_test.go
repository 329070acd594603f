package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/daystatus"
	holidayService "github.com/cmlabs-hris/attendance-backend-go/internal/service/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	adminCtx = user.WithActor(context.Background(), user.Actor{EmployeeID: "admin-1", Role: user.RoleAdmin})
	anitaCtx = user.WithActor(context.Background(), user.Actor{EmployeeID: "emp-a", Role: user.RoleEmployee})
	march    = report.PeriodRequest{Year: 2024, Month: 3}
)

// newService seeds March 2024 and reports as of the 10th:
//
//	emp-a: 1 present, 4 late, 5 leave, 6 holiday, 8 present; 2, 7, 9 absent
//	emp-b: no records, every working day absent
func newService(t *testing.T) *ReportServiceImpl {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	female := employee.Female
	position := "Engineer"
	homeLat, homeLon := 12.9, 77.6
	store.AddEmployee(employee.Employee{ID: "emp-a", Code: "EMP001", FullName: "Anita Rao", Department: "Engineering", Position: &position, Gender: female, HomeLatitude: &homeLat, HomeLongitude: &homeLon, Status: employee.EmploymentStatusActive, Role: user.RoleEmployee})
	store.AddEmployee(employee.Employee{ID: "emp-b", Code: "EMP002", FullName: "Bala Iyer", Department: "Sales", Gender: employee.Male, Status: employee.EmploymentStatusActive, Role: user.RoleEmployee})
	store.AddEmployee(employee.Employee{ID: "emp-c", Code: "EMP003", FullName: "Chitra Old", Department: "Sales", Gender: employee.Female, Status: employee.EmploymentStatusInactive, Role: user.RoleEmployee})
	store.AddHoliday(holiday.Holiday{Date: dateutil.New(2024, 3, 6), Name: "Founders Day"})

	attendanceRepo := memory.NewAttendanceRepository(store)
	leaveRepo := memory.NewLeaveRequestRepository(store)

	record := func(day int, status attendance.Status, hours float64) {
		in := time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC)
		out := in.Add(time.Duration(hours * float64(time.Hour)))
		reachedAt := out.Add(30 * time.Minute)
		_, err := attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID:     "emp-a",
			Date:           dateutil.New(2024, 3, day),
			PunchIn:        in,
			PunchOut:       &out,
			Status:         status,
			WorkMode:       attendance.WorkModeOffice,
			ApprovalStatus: attendance.ApprovalApproved,
			WorkHours:      &hours,
			HomeReached:    true,
			HomeReachedAt:  &reachedAt,
		})
		require.NoError(t, err)
	}
	record(1, attendance.StatusPresent, 8)
	record(4, attendance.StatusLate, 9)
	record(8, attendance.StatusPresent, 7)

	_, err := leaveRepo.Create(ctx, leave.LeaveRequest{EmployeeID: "emp-a", LeaveType: leave.LeaveTypeCasual, StartDate: dateutil.New(2024, 3, 5), EndDate: dateutil.New(2024, 3, 5), Days: 1, Status: leave.LeaveRequestStatusApproved})
	require.NoError(t, err)
	_, err = leaveRepo.Create(ctx, leave.LeaveRequest{EmployeeID: "emp-b", LeaveType: leave.LeaveTypeSick, StartDate: dateutil.New(2024, 3, 7), EndDate: dateutil.New(2024, 3, 7), Days: 1, Status: leave.LeaveRequestStatusPending})
	require.NoError(t, err)

	holidays := holidayService.NewHolidayService(memory.NewHolidayRepository(store), nil)
	svc := NewReportService(memory.NewEmployeeRepository(store), daystatus.NewLoader(attendanceRepo, leaveRepo, holidays), time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestReportService_CompanyReport(t *testing.T) {
	// Setup
	svc := newService(t)

	// Act
	rep, err := svc.CompanyReport(adminCtx, march)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, report.Period{From: "2024-03-01", To: "2024-03-31", AsOf: "2024-03-10"}, rep.Period)
	require.Len(t, rep.Employees, 2, "inactive employees are excluded")

	anita := rep.Employees[0]
	assert.Equal(t, "emp-a", anita.EmployeeID)
	assert.Equal(t, "Engineer", anita.Position)
	assert.Equal(t, report.Counts{Present: 2, Late: 1, Leave: 1, Absent: 3}, anita.Counts)
	assert.Equal(t, 42.9, anita.AttendancePercentage)
	assert.Equal(t, 8.0, anita.AverageWorkHours)
	assert.Equal(t, report.BadgePoor, anita.Badge)

	bala := rep.Employees[1]
	assert.Equal(t, report.Counts{Absent: 7}, bala.Counts, "pending leave does not excuse a day")
	assert.Equal(t, 0.0, bala.AttendancePercentage)

	assert.Equal(t, 2, rep.Overall.TotalEmployees)
	assert.Equal(t, 3, rep.Overall.TotalPresentDays)
	assert.InDelta(t, 21.5, rep.Overall.AverageAttendance, 0.001)
	assert.Equal(t, 8.0, rep.Overall.AverageWorkHours)
	assert.Equal(t, report.Distribution{Below75: 2}, rep.Distribution)
	require.Len(t, rep.Departments, 2)
	assert.Equal(t, "Engineering", rep.Departments[0].Department)
}

func TestReportService_CompanyReport_DepartmentFilter(t *testing.T) {
	svc := newService(t)
	sales := "Sales"

	rep, err := svc.CompanyReport(adminCtx, report.PeriodRequest{From: "2024-03-01", To: "2024-03-05", Department: &sales})

	require.NoError(t, err)
	require.Len(t, rep.Employees, 1)
	assert.Equal(t, "emp-b", rep.Employees[0].EmployeeID)
	assert.Equal(t, 4, rep.Employees[0].Absent)
}

func TestReportService_CompanyReport_RequiresReportsView(t *testing.T) {
	svc := newService(t)

	_, err := svc.CompanyReport(anitaCtx, march)

	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestReportService_EmployeeReport(t *testing.T) {
	svc := newService(t)

	mine, err := svc.MyReport(anitaCtx, march)
	require.NoError(t, err)
	assert.Equal(t, 42.9, mine.Employee.AttendancePercentage)

	viaID, err := svc.EmployeeReport(anitaCtx, "emp-a", march)
	require.NoError(t, err)
	assert.Equal(t, mine.Employee, viaID.Employee)

	_, err = svc.EmployeeReport(anitaCtx, "emp-b", march)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.EmployeeReport(adminCtx, "ghost", march)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReportService_DailyReport(t *testing.T) {
	// Setup
	svc := newService(t)

	// Act
	day, err := svc.DailyReport(adminCtx, report.DailyReportRequest{Date: "2024-03-04"})

	// Assert
	require.NoError(t, err)
	assert.Nil(t, day.Holiday)
	assert.Equal(t, report.DailySummary{Late: 1, Absent: 1}, day.Summary)
	require.Len(t, day.Rows, 2)

	anita := day.Rows[0]
	assert.Equal(t, "late", anita.Status)
	require.NotNil(t, anita.PunchIn)
	assert.Equal(t, "09:00 AM", *anita.PunchIn)
	require.NotNil(t, anita.HomeReached)
	assert.True(t, *anita.HomeReached)
	assert.Equal(t, "06:30 PM", *anita.HomeReachedAt)

	bala := day.Rows[1]
	assert.Equal(t, "absent", bala.Status)
	assert.Nil(t, bala.HomeReached)
}

func TestReportService_DailyReport_HolidayAndFuture(t *testing.T) {
	svc := newService(t)

	holidayDay, err := svc.DailyReport(adminCtx, report.DailyReportRequest{Date: "2024-03-06"})
	require.NoError(t, err)
	require.NotNil(t, holidayDay.Holiday)
	assert.Equal(t, "Founders Day", *holidayDay.Holiday)
	assert.Equal(t, "holiday", holidayDay.Rows[1].Status)

	future, err := svc.DailyReport(adminCtx, report.DailyReportRequest{Date: "2024-03-20"})
	require.NoError(t, err)
	assert.Equal(t, "no-record", future.Rows[1].Status)
	assert.Equal(t, report.DailySummary{}, future.Summary)
}

func TestReportService_ExportCompanyReport(t *testing.T) {
	// Setup
	svc := newService(t)
	var buf bytes.Buffer

	// Act
	err := svc.ExportCompanyReport(adminCtx, march, &buf)

	// Assert
	require.NoError(t, err)
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{employeesSheet, departmentsSheet}, f.GetSheetList())
	rows, err := f.GetRows(employeesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, employeeColumns, rows[3])
	assert.Equal(t, []string{"EMP001", "Anita Rao", "Engineering", "Engineer", "2", "1", "1", "3", "8", "42.9", "Poor"}, rows[4])

	code, err := f.GetCellValue(employeesSheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "EMP002", code)
}
