package postgresqltest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEmployee(t *testing.T, setup *TestDatabaseSetup, code string) employee.Employee {
	t.Helper()
	emp := employee.Employee{
		ID:         uuid.NewString(),
		Code:       code,
		FullName:   "Employee " + code,
		Department: "Engineering",
		Gender:     employee.Female,
		Status:     employee.EmploymentStatusActive,
		Role:       user.RoleEmployee,
	}
	writer := postgresql.NewEmployeeRepository(setup.DB).(postgresql.EmployeeWriter)
	require.NoError(t, writer.Insert(context.Background(), emp))
	return emp
}

func openRecord(employeeID string, day time.Time) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID:     employeeID,
		Date:           day,
		PunchIn:        day.Add(9 * time.Hour),
		Status:         attendance.StatusPresent,
		WorkMode:       attendance.WorkModeOffice,
		ApprovalStatus: attendance.ApprovalApproved,
	}
}

func TestAttendanceRepository_Create_ConcurrentSameDay(t *testing.T) {
	// Setup
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := seedEmployee(t, setup, "EMP001")
	day := dateutil.New(2024, 3, 4)

	// Act
	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), openRecord(emp.ID, day))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedToday) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)
}

func TestAttendanceRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := seedEmployee(t, setup, "EMP001")
	day := dateutil.New(2024, 3, 4)

	rec := openRecord(emp.ID, day)
	rec.Status = attendance.StatusLate
	na := attendance.LateNotApproved
	rec.LateApprovalStatus = &na

	created, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", dateutil.Format(created.Date))
	require.NotNil(t, created.EmployeeName)
	assert.Equal(t, emp.FullName, *created.EmployeeName)
	require.NotNil(t, created.LateApprovalStatus)
	assert.Equal(t, attendance.LateNotApproved, *created.LateApprovalStatus)

	got, err := repo.GetByEmployeeAndDate(context.Background(), emp.ID, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	missing, err := repo.GetByEmployeeAndDate(context.Background(), emp.ID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_ClosePunch_OnlyOnce(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := seedEmployee(t, setup, "EMP001")
	day := dateutil.New(2024, 3, 4)
	created, err := repo.Create(context.Background(), openRecord(emp.ID, day))
	require.NoError(t, err)

	out := day.Add(17*time.Hour + 30*time.Minute)
	closed, err := repo.ClosePunch(context.Background(), created.ID, out, 8.5, false)
	require.NoError(t, err)
	require.NotNil(t, closed.WorkHours)
	assert.Equal(t, 8.5, *closed.WorkHours)

	_, err = repo.ClosePunch(context.Background(), created.ID, out.Add(time.Hour), 9.5, true)
	assert.ErrorIs(t, err, attendance.ErrNoActivePunchIn)

	open, err := repo.ListOpen(context.Background(), day)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAttendanceRepository_MarkHomeReached_KeepsFirst(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := seedEmployee(t, setup, "EMP001")
	day := dateutil.New(2024, 3, 4)
	created, err := repo.Create(context.Background(), openRecord(emp.ID, day))
	require.NoError(t, err)
	_, err = repo.ClosePunch(context.Background(), created.ID, day.Add(18*time.Hour), 9, false)
	require.NoError(t, err)

	first := day.Add(18*time.Hour + 40*time.Minute)
	_, err = repo.MarkHomeReached(context.Background(), created.ID, first)
	require.NoError(t, err)
	again, err := repo.MarkHomeReached(context.Background(), created.ID, first.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, again.HomeReached)
	assert.True(t, first.Equal(*again.HomeReachedAt))
}

func TestAttendanceRepository_UpdateWorkModeApproval_CompareAndSet(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	emp := seedEmployee(t, setup, "EMP001")
	approver := seedEmployee(t, setup, "MGR001")
	rec := openRecord(emp.ID, dateutil.New(2024, 3, 4))
	rec.WorkMode = attendance.WorkModeWFH
	rec.ApprovalStatus = attendance.ApprovalPending
	created, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)

	ok, err := repo.UpdateWorkModeApproval(context.Background(), created.ID, attendance.ApprovalPending, attendance.ApprovalApproved, approver.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateWorkModeApproval(context.Background(), created.ID, attendance.ApprovalPending, attendance.ApprovalRejected, approver.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.UpdateWorkModeApproval(context.Background(), uuid.NewString(), attendance.ApprovalPending, attendance.ApprovalApproved, approver.ID, time.Now())
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_ListAndListBetween(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewAttendanceRepository(setup.DB)
	a := seedEmployee(t, setup, "EMP001")
	b := seedEmployee(t, setup, "EMP002")
	for _, d := range []int{4, 5, 6} {
		_, err := repo.Create(context.Background(), openRecord(a.ID, dateutil.New(2024, 3, d)))
		require.NoError(t, err)
	}
	_, err := repo.Create(context.Background(), openRecord(b.ID, dateutil.New(2024, 3, 5)))
	require.NoError(t, err)

	between, err := repo.ListBetween(context.Background(), dateutil.New(2024, 3, 5), dateutil.New(2024, 3, 6), []string{a.ID})
	require.NoError(t, err)
	assert.Len(t, between, 2)

	everyone, err := repo.ListBetween(context.Background(), dateutil.New(2024, 3, 1), dateutil.New(2024, 3, 31), nil)
	require.NoError(t, err)
	assert.Len(t, everyone, 4)

	page, total, err := repo.List(context.Background(), attendance.AttendanceFilter{EmployeeID: &a.ID, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "2024-03-06", dateutil.Format(page[0].Date))
}
