package approval

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manager = user.WithActor(context.Background(), user.Actor{EmployeeID: "mgr-1", Role: user.RoleManager})

func setup(t *testing.T) (*ApprovalServiceImpl, attendance.AttendanceRepository) {
	t.Helper()
	store := memory.NewStore()
	store.AddEmployee(employee.Employee{ID: "emp-1", Code: "EMP001", FullName: "Ravi Kumar", Department: "Sales", Status: employee.EmploymentStatusActive, Role: user.RoleEmployee})
	repo := memory.NewAttendanceRepository(store)
	svc := NewApprovalService(repo, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func seed(t *testing.T, repo attendance.AttendanceRepository, day int, mode attendance.WorkMode, late bool) attendance.Attendance {
	t.Helper()
	rec := attendance.Attendance{
		EmployeeID:     "emp-1",
		Date:           dateutil.New(2024, 3, day),
		PunchIn:        time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC),
		Status:         attendance.StatusPresent,
		WorkMode:       mode,
		ApprovalStatus: attendance.ApprovalApproved,
	}
	if mode.RequiresApproval() {
		rec.ApprovalStatus = attendance.ApprovalPending
	}
	if late {
		rec.Status = attendance.StatusLate
		na := attendance.LateNotApproved
		rec.LateApprovalStatus = &na
	}
	created, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)
	return created
}

func TestApprovalService_ApproveWorkMode(t *testing.T) {
	// Setup
	svc, repo := setup(t)
	rec := seed(t, repo, 4, attendance.WorkModeWFH, false)

	// Act
	resp, err := svc.ApproveWorkMode(manager, rec.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.ApprovalStatus)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "mgr-1", *resp.ApprovedBy)
}

func TestApprovalService_WorkModeDecisionIsIdempotent(t *testing.T) {
	svc, repo := setup(t)
	rec := seed(t, repo, 4, attendance.WorkModeOutside, false)

	first, err := svc.RejectWorkMode(manager, rec.ID)
	require.NoError(t, err)
	second, err := svc.RejectWorkMode(manager, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = svc.ApproveWorkMode(manager, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrWorkModeAlreadyDecided)
}

func TestApprovalService_WorkMode_OfficeRecord(t *testing.T) {
	svc, repo := setup(t)
	rec := seed(t, repo, 4, attendance.WorkModeOffice, false)

	_, err := svc.ApproveWorkMode(manager, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrWorkModeApprovalNotRequired)
}

func TestApprovalService_WorkMode_ConcurrentDecisions(t *testing.T) {
	// Setup
	svc, repo := setup(t)
	rec := seed(t, repo, 4, attendance.WorkModeWFH, false)

	// Act
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, decide := range []func(context.Context, string) (attendance.AttendanceResponse, error){svc.ApproveWorkMode, svc.RejectWorkMode} {
		wg.Add(1)
		go func(i int, decide func(context.Context, string) (attendance.AttendanceResponse, error)) {
			defer wg.Done()
			_, errs[i] = decide(manager, rec.ID)
		}(i, decide)
	}
	wg.Wait()

	// Assert
	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, attendance.ErrWorkModeAlreadyDecided)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one decision wins")
}

func TestApprovalService_Late(t *testing.T) {
	svc, repo := setup(t)
	rec := seed(t, repo, 4, attendance.WorkModeOffice, true)

	approved, err := svc.ApproveLate(manager, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.LateApprovalStatus)
	assert.Equal(t, "approved", *approved.LateApprovalStatus)

	again, err := svc.ApproveLate(manager, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, approved, again)

	reverted, err := svc.RejectLate(manager, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "not_approved", *reverted.LateApprovalStatus)
	assert.Equal(t, "late", reverted.Status, "late status itself is never cleared")
}

func TestApprovalService_Late_NotLate(t *testing.T) {
	svc, repo := setup(t)
	rec := seed(t, repo, 4, attendance.WorkModeOffice, false)

	_, err := svc.ApproveLate(manager, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrNotLate)
}

func TestApprovalService_RequiresApprover(t *testing.T) {
	svc, repo := setup(t)
	rec := seed(t, repo, 4, attendance.WorkModeWFH, true)
	employeeCtx := user.WithActor(context.Background(), user.Actor{EmployeeID: "emp-1", Role: user.RoleEmployee})

	_, err := svc.ApproveWorkMode(employeeCtx, rec.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	_, err = svc.ApproveLate(employeeCtx, rec.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	_, err = svc.ListLateArrivals(employeeCtx, attendance.AttendanceFilter{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestApprovalService_NotFound(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.ApproveWorkMode(manager, "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	_, err = svc.ApproveLate(manager, uuid.Must(uuid.NewV7()).String())
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestApprovalService_Lists(t *testing.T) {
	// Setup
	svc, repo := setup(t)
	seed(t, repo, 4, attendance.WorkModeOffice, true)
	seed(t, repo, 5, attendance.WorkModeWFH, false)
	decided := seed(t, repo, 6, attendance.WorkModeOutside, true)
	_, err := svc.ApproveWorkMode(manager, decided.ID)
	require.NoError(t, err)

	// Act
	pending, err := svc.ListPendingWorkMode(manager, attendance.AttendanceFilter{})
	require.NoError(t, err)
	late, err := svc.ListLateArrivals(manager, attendance.AttendanceFilter{})
	require.NoError(t, err)

	// Assert
	require.Len(t, pending.Attendances, 1)
	assert.Equal(t, "2024-03-05", pending.Attendances[0].Date)
	assert.Equal(t, int64(2), late.TotalCount)
}
