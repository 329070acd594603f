package leave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	employeeCtx = user.WithActor(context.Background(), user.Actor{EmployeeID: "emp-1", Role: user.RoleEmployee})
	managerCtx  = user.WithActor(context.Background(), user.Actor{EmployeeID: "mgr-1", Role: user.RoleManager})
)

func newService(t *testing.T) *LeaveServiceImpl {
	t.Helper()
	store := memory.NewStore()
	store.AddEmployee(employee.Employee{ID: "emp-1", Code: "EMP001", FullName: "Priya Nair", Department: "Engineering", Status: employee.EmploymentStatusActive, Role: user.RoleEmployee})
	store.AddEmployee(employee.Employee{ID: "emp-2", Code: "EMP002", FullName: "Ravi Kumar", Department: "Sales", Status: employee.EmploymentStatusActive, Role: user.RoleEmployee})
	store.AddEmployee(employee.Employee{ID: "emp-gone", Code: "EMP003", FullName: "Old Hand", Department: "Sales", Status: employee.EmploymentStatusInactive, Role: user.RoleEmployee})

	svc := NewLeaveService(memory.NewLeaveRequestRepository(store), memory.NewEmployeeRepository(store), 0, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func apply(t *testing.T, svc *LeaveServiceImpl, ctx context.Context, leaveType leave.LeaveType, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := svc.ApplyLeave(ctx, leave.CreateLeaveRequestRequest{LeaveType: string(leaveType), StartDate: start, EndDate: end, Reason: "personal"})
	require.NoError(t, err)
	return resp
}

func ptr[T any](v T) *T { return &v }

func TestLeaveService_ApplyLeave(t *testing.T) {
	// Setup
	svc := newService(t)

	// Act
	resp := apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-01", "2024-03-03")

	// Assert
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.PayType)
	assert.Equal(t, "2024-03-02", resp.AppliedOn)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Priya Nair", *resp.EmployeeName)
}

func TestLeaveService_ApplyLeave_Validation(t *testing.T) {
	svc := newService(t)

	_, err := svc.ApplyLeave(employeeCtx, leave.CreateLeaveRequestRequest{LeaveType: "Casual Leave", StartDate: "2024-03-05", EndDate: "2024-03-01", Reason: "x"})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = svc.ApplyLeave(employeeCtx, leave.CreateLeaveRequestRequest{LeaveType: "Casual Leave", StartDate: "0001-01-01", EndDate: "9999-12-31", Reason: "x"})
	assert.ErrorIs(t, err, leave.ErrLeaveSpanTooLong)

	_, err = svc.ApplyLeave(user.WithActor(context.Background(), user.Actor{EmployeeID: "emp-gone", Role: user.RoleEmployee}),
		leave.CreateLeaveRequestRequest{LeaveType: "Casual Leave", StartDate: "2024-03-05", EndDate: "2024-03-05", Reason: "x"})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestLeaveService_ApplyLeave_SickMonthlyGate(t *testing.T) {
	// Setup
	svc := newService(t)
	first := apply(t, svc, employeeCtx, leave.LeaveTypeSick, "2024-03-05", "2024-03-05")

	// A pending sick leave does not close the month.
	second := apply(t, svc, employeeCtx, leave.LeaveTypeSick, "2024-03-10", "2024-03-10")
	_, err := svc.RejectLeaveRequest(managerCtx, second.ID)
	require.NoError(t, err)

	_, err = svc.ApproveLeaveRequest(managerCtx, leave.ApproveLeaveRequestRequest{ID: first.ID})
	require.NoError(t, err)

	// Act
	_, sameMonth := svc.ApplyLeave(employeeCtx, leave.CreateLeaveRequestRequest{LeaveType: "Sick Leave", StartDate: "2024-03-20", EndDate: "2024-03-21", Reason: "flu"})
	_, nextMonth := svc.ApplyLeave(employeeCtx, leave.CreateLeaveRequestRequest{LeaveType: "Sick Leave", StartDate: "2024-04-01", EndDate: "2024-04-01", Reason: "flu"})
	_, casual := svc.ApplyLeave(employeeCtx, leave.CreateLeaveRequestRequest{LeaveType: "Casual Leave", StartDate: "2024-03-20", EndDate: "2024-03-20", Reason: "errand"})
	_, otherEmployee := svc.ApplyLeave(user.WithActor(context.Background(), user.Actor{EmployeeID: "emp-2", Role: user.RoleEmployee}),
		leave.CreateLeaveRequestRequest{LeaveType: "Sick Leave", StartDate: "2024-03-20", EndDate: "2024-03-20", Reason: "flu"})

	// Assert
	assert.ErrorIs(t, sameMonth, leave.ErrSickLeaveAlreadyTakenThisMonth)
	assert.NoError(t, nextMonth)
	assert.NoError(t, casual)
	assert.NoError(t, otherEmployee)
}

func TestLeaveService_ApproveLeaveRequest_SickIsAlwaysPaid(t *testing.T) {
	svc := newService(t)
	req := apply(t, svc, employeeCtx, leave.LeaveTypeSick, "2024-03-05", "2024-03-06")

	resp, err := svc.ApproveLeaveRequest(managerCtx, leave.ApproveLeaveRequestRequest{ID: req.ID, PayType: ptr("unpaid")})

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.PayType)
	assert.Equal(t, "paid", *resp.PayType)
	require.NotNil(t, resp.DecidedBy)
	assert.Equal(t, "mgr-1", *resp.DecidedBy)
}

func TestLeaveService_CasualPayTypeLifecycle(t *testing.T) {
	// Setup
	svc := newService(t)
	req := apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-05", "2024-03-06")

	// Act
	approved, err := svc.ApproveLeaveRequest(managerCtx, leave.ApproveLeaveRequestRequest{ID: req.ID})
	require.NoError(t, err)
	paid, err := svc.SetPayType(managerCtx, leave.SetPayTypeRequest{ID: req.ID, PayType: "Paid"})
	require.NoError(t, err)
	unpaid, err := svc.SetPayType(managerCtx, leave.SetPayTypeRequest{ID: req.ID, PayType: "unpaid"})
	require.NoError(t, err)

	// Assert
	assert.Nil(t, approved.PayType)
	assert.Equal(t, "paid", *paid.PayType)
	assert.Equal(t, "unpaid", *unpaid.PayType)
	assert.Equal(t, "approved", unpaid.Status)
}

func TestLeaveService_CasualApprovalWithPayType(t *testing.T) {
	svc := newService(t)
	req := apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-05", "2024-03-05")

	resp, err := svc.ApproveLeaveRequest(managerCtx, leave.ApproveLeaveRequestRequest{ID: req.ID, PayType: ptr("unpaid")})

	require.NoError(t, err)
	assert.Equal(t, "unpaid", *resp.PayType)
}

func TestLeaveService_SetPayType_Rules(t *testing.T) {
	svc := newService(t)
	sick := apply(t, svc, employeeCtx, leave.LeaveTypeSick, "2024-03-05", "2024-03-05")
	casual := apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-08", "2024-03-08")
	_, err := svc.RejectLeaveRequest(managerCtx, casual.ID)
	require.NoError(t, err)

	_, err = svc.SetPayType(managerCtx, leave.SetPayTypeRequest{ID: sick.ID, PayType: "unpaid"})
	assert.ErrorIs(t, err, leave.ErrPayTypeNotApplicable)

	_, err = svc.SetPayType(managerCtx, leave.SetPayTypeRequest{ID: casual.ID, PayType: "paid"})
	assert.ErrorIs(t, err, leave.ErrPayTypeOnRejectedLeave)

	_, err = svc.SetPayType(employeeCtx, leave.SetPayTypeRequest{ID: casual.ID, PayType: "paid"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestLeaveService_RejectLeaveRequest(t *testing.T) {
	svc := newService(t)
	req := apply(t, svc, employeeCtx, leave.LeaveTypeSick, "2024-03-05", "2024-03-05")

	rejected, err := svc.RejectLeaveRequest(managerCtx, req.ID)
	require.NoError(t, err)
	again, err := svc.RejectLeaveRequest(managerCtx, req.ID)
	require.NoError(t, err)
	_, conflict := svc.ApproveLeaveRequest(managerCtx, leave.ApproveLeaveRequestRequest{ID: req.ID})

	assert.Equal(t, "rejected", rejected.Status)
	assert.Nil(t, rejected.PayType, "rejection never sets pay type")
	assert.Equal(t, rejected, again)
	assert.ErrorIs(t, conflict, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestLeaveService_ConcurrentDecisions(t *testing.T) {
	// Setup
	svc := newService(t)
	req := apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-05", "2024-03-05")

	// Act
	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.ApproveLeaveRequest(managerCtx, leave.ApproveLeaveRequestRequest{ID: req.ID})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.RejectLeaveRequest(managerCtx, req.ID)
	}()
	wg.Wait()

	// Assert
	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}

func TestLeaveService_Permissions(t *testing.T) {
	svc := newService(t)
	req := apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-05", "2024-03-05")
	other := user.WithActor(context.Background(), user.Actor{EmployeeID: "emp-2", Role: user.RoleEmployee})

	_, err := svc.ApproveLeaveRequest(employeeCtx, leave.ApproveLeaveRequestRequest{ID: req.ID})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.GetLeaveRequest(other, req.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	got, err := svc.GetLeaveRequest(managerCtx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)

	_, err = svc.ListLeaveRequests(employeeCtx, leave.LeaveRequestFilter{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.GetLeaveRequest(managerCtx, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_Lists(t *testing.T) {
	svc := newService(t)
	apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-05", "2024-03-05")
	apply(t, svc, employeeCtx, leave.LeaveTypeSick, "2024-03-08", "2024-03-08")
	apply(t, svc, user.WithActor(context.Background(), user.Actor{EmployeeID: "emp-2", Role: user.RoleEmployee}), leave.LeaveTypeCasual, "2024-03-05", "2024-03-05")

	mine, err := svc.ListMyLeaveRequests(employeeCtx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	all, err := svc.ListLeaveRequests(managerCtx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	sick, err := svc.ListLeaveRequests(managerCtx, leave.LeaveRequestFilter{LeaveType: ptr("Sick Leave")})
	require.NoError(t, err)

	assert.Equal(t, int64(2), mine.TotalCount)
	assert.Equal(t, int64(3), all.TotalCount)
	assert.Equal(t, int64(1), sick.TotalCount)
}

func TestLeaveService_GetMyBalance(t *testing.T) {
	// Setup
	svc := newService(t)
	sick := apply(t, svc, employeeCtx, leave.LeaveTypeSick, "2024-03-05", "2024-03-06")
	casual := apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-12", "2024-03-14")
	apply(t, svc, employeeCtx, leave.LeaveTypeCasual, "2024-03-20", "2024-03-20")
	_, err := svc.ApproveLeaveRequest(managerCtx, leave.ApproveLeaveRequestRequest{ID: sick.ID})
	require.NoError(t, err)
	_, err = svc.ApproveLeaveRequest(managerCtx, leave.ApproveLeaveRequestRequest{ID: casual.ID})
	require.NoError(t, err)

	// Act
	balance, err := svc.GetMyBalance(employeeCtx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2024, balance.Year)
	assert.Equal(t, 3, balance.Month)
	assert.Equal(t, 12, balance.SickQuota)
	assert.Equal(t, 2, balance.SickTakenThisYear)
	assert.Equal(t, 10, balance.SickRemaining)
	assert.False(t, balance.SickAvailableThisMonth)
	assert.Equal(t, 2, balance.SickTakenThisMonth)
	assert.Equal(t, 3, balance.CasualTakenThisMonth)
	assert.Equal(t, 2, balance.ApprovedThisMonth)
	assert.Equal(t, 1, balance.PendingThisMonth)
}
