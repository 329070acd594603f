package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	sickQuota int
	location  *time.Location
	now       func() time.Time
}

func NewLeaveService(
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	sickQuota int,
	location *time.Location,
) *LeaveServiceImpl {
	if sickQuota <= 0 {
		sickQuota = leave.DefaultSickLeaveYearlyQuota
	}
	if location == nil {
		location = time.UTC
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		sickQuota:              sickQuota,
		location:               location,
		now:                    time.Now,
	}
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)

func (s *LeaveServiceImpl) today() time.Time {
	return dateutil.In(s.now(), s.location)
}

func (s *LeaveServiceImpl) actor(ctx context.Context, permission user.Permission) (user.Actor, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return user.Actor{}, err
	}
	if err := actor.Require(permission); err != nil {
		return user.Actor{}, err
	}
	return actor, nil
}

func (s *LeaveServiceImpl) get(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}

// ApplyLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	actor, err := s.actor(ctx, user.PermissionLeaveCreate)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequestResponse{}, err
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}

	start, end := req.Span()
	days, err := leave.CountDays(start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType := leave.LeaveType(req.LeaveType)
	if leaveType == leave.LeaveTypeSick {
		existing, err := s.LeaveRequestRepository.ListByEmployee(ctx, emp.ID)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
		}
		if leave.SickLeaveTakenInMonth(existing, start) {
			return leave.LeaveRequestResponse{}, leave.ErrSickLeaveAlreadyTakenThisMonth
		}
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     req.Reason,
		AppliedOn:  s.today(),
		Status:     leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("leave request created",
		"leave_request_id", created.ID,
		"employee_id", emp.ID,
		"leave_type", created.LeaveType,
		"days", created.Days,
	)
	return leave.ToResponse(created), nil
}

// decide moves a pending request to the given status. The same decision
// repeated returns the stored request; a different one is a conflict.
func (s *LeaveServiceImpl) decide(ctx context.Context, id string, to leave.LeaveRequestStatus, requested *leave.PayType) (leave.LeaveRequestResponse, error) {
	actor, err := s.actor(ctx, user.PermissionLeaveApprove)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.get(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var payType *leave.PayType
	if to == leave.LeaveRequestStatusApproved {
		payType = leave.ResolvePayType(request.LeaveType, requested)
	}

	updated, err := s.LeaveRequestRepository.Decide(ctx, id, to, payType, actor.EmployeeID, s.now())
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to decide leave request: %w", err)
	}

	request, err = s.get(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != to {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if updated {
		slog.Info("leave request decided",
			"leave_request_id", id,
			"employee_id", request.EmployeeID,
			"status", to,
			"decided_by", actor.EmployeeID,
		)
	}
	return leave.ToResponse(request), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, req leave.ApproveLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return s.decide(ctx, req.ID, leave.LeaveRequestStatusApproved, req.RequestedPayType())
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, id, leave.LeaveRequestStatusRejected, nil)
}

// SetPayType implements leave.LeaveService.
func (s *LeaveServiceImpl) SetPayType(ctx context.Context, req leave.SetPayTypeRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	actor, err := s.actor(ctx, user.PermissionLeavePayType)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.get(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.LeaveType != leave.LeaveTypeCasual {
		return leave.LeaveRequestResponse{}, leave.ErrPayTypeNotApplicable
	}

	ok, err := s.LeaveRequestRepository.SetPayType(ctx, req.ID, leave.PayType(req.PayType), actor.EmployeeID, s.now())
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to set pay type: %w", err)
	}
	if !ok {
		return leave.LeaveRequestResponse{}, leave.ErrPayTypeOnRejectedLeave
	}

	request, err = s.get(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	slog.Info("leave pay type set", "leave_request_id", req.ID, "pay_type", req.PayType, "set_by", actor.EmployeeID)
	return leave.ToResponse(request), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.get(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.EmployeeID != actor.EmployeeID && !actor.Can(user.PermissionLeaveViewAll) {
		// Other employees' requests are reported as missing.
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	return leave.ToResponse(request), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	actor, err := s.actor(ctx, user.PermissionLeaveViewOwn)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	filter.EmployeeID = &actor.EmployeeID
	filter.Department = nil
	return s.list(ctx, filter)
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if _, err := s.actor(ctx, user.PermissionLeaveViewAll); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return s.list(ctx, filter)
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewListResponse(requests, total, filter), nil
}

// GetMyBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyBalance(ctx context.Context) (leave.BalanceResponse, error) {
	actor, err := s.actor(ctx, user.PermissionLeaveViewOwn)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.Summarize(actor.EmployeeID, requests, s.sickQuota, s.today()), nil
}
