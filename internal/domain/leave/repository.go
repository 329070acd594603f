package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	// GetByID returns ErrLeaveRequestNotFound when no request matches.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// ListByEmployee returns every request of the employee, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// ListApproved returns approved requests overlapping [from, to]; empty employeeIDs means all.
	ListApproved(ctx context.Context, from, to time.Time, employeeIDs []string) ([]LeaveRequest, error)

	// Decide moves status from pending to to, writing payType in the same
	// statement. It reports false when the request was no longer pending.
	Decide(ctx context.Context, id string, to LeaveRequestStatus, payType *PayType, by string, at time.Time) (bool, error)

	// SetPayType updates pay type of a non-rejected request without touching status.
	// It reports false when the request is rejected.
	SetPayType(ctx context.Context, id string, payType PayType, by string, at time.Time) (bool, error)
}
