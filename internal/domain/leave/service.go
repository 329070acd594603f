package leave

import (
	"context"
)

type LeaveService interface {
	// Employee
	ApplyLeave(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	GetMyBalance(ctx context.Context) (BalanceResponse, error)

	// Admin / manager
	ApproveLeaveRequest(ctx context.Context, req ApproveLeaveRequestRequest) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	SetPayType(ctx context.Context, req SetPayTypeRequest) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
}
