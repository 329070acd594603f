package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
)

// AttendanceService drives the punch state machine for the authenticated employee.
type AttendanceService interface {
	PunchIn(ctx context.Context, req PunchInRequest) (AttendanceResponse, error)
	PunchOut(ctx context.Context) (AttendanceResponse, error)
	MarkReachedHome(ctx context.Context, req ReachedHomeRequest) (AttendanceResponse, error)

	GetToday(ctx context.Context) (TodayResponse, error)
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	// ListAttendance lists records across employees (admin/manager).
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetCalendar(ctx context.Context, req MonthRequest) (calendar.Month, error)
	GetLateSummary(ctx context.Context, req MonthRequest) (LateSummaryResponse, error)
}

// ApprovalService holds the work-mode and late approval tracks. Every
// transition requires an approver and is idempotent for a repeated decision.
type ApprovalService interface {
	ApproveWorkMode(ctx context.Context, id string) (AttendanceResponse, error)
	RejectWorkMode(ctx context.Context, id string) (AttendanceResponse, error)
	ApproveLate(ctx context.Context, id string) (AttendanceResponse, error)
	// RejectLate leaves (or puts back) the record at not_approved.
	RejectLate(ctx context.Context, id string) (AttendanceResponse, error)

	ListPendingWorkMode(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	ListLateArrivals(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
