package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type ApprovalServiceImpl struct {
	attendance.AttendanceRepository
	location *time.Location
	now      func() time.Time
}

func NewApprovalService(attendanceRepo attendance.AttendanceRepository, location *time.Location) *ApprovalServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &ApprovalServiceImpl{
		AttendanceRepository: attendanceRepo,
		location:             location,
		now:                  time.Now,
	}
}

var _ attendance.ApprovalService = (*ApprovalServiceImpl)(nil)

func (s *ApprovalServiceImpl) approver(ctx context.Context) (user.Actor, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return user.Actor{}, err
	}
	if err := actor.Require(user.PermissionAttendanceApprove); err != nil {
		return user.Actor{}, err
	}
	return actor, nil
}

func (s *ApprovalServiceImpl) get(ctx context.Context, id string) (attendance.Attendance, error) {
	if !validator.IsValidUUID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	rec, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// decideWorkMode moves a pending wfh/outside record to the given decision.
// Repeating the decision already taken returns the record unchanged.
func (s *ApprovalServiceImpl) decideWorkMode(ctx context.Context, id string, to attendance.ApprovalStatus) (attendance.AttendanceResponse, error) {
	actor, err := s.approver(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.get(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !rec.WorkMode.RequiresApproval() {
		return attendance.AttendanceResponse{}, attendance.ErrWorkModeApprovalNotRequired
	}

	updated, err := s.AttendanceRepository.UpdateWorkModeApproval(ctx, id, attendance.ApprovalPending, to, actor.EmployeeID, s.now())
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update work mode approval: %w", err)
	}

	// Re-read to see what actually landed, ours or a concurrent decision.
	rec, err = s.get(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec.ApprovalStatus != to {
		return attendance.AttendanceResponse{}, attendance.ErrWorkModeAlreadyDecided
	}

	if updated {
		slog.Info("work mode decided",
			"attendance_id", id,
			"employee_id", rec.EmployeeID,
			"work_mode", rec.WorkMode,
			"decision", to,
			"decided_by", actor.EmployeeID,
		)
	}
	return attendance.ToResponse(rec, s.location), nil
}

// ApproveWorkMode implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) ApproveWorkMode(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return s.decideWorkMode(ctx, id, attendance.ApprovalApproved)
}

// RejectWorkMode implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) RejectWorkMode(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return s.decideWorkMode(ctx, id, attendance.ApprovalRejected)
}

func (s *ApprovalServiceImpl) decideLate(ctx context.Context, id string, to attendance.LateApprovalStatus) (attendance.AttendanceResponse, error) {
	actor, err := s.approver(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := s.get(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !rec.IsLate() || rec.LateApprovalStatus == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotLate
	}
	if *rec.LateApprovalStatus == to {
		return attendance.ToResponse(rec, s.location), nil
	}

	from := attendance.LateNotApproved
	if to == attendance.LateNotApproved {
		from = attendance.LateApproved
	}

	updated, err := s.AttendanceRepository.UpdateLateApproval(ctx, id, from, to, actor.EmployeeID, s.now())
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update late approval: %w", err)
	}

	rec, err = s.get(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if updated {
		slog.Info("late arrival decided",
			"attendance_id", id,
			"employee_id", rec.EmployeeID,
			"decision", to,
			"decided_by", actor.EmployeeID,
		)
	}
	return attendance.ToResponse(rec, s.location), nil
}

// ApproveLate implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) ApproveLate(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return s.decideLate(ctx, id, attendance.LateApproved)
}

// RejectLate implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) RejectLate(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return s.decideLate(ctx, id, attendance.LateNotApproved)
}

func (s *ApprovalServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if _, err := s.approver(ctx); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewListResponse(records, total, filter, s.location), nil
}

// ListPendingWorkMode implements attendance.ApprovalService. Office punches
// are approved on creation, so pending only ever matches wfh and outside.
func (s *ApprovalServiceImpl) ListPendingWorkMode(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	pending := string(attendance.ApprovalPending)
	filter.ApprovalStatus = &pending
	return s.list(ctx, filter)
}

// ListLateArrivals implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) ListLateArrivals(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	late := string(attendance.StatusLate)
	filter.Status = &late
	return s.list(ctx, filter)
}
