package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Every mutation is a single conditional write so concurrent callers cannot
// interleave a read-modify-write.
type AttendanceRepository interface {
	// Create inserts a record; a second record for the same employee and date
	// fails with ErrAlreadyPunchedToday.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when no record matches.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when the employee has no record for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ClosePunch sets punch-out and work hours only while punch-out is still null.
	// It returns ErrNoActivePunchIn when the record is already closed.
	ClosePunch(ctx context.Context, id string, punchOut time.Time, workHours float64, autoClosed bool) (Attendance, error)

	// MarkHomeReached sets the flag once; later calls keep the first timestamp.
	MarkHomeReached(ctx context.Context, id string, at time.Time) (Attendance, error)

	// UpdateWorkModeApproval moves approval_status from -> to. It reports false
	// when the stored status was not from.
	UpdateWorkModeApproval(ctx context.Context, id string, from, to ApprovalStatus, by string, at time.Time) (bool, error)

	// UpdateLateApproval moves late_approval_status from -> to. It reports false
	// when the stored status was not from.
	UpdateLateApproval(ctx context.Context, id string, from, to LateApprovalStatus, by string, at time.Time) (bool, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListBetween returns every record dated in [from, to]; empty employeeIDs means all.
	ListBetween(ctx context.Context, from, to time.Time, employeeIDs []string) ([]Attendance, error)

	// ListOpen returns records dated on or before date that still have no punch-out.
	ListOpen(ctx context.Context, date time.Time) ([]Attendance, error)
}
