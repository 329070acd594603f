package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Attendance{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a.Date = dateutil.Date(a.Date)
	key := attendanceKey(a.EmployeeID, a.Date)
	if _, exists := r.store.attendanceIdx[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyPunchedToday
	}

	if a.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Attendance{}, err
		}
		a.ID = id.String()
	}
	now := r.store.now()
	a.CreatedAt, a.UpdatedAt = now, now

	r.store.attendances[a.ID] = a
	r.store.attendanceIdx[key] = a.ID
	return r.store.joinAttendance(a), nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.store.joinAttendance(a), nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.attendanceIdx[attendanceKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	a := r.store.joinAttendance(r.store.attendances[id])
	return &a, nil
}

// ClosePunch implements attendance.AttendanceRepository.
func (r *attendanceRepository) ClosePunch(ctx context.Context, id string, punchOut time.Time, workHours float64, autoClosed bool) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if a.PunchOut != nil {
		return attendance.Attendance{}, attendance.ErrNoActivePunchIn
	}

	a.PunchOut = &punchOut
	a.WorkHours = &workHours
	a.AutoClosed = autoClosed
	a.UpdatedAt = r.store.now()
	r.store.attendances[id] = a
	return r.store.joinAttendance(a), nil
}

// MarkHomeReached implements attendance.AttendanceRepository.
func (r *attendanceRepository) MarkHomeReached(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if !a.HomeReached {
		a.HomeReached = true
		a.HomeReachedAt = &at
		a.UpdatedAt = r.store.now()
		r.store.attendances[id] = a
	}
	return r.store.joinAttendance(a), nil
}

// UpdateWorkModeApproval implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateWorkModeApproval(ctx context.Context, id string, from, to attendance.ApprovalStatus, by string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.attendances[id]
	if !ok {
		return false, attendance.ErrAttendanceNotFound
	}
	if a.ApprovalStatus != from {
		return false, nil
	}

	a.ApprovalStatus = to
	a.ApprovedBy = &by
	a.ApprovedAt = &at
	a.UpdatedAt = r.store.now()
	r.store.attendances[id] = a
	return true, nil
}

// UpdateLateApproval implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateLateApproval(ctx context.Context, id string, from, to attendance.LateApprovalStatus, by string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.attendances[id]
	if !ok {
		return false, attendance.ErrAttendanceNotFound
	}
	if a.LateApprovalStatus == nil || *a.LateApprovalStatus != from {
		return false, nil
	}

	a.LateApprovalStatus = &to
	a.LateApprovedBy = &by
	a.LateApprovedAt = &at
	a.UpdatedAt = r.store.now()
	r.store.attendances[id] = a
	return true, nil
}

func matchesAttendance(a attendance.Attendance, f attendance.AttendanceFilter) bool {
	date := dateutil.Format(a.Date)
	switch {
	case f.EmployeeID != nil && a.EmployeeID != *f.EmployeeID:
		return false
	case f.EmployeeName != nil && (a.EmployeeName == nil || !strings.Contains(strings.ToLower(*a.EmployeeName), strings.ToLower(*f.EmployeeName))):
		return false
	case f.Department != nil && (a.Department == nil || *a.Department != *f.Department):
		return false
	case f.Date != nil && *f.Date != "" && date != *f.Date:
		return false
	case f.StartDate != nil && *f.StartDate != "" && date < *f.StartDate:
		return false
	case f.EndDate != nil && *f.EndDate != "" && date > *f.EndDate:
		return false
	case f.Status != nil && string(a.Status) != *f.Status:
		return false
	case f.WorkMode != nil && string(a.WorkMode) != *f.WorkMode:
		return false
	case f.ApprovalStatus != nil && string(a.ApprovalStatus) != *f.ApprovalStatus:
		return false
	case f.LateApprovalStatus != nil && (a.LateApprovalStatus == nil || string(*a.LateApprovalStatus) != *f.LateApprovalStatus):
		return false
	}
	return true
}

func compareAttendance(a, b attendance.Attendance, sortBy string) int {
	switch sortBy {
	case "employee_name":
		return cmp.Compare(deref(a.EmployeeName), deref(b.EmployeeName))
	case "punch_in":
		return a.PunchIn.Compare(b.PunchIn)
	case "punch_out":
		return derefTime(a.PunchOut).Compare(derefTime(b.PunchOut))
	case "status":
		return cmp.Compare(a.Status, b.Status)
	default:
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.PunchIn.Compare(b.PunchIn)
	}
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []attendance.Attendance
	for _, a := range r.store.attendances {
		a = r.store.joinAttendance(a)
		if matchesAttendance(a, filter) {
			matched = append(matched, a)
		}
	}

	slices.SortFunc(matched, func(a, b attendance.Attendance) int {
		c := compareAttendance(a, b, filter.SortBy)
		if filter.SortOrder == "desc" {
			return -c
		}
		return c
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// ListBetween implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListBetween(ctx context.Context, from, to time.Time, employeeIDs []string) ([]attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.Attendance
	for _, a := range r.store.attendances {
		if !dateutil.Within(a.Date, from, to) {
			continue
		}
		if len(employeeIDs) > 0 && !slices.Contains(employeeIDs, a.EmployeeID) {
			continue
		}
		out = append(out, r.store.joinAttendance(a))
	}
	slices.SortFunc(out, func(a, b attendance.Attendance) int {
		return compareAttendance(a, b, "date")
	})
	return out, nil
}

// ListOpen implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListOpen(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.Attendance
	for _, a := range r.store.attendances {
		if a.PunchOut == nil && !a.Date.After(dateutil.Date(date)) {
			out = append(out, r.store.joinAttendance(a))
		}
	}
	slices.SortFunc(out, func(a, b attendance.Attendance) int {
		return compareAttendance(a, b, "date")
	})
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
