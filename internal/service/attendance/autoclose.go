package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// closeTime returns the auto-close instant of the record's day. A midnight
// close time is the midnight ending that day.
func (s *AttendanceServiceImpl) closeTime(a attendance.Attendance) time.Time {
	loc := s.policy.Zone()
	t := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), s.autoCloseMinutes/60, s.autoCloseMinutes%60, 0, 0, loc)
	if s.autoCloseMinutes == 0 {
		t = t.AddDate(0, 0, 1)
	}
	if t.Before(a.PunchIn) {
		return a.PunchIn
	}
	return t
}

// AutoCloseOpenPunches closes every record still open past its day's close
// time. Records closed concurrently by the employee are skipped.
func (s *AttendanceServiceImpl) AutoCloseOpenPunches(ctx context.Context) (int, error) {
	if s.autoCloseMinutes == attendance.AutoCloseDisabled {
		return 0, nil
	}

	now := s.now()
	open, err := s.AttendanceRepository.ListOpen(ctx, s.policy.LocalDate(now))
	if err != nil {
		return 0, fmt.Errorf("failed to list open attendance: %w", err)
	}

	closed := 0
	for _, a := range open {
		if err := ctx.Err(); err != nil {
			return closed, err
		}

		at := s.closeTime(a)
		if at.After(now) {
			continue
		}

		_, err := s.AttendanceRepository.ClosePunch(ctx, a.ID, at, attendance.WorkHours(a.PunchIn, at), true)
		if err != nil {
			if errors.Is(err, attendance.ErrNoActivePunchIn) {
				continue
			}
			return closed, fmt.Errorf("failed to auto close attendance %s: %w", a.ID, err)
		}
		closed++
		slog.Info("attendance auto closed", "attendance_id", a.ID, "employee_id", a.EmployeeID, "punch_out", at)
	}
	return closed, nil
}
