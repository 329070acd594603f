package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/daystatus"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	facts  *daystatus.Loader
	policy attendance.Policy
	// autoCloseMinutes is the local minute-of-day open punches are closed at,
	// attendance.AutoCloseDisabled to turn it off.
	autoCloseMinutes int
	now              func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	facts *daystatus.Loader,
	policy attendance.Policy,
	autoCloseMinutes int,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		facts:                facts,
		policy:               policy,
		autoCloseMinutes:     autoCloseMinutes,
		now:                  time.Now,
	}
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

// activeEmployee resolves the caller and checks the directory entry.
func (s *AttendanceServiceImpl) activeEmployee(ctx context.Context, permission user.Permission) (user.Actor, employee.Employee, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return user.Actor{}, employee.Employee{}, err
	}
	if err := actor.Require(permission); err != nil {
		return user.Actor{}, employee.Employee{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return user.Actor{}, employee.Employee{}, err
		}
		return user.Actor{}, employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return user.Actor{}, employee.Employee{}, employee.ErrEmployeeInactive
	}
	return actor, emp, nil
}

func (s *AttendanceServiceImpl) today(ctx context.Context, employeeID string, now time.Time) (*attendance.Attendance, error) {
	rec, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, s.policy.LocalDate(now))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return rec, nil
}

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, emp, err := s.activeEmployee(ctx, user.PermissionAttendanceCreate)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	existing, err := s.today(ctx, emp.ID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedToday
	}

	mode := attendance.WorkMode(req.WorkMode)
	var distanceKm *float64
	if mode == attendance.WorkModeOffice {
		d, err := s.policy.CheckOffice(*req.Latitude, *req.Longitude)
		if err != nil {
			slog.Warn("punch-in rejected outside geofence", "employee_id", emp.ID, "distance_km", d)
			return attendance.AttendanceResponse{}, err
		}
		distanceKm = &d
	}

	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       s.policy.LocalDate(now),
		PunchIn:    now,
		Status:     s.policy.Classify(now),
		WorkMode:   mode,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}
	if mode.RequiresApproval() {
		record.ApprovalStatus = attendance.ApprovalPending
	} else {
		record.ApprovalStatus = attendance.ApprovalApproved
		record.ApprovedAt = &now
	}
	if record.IsLate() {
		notApproved := attendance.LateNotApproved
		record.LateApprovalStatus = &notApproved
	}

	// The caller may have given up while the location was being checked.
	if err := ctx.Err(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyPunchedToday) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	slog.Info("employee punched in",
		"employee_id", emp.ID,
		"attendance_id", created.ID,
		"status", created.Status,
		"work_mode", created.WorkMode,
	)

	resp := attendance.ToResponse(created, s.policy.Zone())
	if distanceKm != nil {
		m := *distanceKm * 1000
		resp.DistanceMeters = &m
	}
	return resp, nil
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	_, emp, err := s.activeEmployee(ctx, user.PermissionAttendanceCreate)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	rec, err := s.today(ctx, emp.ID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if attendance.StateOf(rec) != attendance.StatePunchedIn {
		return attendance.AttendanceResponse{}, attendance.ErrNoActivePunchIn
	}

	closed, err := s.AttendanceRepository.ClosePunch(ctx, rec.ID, now, attendance.WorkHours(rec.PunchIn, now), false)
	if err != nil {
		if errors.Is(err, attendance.ErrNoActivePunchIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance: %w", err)
	}

	slog.Info("employee punched out", "employee_id", emp.ID, "attendance_id", closed.ID, "work_hours", *closed.WorkHours)
	return attendance.ToResponse(closed, s.policy.Zone()), nil
}

// MarkReachedHome implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkReachedHome(ctx context.Context, req attendance.ReachedHomeRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, emp, err := s.activeEmployee(ctx, user.PermissionAttendanceCreate)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsFemale() {
		return attendance.AttendanceResponse{}, attendance.ErrReachedHomeNotApplicable
	}
	home, ok := emp.HomeLocation()
	if !ok {
		return attendance.AttendanceResponse{}, attendance.ErrHomeLocationNotConfigured
	}

	now := s.now()
	rec, err := s.today(ctx, emp.ID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	switch attendance.StateOf(rec) {
	case attendance.StateNoRecord:
		return attendance.AttendanceResponse{}, attendance.ErrNoActivePunchIn
	case attendance.StatePunchedIn:
		return attendance.AttendanceResponse{}, attendance.ErrNotPunchedOut
	}

	d, err := s.policy.CheckHome(home, *req.Latitude, *req.Longitude)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if rec.HomeReached {
		return attendance.ToResponse(*rec, s.policy.Zone()), nil
	}

	if err := ctx.Err(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.AttendanceRepository.MarkHomeReached(ctx, rec.ID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark reached home: %w", err)
	}

	slog.Info("employee reached home", "employee_id", emp.ID, "attendance_id", updated.ID)
	resp := attendance.ToResponse(updated, s.policy.Zone())
	m := d * 1000
	resp.DistanceMeters = &m
	return resp, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	now := s.now()
	rec, err := s.today(ctx, actor.EmployeeID, now)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	state := attendance.StateOf(rec)
	resp := attendance.TodayResponse{
		Date:        dateutil.Format(s.policy.LocalDate(now)),
		State:       string(state),
		CanPunchIn:  state == attendance.StateNoRecord,
		CanPunchOut: state == attendance.StatePunchedIn,
	}
	if rec != nil {
		r := attendance.ToResponse(*rec, s.policy.Zone())
		resp.Attendance = &r
	}
	if s.autoCloseMinutes != attendance.AutoCloseDisabled {
		resp.AutoCloseAt = time.Date(2000, 1, 1, s.autoCloseMinutes/60, s.autoCloseMinutes%60, 0, 0, time.UTC).Format("03:04 PM")
	}
	return resp, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !validator.IsValidUUID(id) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	rec, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if rec.EmployeeID != actor.EmployeeID && !actor.Can(user.PermissionAttendanceViewAll) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}
	return attendance.ToResponse(rec, s.policy.Zone()), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.EmployeeID = &actor.EmployeeID
	filter.EmployeeName = nil
	filter.Department = nil

	return s.list(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := actor.Require(user.PermissionAttendanceViewAll); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return s.list(ctx, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewListResponse(records, total, filter, s.policy.Zone()), nil
}

// GetCalendar implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetCalendar(ctx context.Context, req attendance.MonthRequest) (calendar.Month, error) {
	if err := req.Validate(); err != nil {
		return calendar.Month{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return calendar.Month{}, err
	}

	from, to := dateutil.MonthRange(req.Year, time.Month(req.Month))
	facts, err := s.facts.Load(ctx, from, to, []string{actor.EmployeeID})
	if err != nil {
		return calendar.Month{}, err
	}

	return calendar.BuildMonth(actor.EmployeeID, req.Year, time.Month(req.Month), facts.Sources(actor.EmployeeID)), nil
}

// GetLateSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetLateSummary(ctx context.Context, req attendance.MonthRequest) (attendance.LateSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LateSummaryResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.LateSummaryResponse{}, err
	}

	from, to := dateutil.MonthRange(req.Year, time.Month(req.Month))
	records, err := s.AttendanceRepository.ListBetween(ctx, from, to, []string{actor.EmployeeID})
	if err != nil {
		return attendance.LateSummaryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := attendance.LateSummaryResponse{
		EmployeeID: actor.EmployeeID,
		Year:       req.Year,
		Month:      req.Month,
	}
	for _, a := range records {
		resp.PresentDays++
		if !a.IsLate() {
			continue
		}
		resp.LateTotal++
		if a.LateApprovalStatus != nil && *a.LateApprovalStatus == attendance.LateApproved {
			resp.LateApproved++
		} else {
			resp.LateNotApproved++
		}
	}
	return resp, nil
}
