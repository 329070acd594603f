package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.punch_in, a.punch_out, a.status, a.work_mode,
	a.approval_status, a.late_approval_status, a.work_hours, a.latitude, a.longitude,
	a.home_reached, a.home_reached_at, a.auto_closed,
	a.approved_by, a.approved_at, a.late_approved_by, a.late_approved_at,
	a.created_at, a.updated_at,
	e.full_name, e.code, e.department`

const attendanceFrom = `
	FROM attendance_records a
	LEFT JOIN employees e ON e.id = a.employee_id`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.PunchIn, &att.PunchOut, &att.Status, &att.WorkMode,
		&att.ApprovalStatus, &att.LateApprovalStatus, &att.WorkHours, &att.Latitude, &att.Longitude,
		&att.HomeReached, &att.HomeReachedAt, &att.AutoClosed,
		&att.ApprovedBy, &att.ApprovedAt, &att.LateApprovedBy, &att.LateApprovedAt,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeCode, &att.Department,
	)
	return att, err
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, att)
	}
	return out, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to generate id: %w", err)
		}
		a.ID = id.String()
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, punch_in, punch_out, status, work_mode,
			approval_status, late_approval_status, work_hours, latitude, longitude,
			home_reached, home_reached_at, auto_closed, approved_by, approved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
	`

	_, err := q.Exec(ctx, query,
		a.ID,
		a.EmployeeID,
		a.Date,
		a.PunchIn,
		a.PunchOut,
		string(a.Status),
		string(a.WorkMode),
		string(a.ApprovalStatus),
		lateStatusParam(a.LateApprovalStatus),
		a.WorkHours,
		a.Latitude,
		a.Longitude,
		a.HomeReached,
		a.HomeReachedAt,
		a.AutoClosed,
		a.ApprovedBy,
		a.ApprovedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedToday
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return r.GetByID(ctx, a.ID)
}

func lateStatusParam(s *attendance.LateApprovalStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + " WHERE a.id = $1"

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + " WHERE a.employee_id = $1 AND a.date = $2"

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

func (r *attendanceRepository) exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := GetQuerier(ctx, r.db).QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM attendance_records WHERE id = $1)", id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return ok, nil
}

// ClosePunch implements attendance.AttendanceRepository.
func (r *attendanceRepository) ClosePunch(ctx context.Context, id string, punchOut time.Time, workHours float64, autoClosed bool) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET punch_out = $2, work_hours = $3, auto_closed = $4, updated_at = NOW()
		WHERE id = $1 AND punch_out IS NULL
	`

	tag, err := q.Exec(ctx, query, id, punchOut, workHours, autoClosed)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		ok, err := r.exists(ctx, id)
		if err != nil {
			return attendance.Attendance{}, err
		}
		if !ok {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, attendance.ErrNoActivePunchIn
	}

	return r.GetByID(ctx, id)
}

// MarkHomeReached implements attendance.AttendanceRepository.
func (r *attendanceRepository) MarkHomeReached(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET home_reached = TRUE, home_reached_at = $2, updated_at = NOW()
		WHERE id = $1 AND home_reached = FALSE
	`

	if _, err := q.Exec(ctx, query, id, at); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to mark home reached: %w", err)
	}
	return r.GetByID(ctx, id)
}

// UpdateWorkModeApproval implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateWorkModeApproval(ctx context.Context, id string, from, to attendance.ApprovalStatus, by string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET approval_status = $3, approved_by = $4, approved_at = $5, updated_at = NOW()
		WHERE id = $1 AND approval_status = $2
	`

	tag, err := q.Exec(ctx, query, id, string(from), string(to), by, at)
	if err != nil {
		return false, fmt.Errorf("failed to update work mode approval: %w", err)
	}
	return r.swapped(ctx, id, tag)
}

// UpdateLateApproval implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateLateApproval(ctx context.Context, id string, from, to attendance.LateApprovalStatus, by string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET late_approval_status = $3, late_approved_by = $4, late_approved_at = $5, updated_at = NOW()
		WHERE id = $1 AND late_approval_status = $2
	`

	tag, err := q.Exec(ctx, query, id, string(from), string(to), by, at)
	if err != nil {
		return false, fmt.Errorf("failed to update late approval: %w", err)
	}
	return r.swapped(ctx, id, tag)
}

// swapped turns the tag of a conditional update into the compare-and-set result.
func (r *attendanceRepository) swapped(ctx context.Context, id string, tag pgconn.CommandTag) (bool, error) {
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	ok, err := r.exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, attendance.ErrAttendanceNotFound
	}
	return false, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	add := func(cond string, value interface{}) {
		baseWhere += fmt.Sprintf(" AND "+cond, argIdx)
		args = append(args, value)
		argIdx++
	}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		add("a.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		add("e.full_name ILIKE $%d", "%"+*filter.EmployeeName+"%")
	}
	if filter.Department != nil && *filter.Department != "" {
		add("e.department = $%d", *filter.Department)
	}
	if filter.Date != nil && *filter.Date != "" {
		add("a.date = $%d", *filter.Date)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		add("a.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		add("a.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil && *filter.Status != "" {
		add("a.status = $%d", *filter.Status)
	}
	if filter.WorkMode != nil && *filter.WorkMode != "" {
		add("a.work_mode = $%d", *filter.WorkMode)
	}
	if filter.ApprovalStatus != nil && *filter.ApprovalStatus != "" {
		add("a.approval_status = $%d", *filter.ApprovalStatus)
	}
	if filter.LateApprovalStatus != nil && *filter.LateApprovalStatus != "" {
		add("a.late_approval_status = $%d", *filter.LateApprovalStatus)
	}

	// Count total
	countQuery := "SELECT COUNT(*)" + attendanceFrom + " WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Build ORDER BY
	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "punch_in":
		orderByField = "a.punch_in"
	case "punch_out":
		orderByField = "a.punch_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)

	selectQuery := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY %s %s, a.punch_in %s LIMIT $%d OFFSET $%d",
		attendanceColumns, attendanceFrom, baseWhere, orderByField, sortOrder, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	records, err := collectAttendance(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListBetween implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListBetween(ctx context.Context, from, to time.Time, employeeIDs []string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + `
		WHERE a.date BETWEEN $1 AND $2
		  AND ($3::uuid[] IS NULL OR a.employee_id = ANY($3))
		ORDER BY a.date, a.punch_in`

	var ids []string
	if len(employeeIDs) > 0 {
		ids = employeeIDs
	}

	rows, err := q.Query(ctx, query, from, to, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances between dates: %w", err)
	}
	return collectAttendance(rows)
}

// ListOpen implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListOpen(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + `
		WHERE a.punch_out IS NULL AND a.date <= $1
		ORDER BY a.date, a.punch_in`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query open attendances: %w", err)
	}
	return collectAttendance(rows)
}
