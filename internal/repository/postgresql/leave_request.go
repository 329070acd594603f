package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const leaveColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days, lr.reason,
	lr.applied_on, lr.status, lr.pay_type, lr.decided_by, lr.decided_at,
	lr.pay_type_set_by, lr.pay_type_set_at, lr.created_at, lr.updated_at,
	e.full_name, e.code, e.department`

const leaveFrom = `
	FROM leave_requests lr
	LEFT JOIN employees e ON e.id = lr.employee_id`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Days, &lr.Reason,
		&lr.AppliedOn, &lr.Status, &lr.PayType, &lr.DecidedBy, &lr.DecidedAt,
		&lr.PayTypeSetBy, &lr.PayTypeSetAt, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName, &lr.EmployeeCode, &lr.Department,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var out []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

func payTypeParam(p *leave.PayType) *string {
	if p == nil {
		return nil
	}
	v := string(*p)
	return &v
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to generate id: %w", err)
		}
		request.ID = id.String()
	}
	if request.AppliedOn.IsZero() {
		request.AppliedOn = dateutil.Date(time.Now())
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, days, reason,
			applied_on, status, pay_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		request.ID,
		request.EmployeeID,
		string(request.LeaveType),
		request.StartDate,
		request.EndDate,
		request.Days,
		request.Reason,
		request.AppliedOn,
		string(request.Status),
		payTypeParam(request.PayType),
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, request.ID)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, "SELECT "+leaveColumns+leaveFrom+" WHERE lr.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	add := func(cond string, value interface{}) {
		baseWhere += fmt.Sprintf(" AND "+cond, argIdx)
		args = append(args, value)
		argIdx++
	}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		add("lr.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Department != nil && *filter.Department != "" {
		add("e.department = $%d", *filter.Department)
	}
	if filter.LeaveType != nil && *filter.LeaveType != "" {
		add("lr.leave_type = $%d", *filter.LeaveType)
	}
	if filter.Status != nil && *filter.Status != "" {
		add("lr.status = $%d", *filter.Status)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		add("lr.end_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		add("lr.start_date <= $%d", *filter.EndDate)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+leaveFrom+" WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)

	selectQuery := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY lr.created_at DESC, lr.start_date DESC LIMIT $%d OFFSET $%d",
		leaveColumns, leaveFrom, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+leaveColumns+leaveFrom+`
		WHERE lr.employee_id = $1
		ORDER BY lr.created_at DESC, lr.start_date DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests by employee: %w", err)
	}
	return collectLeaveRequests(rows)
}

// ListApproved implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApproved(ctx context.Context, from, to time.Time, employeeIDs []string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var ids []string
	if len(employeeIDs) > 0 {
		ids = employeeIDs
	}

	rows, err := q.Query(ctx, "SELECT "+leaveColumns+leaveFrom+`
		WHERE lr.status = 'approved'
		  AND lr.start_date <= $2 AND lr.end_date >= $1
		  AND ($3::uuid[] IS NULL OR lr.employee_id = ANY($3))
		ORDER BY lr.start_date`, from, to, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leave: %w", err)
	}
	return collectLeaveRequests(rows)
}

// Decide implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, to leave.LeaveRequestStatus, payType *leave.PayType, by string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Status and pay type change in one statement.
	query := `
		UPDATE leave_requests
		SET status = $2,
			pay_type = COALESCE($3, pay_type),
			pay_type_set_by = CASE WHEN $3::text IS NULL THEN pay_type_set_by ELSE $4 END,
			pay_type_set_at = CASE WHEN $3::text IS NULL THEN pay_type_set_at ELSE $5 END,
			decided_by = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, string(to), payTypeParam(payType), by, at)
	if err != nil {
		return false, fmt.Errorf("failed to decide leave request: %w", err)
	}
	return r.swapped(ctx, id, tag)
}

// SetPayType implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SetPayType(ctx context.Context, id string, payType leave.PayType, by string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET pay_type = $2, pay_type_set_by = $3, pay_type_set_at = $4, updated_at = NOW()
		WHERE id = $1 AND status <> 'rejected'
	`

	tag, err := q.Exec(ctx, query, id, string(payType), by, at)
	if err != nil {
		return false, fmt.Errorf("failed to set pay type: %w", err)
	}
	return r.swapped(ctx, id, tag)
}

func (r *leaveRequestRepositoryImpl) swapped(ctx context.Context, id string, tag pgconn.CommandTag) (bool, error) {
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	var ok bool
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)", id).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check leave request: %w", err)
	}
	if !ok {
		return false, leave.ErrLeaveRequestNotFound
	}
	return false, nil
}
