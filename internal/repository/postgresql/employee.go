package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	id, code, full_name, department, position, gender,
	home_latitude, home_longitude, status, role, created_at`

// EmployeeWriter seeds the directory, which this service otherwise only reads.
type EmployeeWriter interface {
	Insert(ctx context.Context, emp employee.Employee) error
}

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Code, &emp.FullName, &emp.Department, &emp.Position, &emp.Gender,
		&emp.HomeLatitude, &emp.HomeLongitude, &emp.Status, &emp.Role, &emp.CreatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	query := "SELECT " + employeeColumns + " FROM employees WHERE id = $1"

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	where := "1 = 1"
	args := []interface{}{}
	if filter.ActiveOnly {
		where += " AND status = 'active'"
	}
	if filter.Department != nil && *filter.Department != "" {
		args = append(args, *filter.Department)
		where += fmt.Sprintf(" AND department = $%d", len(args))
	}

	query := "SELECT " + employeeColumns + " FROM employees WHERE " + where + " ORDER BY full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Insert implements EmployeeWriter.
func (e *employeeRepositoryImpl) Insert(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (id, code, full_name, department, position, gender, home_latitude, home_longitude, status, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			code = EXCLUDED.code, full_name = EXCLUDED.full_name, department = EXCLUDED.department,
			position = EXCLUDED.position, gender = EXCLUDED.gender, home_latitude = EXCLUDED.home_latitude,
			home_longitude = EXCLUDED.home_longitude, status = EXCLUDED.status, role = EXCLUDED.role
	`

	_, err := q.Exec(ctx, query,
		emp.ID, emp.Code, emp.FullName, emp.Department, emp.Position, string(emp.Gender),
		emp.HomeLatitude, emp.HomeLongitude, string(emp.Status), string(emp.Role),
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}
