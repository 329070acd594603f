// Package fixtures seeds a demo directory so a fresh deployment has
// employees and company holidays to punch against.
package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
)

type EmployeeWriter interface {
	Insert(ctx context.Context, emp employee.Employee) error
}

type HolidayWriter interface {
	Upsert(ctx context.Context, h holiday.Holiday) error
}

func strPtr(s string) *string       { return &s }
func float64Ptr(f float64) *float64 { return &f }

// Stable ids of the demo accounts.
const (
	AdminID    = "0190b3a4-0000-7000-8000-000000000001"
	ManagerID  = "0190b3a4-0000-7000-8000-000000000002"
	EmployeeID = "0190b3a4-0000-7000-8000-000000000003"
	FieldID    = "0190b3a4-0000-7000-8000-000000000004"
)

func DemoEmployees() []employee.Employee {
	return []employee.Employee{
		{
			ID:         AdminID,
			Code:       "ADM001",
			FullName:   "Asha Admin",
			Department: "Operations",
			Position:   strPtr("HR Administrator"),
			Gender:     employee.Female,
			Status:     employee.EmploymentStatusActive,
			Role:       user.RoleAdmin,
		},
		{
			ID:         ManagerID,
			Code:       "MGR001",
			FullName:   "Mohan Manager",
			Department: "Engineering",
			Position:   strPtr("Engineering Manager"),
			Gender:     employee.Male,
			Status:     employee.EmploymentStatusActive,
			Role:       user.RoleManager,
		},
		{
			ID:            EmployeeID,
			Code:          "EMP001",
			FullName:      "Priya Sharma",
			Department:    "Engineering",
			Position:      strPtr("Software Engineer"),
			Gender:        employee.Female,
			HomeLatitude:  float64Ptr(12.9352),
			HomeLongitude: float64Ptr(77.6245),
			Status:        employee.EmploymentStatusActive,
			Role:          user.RoleEmployee,
		},
		{
			ID:         FieldID,
			Code:       "EMP002",
			FullName:   "Ravi Kumar",
			Department: "Sales",
			Position:   strPtr("Field Sales Executive"),
			Gender:     employee.Male,
			Status:     employee.EmploymentStatusActive,
			Role:       user.RoleEmployee,
		},
	}
}

// CompanyHolidays returns the company-declared holidays for year.
func CompanyHolidays(year int) []holiday.Holiday {
	return []holiday.Holiday{
		{Date: dateutil.New(year, 1, 1), Name: "New Year's Day", Source: holiday.SourceCompany},
		{Date: dateutil.New(year, 5, 1), Name: "Labour Day", Source: holiday.SourceCompany},
		{Date: dateutil.New(year, 11, 1), Name: "Karnataka Rajyotsava", Source: holiday.SourceCompany},
	}
}

// Seed upserts the demo directory and the company holidays of year.
func Seed(ctx context.Context, employees EmployeeWriter, holidays HolidayWriter, year int) error {
	for _, emp := range DemoEmployees() {
		if err := employees.Insert(ctx, emp); err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", emp.Code, err)
		}
	}
	for _, h := range CompanyHolidays(year) {
		if err := holidays.Upsert(ctx, h); err != nil {
			return fmt.Errorf("failed to seed holiday %s: %w", dateutil.Format(h.Date), err)
		}
	}
	slog.Info("demo directory seeded", "employees", len(DemoEmployees()), "year", year)
	return nil
}
