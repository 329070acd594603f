package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]employee.Employee, 0, len(r.store.employees))
	for _, e := range r.store.employees {
		if filter.ActiveOnly && !e.IsActive() {
			continue
		}
		if filter.Department != nil && e.Department != *filter.Department {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b employee.Employee) int {
		return strings.Compare(a.FullName, b.FullName)
	})
	return out, nil
}

// Insert upserts a directory entry.
func (r *employeeRepository) Insert(ctx context.Context, emp employee.Employee) error {
	r.store.AddEmployee(emp)
	return nil
}
