package employee

import "context"

// Filter narrows directory listings.
type Filter struct {
	Department *string
	ActiveOnly bool
}

// EmployeeRepository is the read-only directory contract.
type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no employee matches.
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, error)
}
