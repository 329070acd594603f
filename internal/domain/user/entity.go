package user

import "context"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR admin - full access
	RoleManager  Role = "manager"  // Can approve leave/attendance
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	EmployeeID string
	Role       Role
}

// IsApprover checks if actor is admin or manager
func (a Actor) IsApprover() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}

// Can reports whether the actor's role grants permission.
func (a Actor) Can(permission Permission) bool {
	return HasPermission(a.Role, permission)
}

// Require returns ErrInsufficientPermissions when the actor lacks permission.
func (a Actor) Require(permission Permission) error {
	if !a.Can(permission) {
		return ErrInsufficientPermissions
	}
	return nil
}

type actorKey struct{}

// WithActor stores the actor on ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor set by the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || actor.EmployeeID == "" {
		return Actor{}, ErrActorMissing
	}
	return actor, nil
}
