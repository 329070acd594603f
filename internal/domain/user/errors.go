package user

import "errors"

var (
	ErrActorMissing            = errors.New("authenticated employee is missing from context")
	ErrInvalidRole             = errors.New("invalid role")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
