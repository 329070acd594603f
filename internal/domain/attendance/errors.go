package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedToday = errors.New("you have already punched in today")
	ErrOutsideGeofence     = errors.New("you are outside the office geofence")
	ErrNoActivePunchIn     = errors.New("no active punch-in found for today")

	// Reached home errors
	ErrReachedHomeNotApplicable  = errors.New("reached home is only available for female employees")
	ErrHomeLocationNotConfigured = errors.New("home location is not configured")
	ErrNotPunchedOut             = errors.New("you must punch out before marking reached home")
	ErrOutsideHomeRadius         = errors.New("you are outside the home radius")

	// Approval errors
	ErrWorkModeApprovalNotRequired = errors.New("office attendance does not require work mode approval")
	ErrWorkModeAlreadyDecided      = errors.New("work mode has already been approved or rejected")
	ErrNotLate                     = errors.New("attendance is not late")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)

// DistanceError carries the measured distance of a failed geofence check.
type DistanceError struct {
	Err        error
	DistanceKm float64
	RadiusKm   float64
}

func (e *DistanceError) Error() string {
	return fmt.Sprintf("%s: %.0f m away, allowed %.0f m", e.Err.Error(), e.DistanceMeters(), e.RadiusMeters())
}

func (e *DistanceError) Unwrap() error {
	return e.Err
}

func (e *DistanceError) DistanceMeters() float64 {
	return e.DistanceKm * 1000
}

func (e *DistanceError) RadiusMeters() float64 {
	return e.RadiusKm * 1000
}
