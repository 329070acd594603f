package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence and home radius failures carry the measured distance
	var distanceErr *attendance.DistanceError
	if errors.As(err, &distanceErr) {
		code := "OUTSIDE_GEOFENCE"
		if errors.Is(err, attendance.ErrOutsideHomeRadius) {
			code = "OUTSIDE_HOME_RADIUS"
		}
		UnprocessableEntity(w, code, distanceErr.Err.Error(), map[string]string{
			"distance_meters": strconv.FormatFloat(distanceErr.DistanceMeters(), 'f', 0, 64),
			"radius_meters":   strconv.FormatFloat(distanceErr.RadiusMeters(), 'f', 0, 64),
		})
		return
	}

	switch {
	// Identity
	case errors.Is(err, user.ErrActorMissing):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyPunchedToday),
		errors.Is(err, attendance.ErrNoActivePunchIn),
		errors.Is(err, attendance.ErrNotPunchedOut),
		errors.Is(err, attendance.ErrWorkModeAlreadyDecided):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrOutsideGeofence),
		errors.Is(err, attendance.ErrOutsideHomeRadius):
		UnprocessableEntity(w, "OUTSIDE_GEOFENCE", err.Error(), nil)
	case errors.Is(err, attendance.ErrReachedHomeNotApplicable),
		errors.Is(err, attendance.ErrHomeLocationNotConfigured),
		errors.Is(err, attendance.ErrWorkModeApprovalNotRequired),
		errors.Is(err, attendance.ErrNotLate):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange), errors.Is(err, leave.ErrLeaveSpanTooLong):
		ValidationError(w, map[string]string{"end_date": err.Error()})
	case errors.Is(err, leave.ErrSickLeaveAlreadyTakenThisMonth),
		errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed),
		errors.Is(err, leave.ErrPayTypeOnRejectedLeave):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrPayTypeNotApplicable):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("request aborted", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "REQUEST_ABORTED",
				Message: "Request was cancelled before completion",
			},
		})

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
