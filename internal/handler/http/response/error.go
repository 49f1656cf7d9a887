package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/identity"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/settings"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/shift"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/user"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/facematch"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/geo"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/kiosk"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Verification rejections carry their measurements in the details map.
	var faceErr *attendance.FaceVerificationError
	if errors.As(err, &faceErr) {
		UnauthorizedWithDetails(w, "Face verification failed", map[string]string{
			"confidence": strconv.FormatFloat(faceErr.Confidence, 'f', 2, 64),
			"threshold":  strconv.FormatFloat(faceErr.Threshold, 'f', 2, 64),
		})
		return
	}
	var locationErr *attendance.LocationDeniedError
	if errors.As(err, &locationErr) {
		ForbiddenWithDetails(w, "Location outside allowed office radius", map[string]string{
			"distance_meters": strconv.Itoa(locationErr.DistanceMeters),
			"radius_meters":   strconv.Itoa(locationErr.RadiusMeters),
		})
		return
	}

	switch {
	// Verification errors
	case errors.Is(err, attendance.ErrFaceNotVerified):
		Unauthorized(w, "Face verification failed")
	case errors.Is(err, facematch.ErrAmbiguousMatch):
		Conflict(w, "Face matches multiple employees")
	case errors.Is(err, attendance.ErrLocationDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, geo.ErrInvalidLocation):
		BadRequest(w, "Invalid location coordinates", nil)
	case errors.Is(err, kiosk.ErrInvalidDeviceKey):
		Unauthorized(w, "Invalid kiosk device key")

	// State machine errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		Conflict(w, "No active check-in to close")
	case errors.Is(err, attendance.ErrLockedRecord):
		Conflict(w, "Attendance record is locked for payroll")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Identity errors
	case errors.Is(err, identity.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, identity.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, identity.ErrInvalidDescriptor):
		BadRequest(w, "Face descriptor has invalid shape", nil)

	// Configuration errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "No shift assigned to employee")
	case errors.Is(err, settings.ErrOfficeGeofenceNotFound):
		InternalServerError(w, "Office geofence is not configured")

	// Access errors
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, "HR or admin access required")

	// Transient storage errors
	case errors.Is(err, database.ErrUnavailable):
		ServiceUnavailable(w, "Storage temporarily unavailable, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
