package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Verification errors
	ErrFaceNotVerified = errors.New("face verification failed")
	ErrLocationDenied  = errors.New("you are outside the allowed office radius")

	// State machine errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrNoActiveCheckIn   = errors.New("you have not checked in yet")
	ErrLockedRecord      = errors.New("attendance record is locked for payroll")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// FaceVerificationError carries the rejected confidence and the threshold it
// failed. It unwraps to ErrFaceNotVerified.
type FaceVerificationError struct {
	Confidence float64
	Threshold  float64
}

func (e *FaceVerificationError) Error() string {
	return fmt.Sprintf("%s: confidence %.2f below threshold %.2f", ErrFaceNotVerified, e.Confidence, e.Threshold)
}

func (e *FaceVerificationError) Unwrap() error { return ErrFaceNotVerified }

// LocationDeniedError carries the measured distance for a geofence rejection.
// It unwraps to ErrLocationDenied.
type LocationDeniedError struct {
	DistanceMeters int
	RadiusMeters   int
}

func (e *LocationDeniedError) Error() string {
	return fmt.Sprintf("%s: %dm from office, allowed %dm", ErrLocationDenied, e.DistanceMeters, e.RadiusMeters)
}

func (e *LocationDeniedError) Unwrap() error { return ErrLocationDenied }
