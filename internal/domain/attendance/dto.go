package attendance

import (
	"time"

	"github.com/kerjaflow/attendance-backend-go/internal/pkg/facematch"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/validator"
)

// LocationRequest is the device position submitted with a check-in or
// check-out. Pointers distinguish "missing" from zero coordinates.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (l *LocationRequest) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if l == nil {
		return errs
	}
	if l.Latitude == nil {
		errs = append(errs, validator.ValidationError{Field: "location.latitude", Message: "latitude is required"})
	}
	if l.Longitude == nil {
		errs = append(errs, validator.ValidationError{Field: "location.longitude", Message: "longitude is required"})
	}
	return errs
}

// CheckInRequest is the authenticated check-in payload. The face probe was
// verified upstream; the engine receives the outcome and the score.
type CheckInRequest struct {
	FaceVerified   bool             `json:"face_verified"`
	FaceConfidence float64          `json:"face_confidence"`
	Location       *LocationRequest `json:"location"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.FaceConfidence < 0 || r.FaceConfidence > 1 {
		errs = append(errs, validator.ValidationError{Field: "face_confidence", Message: "must be between 0 and 1"})
	}
	errs = r.Location.validate(errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckOutRequest is the authenticated check-out payload.
type CheckOutRequest struct {
	Location *LocationRequest `json:"location"`
}

func (r CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = r.Location.validate(errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// KioskRequest is the public kiosk payload: identity is resolved from the
// raw face descriptor instead of a session.
type KioskRequest struct {
	Descriptor []float64        `json:"descriptor"`
	Location   *LocationRequest `json:"location"`
}

func (r KioskRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Descriptor) != facematch.DescriptorLength {
		errs = append(errs, validator.ValidationError{
			Field:   "descriptor",
			Message: "descriptor must contain exactly 128 values",
		})
	}
	errs = r.Location.validate(errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ManualEntryRequest is an HR/admin correction. Reason is mandatory and is
// persisted to the audit log.
type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`      // 2006-01-02
	CheckIn    string  `json:"check_in"`  // RFC3339
	CheckOut   *string `json:"check_out"` // RFC3339, optional
	Status     string  `json:"status"`    // optional, derived when empty
	Reason     string  `json:"reason"`
}

func (r ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	checkIn, checkInOK := validator.IsValidDateTime(r.CheckIn)
	if !checkInOK {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "check_in must be an ISO8601 timestamp"})
	}
	if r.CheckOut != nil {
		checkOut, ok := validator.IsValidDateTime(*r.CheckOut)
		switch {
		case !ok:
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be an ISO8601 timestamp"})
		case checkInOK && !checkOut.After(checkIn):
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be after check_in"})
		}
	}
	if r.Status != "" && !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status value"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required for manual entries"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceFilter filters the admin listing.
type AttendanceFilter struct {
	EmployeeID   *string
	EmployeeName *string
	Date         *string
	StartDate    *string
	EndDate      *string
	Status       *string
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

// MyAttendanceFilter filters the authenticated employee's own records.
type MyAttendanceFilter struct {
	Date      *string
	StartDate *string
	EndDate   *string
	Status    *string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// LocationResult echoes the geofence outcome back to the caller.
type LocationResult struct {
	Verified       *bool `json:"verified,omitempty"`
	DistanceMeters *int  `json:"distance_meters,omitempty"`
}

// CheckInResponse is returned by check-in operations.
type CheckInResponse struct {
	ID             string         `json:"id"`
	EmployeeID     string         `json:"employee_id"`
	Date           string         `json:"date"`
	Status         Status         `json:"status"`
	CheckInTime    string         `json:"check_in_time"`
	FaceConfidence *float64       `json:"face_confidence,omitempty"`
	Location       LocationResult `json:"location"`
}

// CheckOutResponse is returned by check-out operations.
type CheckOutResponse struct {
	ID            string         `json:"id"`
	EmployeeID    string         `json:"employee_id"`
	Date          string         `json:"date"`
	Status        Status         `json:"status"`
	CheckOutTime  string         `json:"check_out_time"`
	TotalHours    float64        `json:"total_hours"`
	OvertimeHours float64        `json:"overtime_hours"`
	Location      LocationResult `json:"location"`
}

// KioskCheckInResponse adds the resolved identity to a check-in result.
type KioskCheckInResponse struct {
	IdentifiedEmployee string  `json:"identified_employee"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	Confidence         float64 `json:"confidence"`
	CheckInResponse
}

// KioskCheckOutResponse adds the resolved identity to a check-out result.
type KioskCheckOutResponse struct {
	IdentifiedEmployee string  `json:"identified_employee"`
	EmployeeName       string  `json:"employee_name,omitempty"`
	Confidence         float64 `json:"confidence"`
	CheckOutResponse
}

// AttendanceResponse is the full record view used by listings and manual
// entries.
type AttendanceResponse struct {
	ID             string         `json:"id"`
	EmployeeID     string         `json:"employee_id"`
	EmployeeName   string         `json:"employee_name,omitempty"`
	Date           string         `json:"date"`
	CheckInTime    *string        `json:"check_in_time"`
	CheckOutTime   *string        `json:"check_out_time"`
	Status         Status         `json:"status"`
	TotalHours     *float64       `json:"total_hours"`
	OvertimeHours  *float64       `json:"overtime_hours"`
	FaceVerified   bool           `json:"face_verified"`
	FaceConfidence *float64       `json:"face_confidence,omitempty"`
	Location       LocationResult `json:"location"`
	IsManualEntry  bool           `json:"is_manual_entry"`
	ManualEntryBy  *string        `json:"manual_entry_by,omitempty"`
	Locked         bool           `json:"locked"`
	CreatedAt      string         `json:"created_at,omitempty"`
	UpdatedAt      string         `json:"updated_at,omitempty"`
}

// ListAttendanceResponse is a paginated listing.
type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse converts an Attendance entity to its full response form.
func (a Attendance) ToResponse() AttendanceResponse {
	var employeeName string
	if a.EmployeeName != nil {
		employeeName = *a.EmployeeName
	}

	return AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   employeeName,
		Date:           a.Date.Format("2006-01-02"),
		CheckInTime:    timePtrToString(a.CheckIn),
		CheckOutTime:   timePtrToString(a.CheckOut),
		Status:         a.Status,
		TotalHours:     a.TotalHours,
		OvertimeHours:  a.OvertimeHours,
		FaceVerified:   a.FaceVerified,
		FaceConfidence: a.FaceConfidence,
		Location: LocationResult{
			Verified:       a.LocationVerified,
			DistanceMeters: a.DistanceMeters,
		},
		IsManualEntry: a.IsManualEntry,
		ManualEntryBy: a.ManualEntryBy,
		Locked:        a.Locked,
		CreatedAt:     a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
