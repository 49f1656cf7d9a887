package attendance

import (
	"time"
)

// Status is the derived classification of one attendance day.
type Status string

const (
	StatusPresent   Status = "PRESENT"
	StatusLate      Status = "LATE"
	StatusHalfDay   Status = "HALF_DAY"
	StatusAbsent    Status = "ABSENT"
	StatusOnLeave   Status = "ON_LEAVE"
	StatusNotMarked Status = "NOT_MARKED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent, StatusOnLeave, StatusNotMarked:
		return true
	}
	return false
}

// Attendance is one employee's record for one calendar date. The database
// enforces uniqueness of (employee_id, date).
type Attendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	Status         Status
	TotalHours     *float64
	OvertimeHours  *float64
	FaceVerified   bool
	FaceConfidence *float64

	// Location proof captured at check-in
	Latitude         *float64
	Longitude        *float64
	LocationVerified *bool
	DistanceMeters   *int

	IsManualEntry bool
	ManualEntryBy *string
	Locked        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}
