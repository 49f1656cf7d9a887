package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// (employee_id, date) uniqueness invariant is enforced here, at the storage
// layer, never by read-then-write in services.
type AttendanceRepository interface {
	// Create inserts the first record of the day. It must be a conditional
	// insert: a concurrent duplicate loses and gets ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// GetOpenSession returns the most recent record without a check-out.
	// Night shifts check out on the calendar day after their record's date.
	GetOpenSession(ctx context.Context, employeeID string) (Attendance, error)

	// CompleteCheckOut sets check-out time, status and hours under a guard:
	// the update only applies while the record is still open and unlocked.
	// A raced or locked record yields ErrAlreadyCheckedOut/ErrLockedRecord.
	CompleteCheckOut(ctx context.Context, attendance Attendance) error

	// Upsert creates or overwrites a record for manual HR entry. Locked
	// records are never overwritten (ErrLockedRecord).
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetMyAttendance retrieves one employee's records.
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// BulkCreateAbsences inserts retroactive ABSENT/ON_LEAVE records,
	// skipping dates that already have one.
	BulkCreateAbsences(ctx context.Context, absences []Attendance) error
}
