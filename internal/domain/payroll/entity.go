package payroll

import "time"

// Lock marks a (year, month) payroll period as immutable. There is no
// unlock: reversing a lock would invalidate exported payroll.
type Lock struct {
	ID        string
	Year      int
	Month     int
	LockedBy  *string
	CreatedAt time.Time
}
