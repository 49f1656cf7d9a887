package attendance

import (
	"context"
)

// AttendanceService is the verification and state machine orchestrator.
// Employee and actor ids come from verified token claims; handlers pass
// them explicitly.
type AttendanceService interface {
	// CheckIn records the day's first mark for the authenticated employee.
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes the open session and derives final status and hours.
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (CheckOutResponse, error)

	// KioskCheckIn resolves identity from the face descriptor, then checks in.
	KioskCheckIn(ctx context.Context, req KioskRequest) (KioskCheckInResponse, error)

	// KioskCheckOut resolves identity from the face descriptor, then checks out.
	KioskCheckOut(ctx context.Context, req KioskRequest) (KioskCheckOutResponse, error)

	// ManualEntry creates or overwrites a record on behalf of HR/admin.
	ManualEntry(ctx context.Context, actor string, req ManualEntryRequest) (AttendanceResponse, error)

	// GetMyAttendance lists the authenticated employee's records.
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance lists records for HR/admin.
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
