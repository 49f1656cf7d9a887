package shift

import "context"

// ShiftRepository resolves the shift assigned to an employee.
type ShiftRepository interface {
	// GetByEmployeeID returns the employee's current shift, or
	// ErrShiftNotFound when none is assigned.
	GetByEmployeeID(ctx context.Context, employeeID string) (Shift, error)
}
