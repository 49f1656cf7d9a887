package payroll

import "context"

// PayrollService is the payroll lock manager.
type PayrollService interface {
	// LockPayroll marks every record in the period immutable, atomically
	// and idempotently, and returns the number of records locked.
	LockPayroll(ctx context.Context, actor string, req LockRequest) (LockResponse, error)

	// ListLocks returns the existing locks.
	ListLocks(ctx context.Context) ([]LockInfo, error)
}
