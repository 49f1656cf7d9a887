package payroll

import (
	"context"
	"time"
)

// PayrollLockRepository persists payroll period locks. LockPeriod and the
// record flag update run in one transaction so a failure mid-lock never
// leaves a month partially locked.
type PayrollLockRepository interface {
	// CreateLock inserts the (year, month) lock row; inserting an existing
	// lock is a no-op.
	CreateLock(ctx context.Context, lock Lock) error

	// LockRecords flags every attendance record in the month and returns
	// how many newly became locked.
	LockRecords(ctx context.Context, year int, month int) (int64, error)

	// IsDateLocked reports whether the date's month has a payroll lock.
	// This gates manual entries even for dates with no prior record.
	IsDateLocked(ctx context.Context, date time.Time) (bool, error)

	// ListLocks returns all existing locks, newest first.
	ListLocks(ctx context.Context) ([]Lock, error)
}
