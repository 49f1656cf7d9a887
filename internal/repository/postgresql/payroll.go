package postgresql

import (
	"context"
	"time"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/payroll"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
)

type payrollLockRepository struct {
	db *database.DB
}

// CreateLock implements payroll.PayrollLockRepository.
func (r *payrollLockRepository) CreateLock(ctx context.Context, lock payroll.Lock) error {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_locks (year, month, locked_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (year, month) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, lock.Year, lock.Month, lock.LockedBy); err != nil {
		return wrapStoreErr(err, "failed to create payroll lock")
	}

	return nil
}

// LockRecords implements payroll.PayrollLockRepository.
func (r *payrollLockRepository) LockRecords(ctx context.Context, year int, month int) (int64, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET locked = TRUE, updated_at = NOW()
		WHERE EXTRACT(YEAR FROM date) = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND locked = FALSE
	`
	tag, err := q.Exec(ctx, query, year, month)
	if err != nil {
		return 0, wrapStoreErr(err, "failed to lock attendance records")
	}

	return tag.RowsAffected(), nil
}

// IsDateLocked implements payroll.PayrollLockRepository.
func (r *payrollLockRepository) IsDateLocked(ctx context.Context, date time.Time) (bool, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM payroll_locks WHERE year = $1 AND month = $2)`

	var locked bool
	if err := q.QueryRow(ctx, query, date.Year(), int(date.Month())).Scan(&locked); err != nil {
		return false, wrapStoreErr(err, "failed to check payroll lock")
	}

	return locked, nil
}

// ListLocks implements payroll.PayrollLockRepository.
func (r *payrollLockRepository) ListLocks(ctx context.Context) ([]payroll.Lock, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, year, month, locked_by, created_at
		FROM payroll_locks
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to query payroll locks")
	}
	defer rows.Close()

	var locks []payroll.Lock
	for rows.Next() {
		var lock payroll.Lock
		if err := rows.Scan(&lock.ID, &lock.Year, &lock.Month, &lock.LockedBy, &lock.CreatedAt); err != nil {
			return nil, wrapStoreErr(err, "failed to scan payroll lock")
		}
		locks = append(locks, lock)
	}

	return locks, nil
}

func NewPayrollLockRepository(db *database.DB) payroll.PayrollLockRepository {
	return &payrollLockRepository{db: db}
}
