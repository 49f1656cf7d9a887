package postgresql

import (
	"context"
	"time"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/leave"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

// HasApprovedLeave implements leave.LeaveRepository.
func (r *leaveRepository) HasApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status = 'APPROVED'
			  AND $2 BETWEEN start_date AND end_date
		)
	`

	var covered bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&covered); err != nil {
		return false, wrapStoreErr(err, "failed to check approved leave")
	}

	return covered, nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
