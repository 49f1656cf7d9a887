package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/shift"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

// GetByEmployeeID implements shift.ShiftRepository.
func (r *shiftRepository) GetByEmployeeID(ctx context.Context, employeeID string) (shift.Shift, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.name, s.start_time, s.end_time,
		       s.grace_period_minutes, s.half_day_hours, s.full_day_hours,
		       s.created_at, s.updated_at
		FROM shifts s
		JOIN employees e ON e.shift_id = s.id
		WHERE e.id = $1
	`

	var sh shift.Shift
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&sh.ID, &sh.Name, &sh.StartTime, &sh.EndTime,
		&sh.GracePeriodMinutes, &sh.HalfDayHours, &sh.FullDayHours,
		&sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, wrapStoreErr(err, "failed to get shift")
	}

	return sh, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}
