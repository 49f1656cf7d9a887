package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.status, a.total_hours, a.overtime_hours,
	a.face_verified, a.face_confidence,
	a.latitude, a.longitude, a.location_verified, a.distance_meters,
	a.is_manual_entry, a.manual_entry_by, a.locked,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, att *attendance.Attendance, withEmployeeName bool) error {
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.Status, &att.TotalHours, &att.OvertimeHours,
		&att.FaceVerified, &att.FaceConfidence,
		&att.Latitude, &att.Longitude, &att.LocationVerified, &att.DistanceMeters,
		&att.IsManualEntry, &att.ManualEntryBy, &att.Locked,
		&att.CreatedAt, &att.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &att.EmployeeName)
	}
	return row.Scan(dest...)
}

// Create implements attendance.AttendanceRepository. The conditional insert
// is what enforces the one-record-per-(employee, date) invariant under
// concurrent duplicate taps: the loser sees no returned row.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	ctx, cancel := a.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in, status,
			face_verified, face_confidence,
			latitude, longitude, location_verified, distance_meters,
			is_manual_entry, manual_entry_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.CheckIn,
		att.Status,
		att.FaceVerified,
		att.FaceConfidence,
		att.Latitude,
		att.Longitude,
		att.LocationVerified,
		att.DistanceMeters,
		att.IsManualEntry,
		att.ManualEntryBy,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, wrapStoreErr(err, "failed to create attendance")
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	ctx, cancel := a.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), &att, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr(err, "failed to get attendance by employee and date")
	}

	return &att, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	ctx, cancel := a.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.check_in IS NOT NULL
		  AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1
	`

	var att attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query, employeeID), &att, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoActiveCheckIn
		}
		return attendance.Attendance{}, wrapStoreErr(err, "failed to get open session")
	}

	return att, nil
}

// CompleteCheckOut implements attendance.AttendanceRepository. The guarded
// update only applies while the record is still open and unlocked; when it
// matches nothing the record is re-read to report the precise cause.
func (a *attendanceRepository) CompleteCheckOut(ctx context.Context, att attendance.Attendance) error {
	ctx, cancel := a.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1, status = $2, total_hours = $3, overtime_hours = $4,
		    updated_at = NOW()
		WHERE id = $5
		  AND check_out IS NULL
		  AND locked = FALSE
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.CheckOut, att.Status, att.TotalHours, att.OvertimeHours, att.ID,
	).Scan(&updatedID)

	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return wrapStoreErr(err, "failed to complete check-out")
	}

	// Guard refused the write: find out why.
	var checkOut *time.Time
	var locked bool
	probe := `SELECT check_out, locked FROM attendances WHERE id = $1`
	if err := q.QueryRow(ctx, probe, att.ID).Scan(&checkOut, &locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return wrapStoreErr(err, "failed to inspect attendance after refused check-out")
	}

	if locked {
		return attendance.ErrLockedRecord
	}
	if checkOut != nil {
		return attendance.ErrAlreadyCheckedOut
	}
	return attendance.ErrAttendanceNotFound
}

// Upsert implements attendance.AttendanceRepository. Used by manual HR
// entries; the locked guard in the conflict branch keeps locked records
// immutable even through overwrites.
func (a *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	ctx, cancel := a.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, check_in, check_out,
			status, total_hours, overtime_hours,
			face_verified, face_confidence,
			latitude, longitude, location_verified, distance_meters,
			is_manual_entry, manual_entry_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			status = EXCLUDED.status,
			total_hours = EXCLUDED.total_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			is_manual_entry = EXCLUDED.is_manual_entry,
			manual_entry_by = EXCLUDED.manual_entry_by,
			updated_at = NOW()
		WHERE attendances.locked = FALSE
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.CheckIn,
		att.CheckOut,
		att.Status,
		att.TotalHours,
		att.OvertimeHours,
		att.FaceVerified,
		att.FaceConfidence,
		att.Latitude,
		att.Longitude,
		att.LocationVerified,
		att.DistanceMeters,
		att.IsManualEntry,
		att.ManualEntryBy,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrLockedRecord
		}
		return attendance.Attendance{}, wrapStoreErr(err, "failed to upsert attendance")
	}

	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	ctx, cancel := a.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, a.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, wrapStoreErr(err, "failed to count attendances")
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "check_in_time":
		orderByField = "a.check_in"
	case "check_out_time":
		orderByField = "a.check_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`SELECT`+attendanceColumns+`,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, wrapStoreErr(err, "failed to query attendances")
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, true); err != nil {
			return nil, 0, wrapStoreErr(err, "failed to scan attendance")
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	ctx, cancel := a.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, a.db)

	baseWhere := "a.employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, wrapStoreErr(err, "failed to count attendances")
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "check_in_time":
		orderByField = "a.check_in"
	case "check_out_time":
		orderByField = "a.check_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`SELECT`+attendanceColumns+`
		FROM attendances a
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, wrapStoreErr(err, "failed to query attendances")
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, false); err != nil {
			return nil, 0, wrapStoreErr(err, "failed to scan attendance")
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) error {
	ctx, cancel := a.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, status, face_verified, is_manual_entry)
		VALUES ($1, $2, $3, FALSE, FALSE)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	for _, absence := range absences {
		if _, err := q.Exec(ctx, query, absence.EmployeeID, absence.Date, absence.Status); err != nil {
			return wrapStoreErr(err, "failed to create absence record")
		}
	}

	return nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
