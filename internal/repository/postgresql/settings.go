package postgresql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/settings"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

// Load implements settings.SettingsRepository. Unknown or unparsable values
// keep their defaults; a half-written settings table must not break
// check-in.
func (r *settingsRepository) Load(ctx context.Context) (settings.Settings, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT key, value FROM attendance_settings`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return settings.Settings{}, wrapStoreErr(err, "failed to query settings")
	}
	defer rows.Close()

	loaded := settings.Defaults()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings.Settings{}, wrapStoreErr(err, "failed to scan setting")
		}

		switch key {
		case settings.KeyFaceRecognitionThreshold:
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				loaded.FaceRecognitionThreshold = v
			}
		case settings.KeyLocationVerificationRequired:
			if v, err := strconv.ParseBool(value); err == nil {
				loaded.LocationVerificationRequired = v
			}
		case settings.KeyLateThresholdMinutes:
			if v, err := strconv.Atoi(value); err == nil {
				loaded.LateThresholdMinutes = v
			}
		case settings.KeyHalfDayThresholdHours:
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				loaded.HalfDayThresholdHours = v
			}
		case settings.KeyOvertimeThresholdMinutes:
			if v, err := strconv.Atoi(value); err == nil {
				loaded.OvertimeThresholdMinutes = v
			}
		case settings.KeyAttendanceLockDay:
			if v, err := strconv.Atoi(value); err == nil {
				loaded.AttendanceLockDay = v
			}
		}
	}

	return loaded, nil
}

// Set implements settings.SettingsRepository.
func (r *settingsRepository) Set(ctx context.Context, key string, value string) error {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return wrapStoreErr(err, "failed to set setting")
	}

	return nil
}

// GetOfficeGeofence implements settings.SettingsRepository.
func (r *settingsRepository) GetOfficeGeofence(ctx context.Context) (settings.OfficeGeofence, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT latitude, longitude, radius_meters FROM office_geofence LIMIT 1`

	var geofence settings.OfficeGeofence
	err := q.QueryRow(ctx, query).Scan(&geofence.Latitude, &geofence.Longitude, &geofence.RadiusMeters)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.OfficeGeofence{}, settings.ErrOfficeGeofenceNotFound
		}
		return settings.OfficeGeofence{}, wrapStoreErr(err, "failed to get office geofence")
	}

	return geofence, nil
}

// SeedOfficeGeofence implements settings.SettingsRepository. The single-row
// table carries id 1; seeding an already-seeded table is a no-op so restarts
// never clobber an admin's later edits.
func (r *settingsRepository) SeedOfficeGeofence(ctx context.Context, geofence settings.OfficeGeofence) error {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO office_geofence (id, latitude, longitude, radius_meters)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, geofence.Latitude, geofence.Longitude, geofence.RadiusMeters); err != nil {
		return wrapStoreErr(err, "failed to seed office geofence")
	}

	return nil
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}
