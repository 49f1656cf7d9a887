package settings

import "context"

// SettingsRepository is the config store consumed by the engine.
type SettingsRepository interface {
	// Load reads every setting, falling back to Defaults for missing keys.
	Load(ctx context.Context) (Settings, error)

	// Set stores one key (admin writer).
	Set(ctx context.Context, key string, value string) error

	// GetOfficeGeofence returns the single office boundary record.
	GetOfficeGeofence(ctx context.Context) (OfficeGeofence, error)

	// SeedOfficeGeofence inserts the office record if none exists yet.
	SeedOfficeGeofence(ctx context.Context, geofence OfficeGeofence) error
}
