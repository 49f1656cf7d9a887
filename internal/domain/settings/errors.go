package settings

import "errors"

var ErrOfficeGeofenceNotFound = errors.New("office geofence is not configured")
