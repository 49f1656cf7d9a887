package geo

import (
	"errors"
	"math"
)

// ErrInvalidLocation is returned when a coordinate is missing, NaN or out of
// range. The caller must never receive a distance computed from such input.
var ErrInvalidLocation = errors.New("invalid location coordinates")

const earthRadiusMeters = 6371000 // mean Earth radius in meters

// Result is the outcome of a geofence check.
type Result struct {
	Verified       bool
	DistanceMeters int
}

// Distance returns the great-circle distance between two points in meters
// using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if !validCoordinate(lat1, lon1) || !validCoordinate(lat2, lon2) {
		return 0, ErrInvalidLocation
	}

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

// Verify reports whether the device is inside the office geofence.
// The distance is always computed and returned for auditing, regardless of
// whether location verification is enforced by configuration.
func Verify(deviceLat, deviceLon, officeLat, officeLon float64, radiusMeters int) (Result, error) {
	distance, err := Distance(deviceLat, deviceLon, officeLat, officeLon)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Verified:       distance <= float64(radiusMeters),
		DistanceMeters: int(distance),
	}, nil
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
