package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metersPerLatDegree is the arc length of one degree of latitude with the
// mean Earth radius used by Distance. Moving only along a meridian makes the
// haversine result equal to the latitude offset, which gives exact expected
// distances in tests.
const metersPerLatDegree = earthRadiusMeters * math.Pi / 180.0

func TestDistance_ZeroForSamePoint(t *testing.T) {
	d, err := Distance(-6.2, 106.8, -6.2, 106.8)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestDistance_InvalidCoordinates(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"nan latitude", math.NaN(), 106.8, -6.2, 106.8},
		{"nan longitude", -6.2, math.NaN(), -6.2, 106.8},
		{"inf latitude", math.Inf(1), 106.8, -6.2, 106.8},
		{"latitude out of range", 91, 106.8, -6.2, 106.8},
		{"longitude out of range", -6.2, 181, -6.2, 106.8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			assert.ErrorIs(t, err, ErrInvalidLocation)
		})
	}
}

func TestVerify_RadiusBoundary(t *testing.T) {
	officeLat, officeLon := -6.2, 106.8
	radius := 800

	inside, err := Verify(officeLat+799.2/metersPerLatDegree, officeLon, officeLat, officeLon, radius)
	require.NoError(t, err)
	assert.True(t, inside.Verified)
	assert.Equal(t, 799, inside.DistanceMeters)

	outside, err := Verify(officeLat+801.2/metersPerLatDegree, officeLon, officeLat, officeLon, radius)
	require.NoError(t, err)
	assert.False(t, outside.Verified)
	assert.Equal(t, 801, outside.DistanceMeters)
}

func TestVerify_InvalidDeviceLocation(t *testing.T) {
	_, err := Verify(math.NaN(), 106.8, -6.2, 106.8, 800)
	assert.ErrorIs(t, err, ErrInvalidLocation)
}
