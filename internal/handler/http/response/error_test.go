package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleAndDecode(t *testing.T, err error) (int, Response) {
	t.Helper()

	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestHandleError_LocationDeniedCarriesDistance(t *testing.T) {
	code, body := handleAndDecode(t, &attendance.LocationDeniedError{
		DistanceMeters: 1134,
		RadiusMeters:   800,
	})

	assert.Equal(t, http.StatusForbidden, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Equal(t, "1134", body.Error.Details["distance_meters"])
	assert.Equal(t, "800", body.Error.Details["radius_meters"])
}

func TestHandleError_FaceVerificationCarriesScores(t *testing.T) {
	code, body := handleAndDecode(t, &attendance.FaceVerificationError{
		Confidence: 0.41,
		Threshold:  0.6,
	})

	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
	assert.Equal(t, "0.41", body.Error.Details["confidence"])
	assert.Equal(t, "0.60", body.Error.Details["threshold"])
}

func TestHandleError_BareSentinelsStillMap(t *testing.T) {
	code, body := handleAndDecode(t, attendance.ErrLocationDenied)
	assert.Equal(t, http.StatusForbidden, code)
	require.NotNil(t, body.Error)
	assert.Empty(t, body.Error.Details)

	code, body = handleAndDecode(t, attendance.ErrFaceNotVerified)
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, body.Error)
	assert.Empty(t, body.Error.Details)
}

func TestHandleError_LockedRecordConflicts(t *testing.T) {
	code, body := handleAndDecode(t, attendance.ErrLockedRecord)
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CONFLICT", body.Error.Code)
}
