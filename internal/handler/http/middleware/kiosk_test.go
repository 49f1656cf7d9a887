package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kerjaflow/attendance-backend-go/internal/pkg/kiosk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKioskAuth(t *testing.T) {
	hash, err := kiosk.HashKey("device-key-1")
	require.NoError(t, err)
	verifier := kiosk.NewVerifier([]string{hash})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := KioskAuth(verifier)(next)

	t.Run("valid key passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/kiosk/check-in", nil)
		req.Header.Set("X-Device-Key", "device-key-1")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/kiosk/check-in", nil)
		req.Header.Set("X-Device-Key", "wrong")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/kiosk/check-in", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
