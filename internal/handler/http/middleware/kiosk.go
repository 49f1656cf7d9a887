package middleware

import (
	"net/http"

	"github.com/kerjaflow/attendance-backend-go/internal/handler/http/response"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/kiosk"
)

// KioskAuth guards the public kiosk endpoints with a provisioned device key
// carried in the X-Device-Key header.
func KioskAuth(verifier *kiosk.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := verifier.Verify(r.Header.Get("X-Device-Key")); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
