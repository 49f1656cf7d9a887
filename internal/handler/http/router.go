package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kerjaflow/attendance-backend-go/internal/handler/http/middleware"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/jwt"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/kiosk"
)

func NewRouter(
	JWTService jwt.Service,
	kioskVerifier *kiosk.Verifier,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	enrollmentHandler EnrollmentHandler,
	allowedOrigins []string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kerjaflow-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-Key"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Kiosk devices authenticate with a provisioned key, not a session.
		r.Route("/kiosk", func(r chi.Router) {
			r.Use(middleware.KioskAuth(kioskVerifier))
			r.Post("/check-in", attendanceHandler.KioskCheckIn)
			r.Post("/check-out", attendanceHandler.KioskCheckOut)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				// HR and admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", attendanceHandler.List)
					r.Post("/manual", attendanceHandler.ManualEntry)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Route("/locks", func(r chi.Router) {
					r.Get("/", payrollHandler.ListLocks)
					r.Post("/", payrollHandler.Lock)
				})
			})

			r.Route("/enrollment", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/descriptors", enrollmentHandler.Enroll)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
