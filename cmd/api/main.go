package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kerjaflow/attendance-backend-go/internal/config"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/settings"
	appHTTP "github.com/kerjaflow/attendance-backend-go/internal/handler/http"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/cron"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/jwt"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/kiosk"
	"github.com/kerjaflow/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kerjaflow/attendance-backend-go/internal/service/attendance"
	enrollmentService "github.com/kerjaflow/attendance-backend-go/internal/service/enrollment"
	"github.com/kerjaflow/attendance-backend-go/internal/service/jobs"
	payrollService "github.com/kerjaflow/attendance-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	db.QueryTimeout = cfg.Database.QueryTimeout
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	identityRepo := postgresql.NewIdentityRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	payrollRepo := postgresql.NewPayrollLockRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	// The office boundary is read from the database everywhere; the env pair
	// only seeds the very first start.
	seedCtx := context.Background()
	if err := settingsRepo.SeedOfficeGeofence(seedCtx, settings.OfficeGeofence{
		Latitude:     cfg.Office.Latitude,
		Longitude:    cfg.Office.Longitude,
		RadiusMeters: cfg.Office.RadiusMeters,
	}); err != nil {
		fmt.Println("Error seeding office geofence:", err)
		return
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	kioskVerifier := kiosk.NewVerifier(cfg.Kiosk.DeviceKeyHashes)

	runTx := func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		identityRepo,
		shiftRepo,
		settingsRepo,
		payrollRepo,
		auditRepo,
	)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, auditRepo, runTx)
	enrollmentSvc := enrollmentService.NewEnrollmentService(identityRepo, auditRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, JWTService)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, JWTService)
	enrollmentHandler := appHTTP.NewEnrollmentHandler(enrollmentSvc, JWTService)

	router := appHTTP.NewRouter(
		JWTService,
		kioskVerifier,
		attendanceHandler,
		payrollHandler,
		enrollmentHandler,
		cfg.App.AllowedOrigins,
		cfg.App.Env,
	)

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		housekeeping := jobs.NewJobs(
			attendanceRepo,
			identityRepo,
			shiftRepo,
			leaveRepo,
			settingsRepo,
			payrollSvc,
			auditRepo,
		)
		scheduler.AddJob("payroll-auto-lock", cfg.Cron.Interval, housekeeping.AutoLockPreviousMonth)
		scheduler.AddJob("mark-missing-attendance", cfg.Cron.Interval, housekeeping.MarkMissingAttendance)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := server.Shutdown(context.Background()); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
