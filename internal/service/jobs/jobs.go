package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/audit"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/identity"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/leave"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/payroll"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/settings"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/shift"
)

// Jobs holds the scheduled housekeeping tasks. Both run daily and are
// idempotent, so overlapping or repeated runs are harmless.
type Jobs struct {
	attendanceRepo attendance.AttendanceRepository
	identityRepo   identity.IdentityRepository
	shiftRepo      shift.ShiftRepository
	leaveRepo      leave.LeaveRepository
	settingsRepo   settings.SettingsRepository
	payrollService payroll.PayrollService
	auditRepo      audit.AuditRepository
	now            func() time.Time
}

func NewJobs(
	attendanceRepo attendance.AttendanceRepository,
	identityRepo identity.IdentityRepository,
	shiftRepo shift.ShiftRepository,
	leaveRepo leave.LeaveRepository,
	settingsRepo settings.SettingsRepository,
	payrollService payroll.PayrollService,
	auditRepo audit.AuditRepository,
) *Jobs {
	return &Jobs{
		attendanceRepo: attendanceRepo,
		identityRepo:   identityRepo,
		shiftRepo:      shiftRepo,
		leaveRepo:      leaveRepo,
		settingsRepo:   settingsRepo,
		payrollService: payrollService,
		auditRepo:      auditRepo,
		now:            time.Now,
	}
}

// AutoLockPreviousMonth locks the previous payroll period once the
// configured day of month has passed. Re-running after the period is locked
// reports zero newly locked records.
func (j *Jobs) AutoLockPreviousMonth(ctx context.Context) error {
	cfg, err := j.settingsRepo.Load(ctx)
	if err != nil {
		return err
	}

	now := j.now()
	if now.Day() < cfg.AttendanceLockDay {
		return nil
	}

	previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	result, err := j.payrollService.LockPayroll(ctx, "system", payroll.LockRequest{
		Year:  previous.Year(),
		Month: int(previous.Month()),
	})
	if err != nil {
		return err
	}

	if result.LockedCount > 0 {
		slog.Info("Payroll period auto-locked",
			"year", result.Year, "month", result.Month, "locked_count", result.LockedCount)
	}

	return nil
}

// MarkMissingAttendance backfills yesterday's records for active employees
// who never checked in: ON_LEAVE when an approved leave covers the day,
// ABSENT otherwise.
func (j *Jobs) MarkMissingAttendance(ctx context.Context) error {
	now := j.now()
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	employees, err := j.identityRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	var absences []attendance.Attendance
	for _, emp := range employees {
		// Employees without an assigned shift are not expected in.
		if _, err := j.shiftRepo.GetByEmployeeID(ctx, emp.ID); err != nil {
			if errors.Is(err, shift.ErrShiftNotFound) {
				continue
			}
			return err
		}

		record, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, yesterday)
		if err != nil {
			return err
		}
		if record != nil {
			continue
		}

		status := attendance.StatusAbsent
		onLeave, err := j.leaveRepo.HasApprovedLeave(ctx, emp.ID, yesterday)
		if err != nil {
			return err
		}
		if onLeave {
			status = attendance.StatusOnLeave
		}

		absences = append(absences, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       yesterday,
			Status:     status,
		})
	}

	if len(absences) == 0 {
		return nil
	}

	if err := j.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
		return err
	}

	j.recordAudit(ctx, yesterday, absences)
	slog.Info("Missing attendance marked", "date", yesterday.Format("2006-01-02"), "count", len(absences))

	return nil
}

func (j *Jobs) recordAudit(ctx context.Context, date time.Time, absences []attendance.Attendance) {
	marked := make(map[string]string, len(absences))
	for _, absence := range absences {
		marked[absence.EmployeeID] = string(absence.Status)
	}

	after, err := json.Marshal(marked)
	if err != nil {
		return
	}

	entry := audit.Entry{
		Actor:      "system",
		Action:     audit.ActionMarkedAbsent,
		EntityType: "attendance",
		EntityID:   date.Format("2006-01-02"),
		After:      after,
	}
	if err := j.auditRepo.Record(ctx, entry); err != nil {
		slog.Error("Failed to record audit entry", "action", audit.ActionMarkedAbsent, "error", err)
	}
}
