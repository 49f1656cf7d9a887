package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/audit"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/identity"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/payroll"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/settings"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/shift"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/facematch"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/geo"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/shiftclock"
)

type attendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	identityRepo   identity.IdentityRepository
	shiftRepo      shift.ShiftRepository
	settingsRepo   settings.SettingsRepository
	payrollRepo    payroll.PayrollLockRepository
	auditRepo      audit.AuditRepository
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	identityRepo identity.IdentityRepository,
	shiftRepo shift.ShiftRepository,
	settingsRepo settings.SettingsRepository,
	payrollRepo payroll.PayrollLockRepository,
	auditRepo audit.AuditRepository,
) attendance.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		identityRepo:   identityRepo,
		shiftRepo:      shiftRepo,
		settingsRepo:   settingsRepo,
		payrollRepo:    payrollRepo,
		auditRepo:      auditRepo,
		now:            time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *attendanceService) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	if !req.FaceVerified {
		return attendance.CheckInResponse{}, &attendance.FaceVerificationError{
			Confidence: req.FaceConfidence,
			Threshold:  cfg.FaceRecognitionThreshold,
		}
	}

	emp, err := s.identityRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if !emp.IsActive {
		return attendance.CheckInResponse{}, identity.ErrEmployeeInactive
	}

	location, err := s.verifyLocation(ctx, cfg, req.Location)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	record, err := s.createCheckIn(ctx, emp.ID, cfg, &req.FaceConfidence, req.Location, location)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	s.recordAudit(ctx, emp.ID, audit.ActionCheckIn, record, nil)

	return s.checkInResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *attendanceService) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	if _, err := s.verifyLocation(ctx, cfg, req.Location); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	record, err := s.completeCheckOut(ctx, employeeID, cfg)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	s.recordAudit(ctx, employeeID, audit.ActionCheckOut, record, nil)

	return s.checkOutResponse(record), nil
}

// KioskCheckIn implements attendance.AttendanceService.
func (s *attendanceService) KioskCheckIn(ctx context.Context, req attendance.KioskRequest) (attendance.KioskCheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.KioskCheckInResponse{}, err
	}

	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return attendance.KioskCheckInResponse{}, err
	}

	emp, match, err := s.identify(ctx, req.Descriptor, cfg)
	if err != nil {
		return attendance.KioskCheckInResponse{}, err
	}

	location, err := s.verifyLocation(ctx, cfg, req.Location)
	if err != nil {
		return attendance.KioskCheckInResponse{}, err
	}

	record, err := s.createCheckIn(ctx, emp.ID, cfg, &match.Confidence, req.Location, location)
	if err != nil {
		return attendance.KioskCheckInResponse{}, err
	}

	s.recordAudit(ctx, "kiosk", audit.ActionCheckIn, record, nil)

	return attendance.KioskCheckInResponse{
		IdentifiedEmployee: emp.ID,
		EmployeeName:       emp.FullName,
		Confidence:         match.Confidence,
		CheckInResponse:    s.checkInResponse(record),
	}, nil
}

// KioskCheckOut implements attendance.AttendanceService.
func (s *attendanceService) KioskCheckOut(ctx context.Context, req attendance.KioskRequest) (attendance.KioskCheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.KioskCheckOutResponse{}, err
	}

	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return attendance.KioskCheckOutResponse{}, err
	}

	emp, match, err := s.identify(ctx, req.Descriptor, cfg)
	if err != nil {
		return attendance.KioskCheckOutResponse{}, err
	}

	if _, err := s.verifyLocation(ctx, cfg, req.Location); err != nil {
		return attendance.KioskCheckOutResponse{}, err
	}

	record, err := s.completeCheckOut(ctx, emp.ID, cfg)
	if err != nil {
		return attendance.KioskCheckOutResponse{}, err
	}

	s.recordAudit(ctx, "kiosk", audit.ActionCheckOut, record, nil)

	return attendance.KioskCheckOutResponse{
		IdentifiedEmployee: emp.ID,
		EmployeeName:       emp.FullName,
		Confidence:         match.Confidence,
		CheckOutResponse:   s.checkOutResponse(record),
	}, nil
}

// ManualEntry implements attendance.AttendanceService.
func (s *attendanceService) ManualEntry(ctx context.Context, actor string, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	checkIn, _ := time.Parse(time.RFC3339, req.CheckIn)
	var checkOut *time.Time
	if req.CheckOut != nil {
		parsed, _ := time.Parse(time.RFC3339, *req.CheckOut)
		checkOut = &parsed
	}

	// The month lock gates corrections even for dates with no prior record.
	locked, err := s.payrollRepo.IsDateLocked(ctx, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if locked {
		return attendance.AttendanceResponse{}, attendance.ErrLockedRecord
	}

	if _, err := s.identityRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record := attendance.Attendance{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		CheckIn:       &checkIn,
		CheckOut:      checkOut,
		Status:        attendance.Status(req.Status),
		IsManualEntry: true,
		ManualEntryBy: &actor,
	}

	if req.Status == "" || checkOut != nil {
		cfg, err := s.settingsRepo.Load(ctx)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		sh, err := s.shiftRepo.GetByEmployeeID(ctx, req.EmployeeID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}

		result := shiftclock.Classify(applyShiftDefaults(sh, cfg), checkIn, checkOut, cfg.OvertimeThresholdMinutes)
		if req.Status == "" {
			record.Status = result.Status
		}
		if checkOut != nil {
			record.TotalHours = &result.TotalHours
			record.OvertimeHours = &result.OvertimeHours
		}
	}

	before, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := s.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.recordManualAudit(ctx, actor, before, saved, req.Reason)

	return saved.ToResponse(), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *attendanceService) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.Page, filter.Limit = normalizePagination(filter.Page, filter.Limit)

	records, total, err := s.attendanceRepo.GetMyAttendance(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return listResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *attendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.Page, filter.Limit = normalizePagination(filter.Page, filter.Limit)

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return listResponse(records, total, filter.Page, filter.Limit), nil
}

// identify resolves a kiosk face probe against the active registry.
func (s *attendanceService) identify(ctx context.Context, descriptor []float64, cfg settings.Settings) (identity.Identity, facematch.Match, error) {
	employees, err := s.identityRepo.ListActiveWithDescriptors(ctx)
	if err != nil {
		return identity.Identity{}, facematch.Match{}, err
	}

	registry := make([]facematch.Candidate, 0, len(employees))
	byID := make(map[string]identity.Identity, len(employees))
	for _, emp := range employees {
		registry = append(registry, facematch.Candidate{UserID: emp.ID, Descriptors: emp.Descriptors})
		byID[emp.ID] = emp
	}

	match, err := facematch.Identify(descriptor, registry, cfg.FaceRecognitionThreshold)
	if err != nil {
		if errors.Is(err, facematch.ErrNoMatch) {
			verr := &attendance.FaceVerificationError{Threshold: cfg.FaceRecognitionThreshold}
			var noMatch *facematch.NoMatchError
			if errors.As(err, &noMatch) {
				verr.Confidence = math.Max(0, 1-noMatch.BestDistance)
			}
			return identity.Identity{}, facematch.Match{}, verr
		}
		return identity.Identity{}, facematch.Match{}, err
	}

	return byID[match.UserID], match, nil
}

// verifyLocation runs the geofence check. The distance is recorded even when
// enforcement is off; missing coordinates fail only when enforcement is on.
func (s *attendanceService) verifyLocation(ctx context.Context, cfg settings.Settings, loc *attendance.LocationRequest) (*geo.Result, error) {
	if loc == nil || loc.Latitude == nil || loc.Longitude == nil {
		if cfg.LocationVerificationRequired {
			return nil, geo.ErrInvalidLocation
		}
		return nil, nil
	}

	office, err := s.settingsRepo.GetOfficeGeofence(ctx)
	if err != nil {
		return nil, err
	}

	result, err := geo.Verify(*loc.Latitude, *loc.Longitude, office.Latitude, office.Longitude, office.RadiusMeters)
	if err != nil {
		return nil, err
	}

	if cfg.LocationVerificationRequired && !result.Verified {
		return nil, &attendance.LocationDeniedError{
			DistanceMeters: result.DistanceMeters,
			RadiusMeters:   office.RadiusMeters,
		}
	}

	return &result, nil
}

// createCheckIn derives the provisional status and inserts the record. The
// store's conditional insert settles concurrent duplicates.
func (s *attendanceService) createCheckIn(ctx context.Context, employeeID string, cfg settings.Settings, confidence *float64, loc *attendance.LocationRequest, location *geo.Result) (attendance.Attendance, error) {
	now := s.now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	locked, err := s.payrollRepo.IsDateLocked(ctx, date)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if locked {
		return attendance.Attendance{}, attendance.ErrLockedRecord
	}

	sh, err := s.shiftRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	result := shiftclock.Classify(applyShiftDefaults(sh, cfg), now, nil, 0)

	record := attendance.Attendance{
		EmployeeID:     employeeID,
		Date:           date,
		CheckIn:        &now,
		Status:         result.Status,
		FaceVerified:   true,
		FaceConfidence: confidence,
	}
	if loc != nil {
		record.Latitude = loc.Latitude
		record.Longitude = loc.Longitude
	}
	if location != nil {
		record.LocationVerified = &location.Verified
		record.DistanceMeters = &location.DistanceMeters
	}

	return s.attendanceRepo.Create(ctx, record)
}

// completeCheckOut closes the open session. Sessions are looked up by the
// open check-in rather than today's date so night shifts can check out after
// midnight.
func (s *attendanceService) completeCheckOut(ctx context.Context, employeeID string, cfg settings.Settings) (attendance.Attendance, error) {
	record, err := s.attendanceRepo.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoActiveCheckIn) {
			return attendance.Attendance{}, s.noOpenSessionCause(ctx, employeeID)
		}
		return attendance.Attendance{}, err
	}

	locked, err := s.payrollRepo.IsDateLocked(ctx, record.Date)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if locked {
		return attendance.Attendance{}, attendance.ErrLockedRecord
	}

	sh, err := s.shiftRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	now := s.now()
	result := shiftclock.Classify(applyShiftDefaults(sh, cfg), *record.CheckIn, &now, cfg.OvertimeThresholdMinutes)

	record.CheckOut = &now
	record.Status = result.Status
	record.TotalHours = &result.TotalHours
	record.OvertimeHours = &result.OvertimeHours

	if err := s.attendanceRepo.CompleteCheckOut(ctx, record); err != nil {
		return attendance.Attendance{}, err
	}

	return record, nil
}

// applyShiftDefaults fills shift thresholds left unset with the stored
// attendance settings.
func applyShiftDefaults(sh shift.Shift, cfg settings.Settings) shift.Shift {
	if sh.GracePeriodMinutes == 0 {
		sh.GracePeriodMinutes = cfg.LateThresholdMinutes
	}
	if sh.HalfDayHours == 0 {
		sh.HalfDayHours = cfg.HalfDayThresholdHours
	}
	return sh
}

// noOpenSessionCause distinguishes "already checked out today" from "never
// checked in".
func (s *attendanceService) noOpenSessionCause(ctx context.Context, employeeID string) error {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return err
	}
	if record != nil && record.CheckOut != nil {
		return attendance.ErrAlreadyCheckedOut
	}
	return attendance.ErrNoActiveCheckIn
}

func (s *attendanceService) checkInResponse(record attendance.Attendance) attendance.CheckInResponse {
	return attendance.CheckInResponse{
		ID:             record.ID,
		EmployeeID:     record.EmployeeID,
		Date:           record.Date.Format("2006-01-02"),
		Status:         record.Status,
		CheckInTime:    record.CheckIn.Format(time.RFC3339),
		FaceConfidence: record.FaceConfidence,
		Location: attendance.LocationResult{
			Verified:       record.LocationVerified,
			DistanceMeters: record.DistanceMeters,
		},
	}
}

func (s *attendanceService) checkOutResponse(record attendance.Attendance) attendance.CheckOutResponse {
	var totalHours, overtimeHours float64
	if record.TotalHours != nil {
		totalHours = *record.TotalHours
	}
	if record.OvertimeHours != nil {
		overtimeHours = *record.OvertimeHours
	}

	return attendance.CheckOutResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		Date:          record.Date.Format("2006-01-02"),
		Status:        record.Status,
		CheckOutTime:  record.CheckOut.Format(time.RFC3339),
		TotalHours:    totalHours,
		OvertimeHours: overtimeHours,
		Location: attendance.LocationResult{
			Verified:       record.LocationVerified,
			DistanceMeters: record.DistanceMeters,
		},
	}
}

// recordAudit writes one audit entry. Audit failures never fail the business
// operation.
func (s *attendanceService) recordAudit(ctx context.Context, actor string, action string, record attendance.Attendance, reason *string) {
	after, err := json.Marshal(record.ToResponse())
	if err != nil {
		slog.Error("Failed to encode audit payload", "action", action, "error", err)
		return
	}

	entry := audit.Entry{
		Actor:      actor,
		Action:     action,
		EntityType: "attendance",
		EntityID:   record.ID,
		After:      after,
		Reason:     reason,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		slog.Error("Failed to record audit entry", "action", action, "entity_id", record.ID, "error", err)
	}
}

func (s *attendanceService) recordManualAudit(ctx context.Context, actor string, before *attendance.Attendance, after attendance.Attendance, reason string) {
	afterJSON, err := json.Marshal(after.ToResponse())
	if err != nil {
		slog.Error("Failed to encode audit payload", "action", audit.ActionManualEntry, "error", err)
		return
	}

	entry := audit.Entry{
		Actor:      actor,
		Action:     audit.ActionManualEntry,
		EntityType: "attendance",
		EntityID:   after.ID,
		After:      afterJSON,
		Reason:     &reason,
	}
	if before != nil {
		beforeJSON, err := json.Marshal(before.ToResponse())
		if err == nil {
			entry.Before = beforeJSON
		}
	}

	if err := s.auditRepo.Record(ctx, entry); err != nil {
		slog.Error("Failed to record audit entry", "action", audit.ActionManualEntry, "entity_id", after.ID, "error", err)
	}
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func listResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, record.ToResponse())
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	from := (page-1)*limit + 1
	to := (page-1)*limit + len(records)
	showing := fmt.Sprintf("%d-%d of %d", from, to, total)
	if len(records) == 0 {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}
