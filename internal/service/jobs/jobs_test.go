package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/audit"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/identity"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/payroll"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/settings"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if record, ok := f.records[key(employeeID, date)]; ok {
		return &record, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrNoActiveCheckIn
}

func (f *fakeAttendanceRepo) CompleteCheckOut(_ context.Context, _ attendance.Attendance) error {
	return nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(_ context.Context, _ string, _ attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(_ context.Context, absences []attendance.Attendance) error {
	for _, absence := range absences {
		k := key(absence.EmployeeID, absence.Date)
		if _, exists := f.records[k]; exists {
			continue
		}
		f.records[k] = absence
	}
	return nil
}

type fakeIdentityRepo struct {
	employees []identity.Identity
}

func (f *fakeIdentityRepo) GetByID(_ context.Context, id string) (identity.Identity, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return identity.Identity{}, identity.ErrEmployeeNotFound
}

func (f *fakeIdentityRepo) ListActive(_ context.Context) ([]identity.Identity, error) {
	var active []identity.Identity
	for _, emp := range f.employees {
		if emp.IsActive {
			active = append(active, emp)
		}
	}
	return active, nil
}

func (f *fakeIdentityRepo) ListActiveWithDescriptors(_ context.Context) ([]identity.Identity, error) {
	return f.ListActive(context.Background())
}

func (f *fakeIdentityRepo) AddDescriptor(_ context.Context, _ string, _ []float64) error {
	return nil
}

type fakeShiftRepo struct {
	unassigned map[string]bool
}

func (f *fakeShiftRepo) GetByEmployeeID(_ context.Context, employeeID string) (shift.Shift, error) {
	if f.unassigned[employeeID] {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return shift.Shift{ID: "shift-1", StartTime: "09:00", EndTime: "17:00"}, nil
}

type fakeLeaveRepo struct {
	onLeave map[string]bool
}

func (f *fakeLeaveRepo) HasApprovedLeave(_ context.Context, employeeID string, date time.Time) (bool, error) {
	return f.onLeave[key(employeeID, date)], nil
}

type fakeSettingsRepo struct {
	settings settings.Settings
}

func (f *fakeSettingsRepo) Load(_ context.Context) (settings.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Set(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeSettingsRepo) GetOfficeGeofence(_ context.Context) (settings.OfficeGeofence, error) {
	return settings.OfficeGeofence{}, nil
}

func (f *fakeSettingsRepo) SeedOfficeGeofence(_ context.Context, _ settings.OfficeGeofence) error {
	return nil
}

type fakePayrollService struct {
	requests []payroll.LockRequest
}

func (f *fakePayrollService) LockPayroll(_ context.Context, _ string, req payroll.LockRequest) (payroll.LockResponse, error) {
	f.requests = append(f.requests, req)
	return payroll.LockResponse{Year: req.Year, Month: req.Month, LockedCount: 7}, nil
}

func (f *fakePayrollService) ListLocks(_ context.Context) ([]payroll.LockInfo, error) {
	return nil, nil
}

type fakeAuditRepo struct {
	entries []audit.Entry
}

func (f *fakeAuditRepo) Record(_ context.Context, entry audit.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(_ context.Context, _ string, _ string) ([]audit.Entry, error) {
	return f.entries, nil
}

func newTestJobs(now time.Time) (*Jobs, *fakeAttendanceRepo, *fakeLeaveRepo, *fakePayrollService, *fakeAuditRepo) {
	attendanceRepo := &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
	identityRepo := &fakeIdentityRepo{employees: []identity.Identity{
		{ID: "emp-1", FullName: "Dewi Lestari", IsActive: true},
		{ID: "emp-2", FullName: "Budi Santoso", IsActive: true},
		{ID: "emp-9", FullName: "Former Employee", IsActive: false},
	}}
	shiftRepo := &fakeShiftRepo{unassigned: make(map[string]bool)}
	leaveRepo := &fakeLeaveRepo{onLeave: make(map[string]bool)}
	settingsRepo := &fakeSettingsRepo{settings: settings.Defaults()}
	payrollSvc := &fakePayrollService{}
	auditRepo := &fakeAuditRepo{}

	j := NewJobs(attendanceRepo, identityRepo, shiftRepo, leaveRepo, settingsRepo, payrollSvc, auditRepo)
	j.now = func() time.Time { return now }

	return j, attendanceRepo, leaveRepo, payrollSvc, auditRepo
}

func TestAutoLock_AfterLockDay(t *testing.T) {
	j, _, _, payrollSvc, _ := newTestJobs(time.Date(2026, 3, 7, 3, 0, 0, 0, time.UTC))

	require.NoError(t, j.AutoLockPreviousMonth(context.Background()))

	require.Len(t, payrollSvc.requests, 1)
	assert.Equal(t, 2026, payrollSvc.requests[0].Year)
	assert.Equal(t, 2, payrollSvc.requests[0].Month)
}

func TestAutoLock_BeforeLockDay(t *testing.T) {
	j, _, _, payrollSvc, _ := newTestJobs(time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC))

	require.NoError(t, j.AutoLockPreviousMonth(context.Background()))

	assert.Empty(t, payrollSvc.requests)
}

func TestAutoLock_JanuaryLocksDecember(t *testing.T) {
	j, _, _, payrollSvc, _ := newTestJobs(time.Date(2026, 1, 10, 3, 0, 0, 0, time.UTC))

	require.NoError(t, j.AutoLockPreviousMonth(context.Background()))

	require.Len(t, payrollSvc.requests, 1)
	assert.Equal(t, 2025, payrollSvc.requests[0].Year)
	assert.Equal(t, 12, payrollSvc.requests[0].Month)
}

func TestMarkMissingAttendance(t *testing.T) {
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	j, attendanceRepo, leaveRepo, _, auditRepo := newTestJobs(now)

	// emp-1 worked yesterday, emp-2 was on approved leave.
	attendanceRepo.records[key("emp-1", yesterday)] = attendance.Attendance{
		EmployeeID: "emp-1", Date: yesterday, Status: attendance.StatusPresent,
	}
	leaveRepo.onLeave[key("emp-2", yesterday)] = true

	require.NoError(t, j.MarkMissingAttendance(context.Background()))

	record, err := attendanceRepo.GetByEmployeeAndDate(context.Background(), "emp-2", yesterday)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusOnLeave, record.Status)

	// Inactive employees are never backfilled.
	record, err = attendanceRepo.GetByEmployeeAndDate(context.Background(), "emp-9", yesterday)
	require.NoError(t, err)
	assert.Nil(t, record)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, audit.ActionMarkedAbsent, auditRepo.entries[0].Action)
}

func TestMarkMissingAttendance_MarksAbsent(t *testing.T) {
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	j, attendanceRepo, _, _, _ := newTestJobs(now)

	require.NoError(t, j.MarkMissingAttendance(context.Background()))

	for _, id := range []string{"emp-1", "emp-2"} {
		record, err := attendanceRepo.GetByEmployeeAndDate(context.Background(), id, yesterday)
		require.NoError(t, err, fmt.Sprintf("employee %s", id))
		require.NotNil(t, record)
		assert.Equal(t, attendance.StatusAbsent, record.Status)
	}
}

func TestMarkMissingAttendance_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	j, attendanceRepo, _, _, auditRepo := newTestJobs(now)

	require.NoError(t, j.MarkMissingAttendance(context.Background()))
	require.NoError(t, j.MarkMissingAttendance(context.Background()))

	record, err := attendanceRepo.GetByEmployeeAndDate(context.Background(), "emp-1", yesterday)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusAbsent, record.Status)
	// Second run found existing records and marked nothing new.
	assert.Len(t, auditRepo.entries, 1)
}

func TestMarkMissingAttendance_SkipsUnassignedEmployees(t *testing.T) {
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	j, attendanceRepo, _, _, _ := newTestJobs(now)
	j.shiftRepo.(*fakeShiftRepo).unassigned["emp-2"] = true

	require.NoError(t, j.MarkMissingAttendance(context.Background()))

	record, err := attendanceRepo.GetByEmployeeAndDate(context.Background(), "emp-2", yesterday)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestAutoLock_ReportsLockedCount(t *testing.T) {
	j, _, _, payrollSvc, _ := newTestJobs(time.Date(2026, 3, 7, 3, 0, 0, 0, time.UTC))

	require.NoError(t, j.AutoLockPreviousMonth(context.Background()))
	require.NoError(t, j.AutoLockPreviousMonth(context.Background()))

	assert.Len(t, payrollSvc.requests, 2)
}
