package shiftclock

import (
	"time"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/shift"
)

// Result is the derived classification for one attendance day.
type Result struct {
	Status        attendance.Status
	TotalHours    float64
	OvertimeHours float64
}

// Classify derives status and worked hours from shift arithmetic. It is the
// single implementation shared by every caller; handlers must not re-derive
// status on their own.
//
// Without a check-out the status is provisional: LATE when the check-in is
// past the grace period, PRESENT otherwise. With a check-out the total hours
// decide: below the half-day threshold the day becomes HALF_DAY, otherwise
// the provisional status stands. Overtime accrues only beyond full-day hours
// plus the configured overtime threshold.
//
// ON_LEAVE and ABSENT are never produced here; the orchestrator assigns them.
func Classify(s shift.Shift, checkIn time.Time, checkOut *time.Time, overtimeThresholdMinutes int) Result {
	shiftStart := s.StartOn(checkIn)
	graceLimit := shiftStart.Add(time.Duration(s.GracePeriodMinutes) * time.Minute)

	status := attendance.StatusPresent
	if checkIn.After(graceLimit) {
		status = attendance.StatusLate
	}

	if checkOut == nil {
		return Result{Status: status}
	}

	totalHours := checkOut.Sub(checkIn).Hours()
	// A night shift recorded with time-of-day stamps yields a negative raw
	// difference; the session actually wrapped past midnight.
	if s.CrossesMidnight() && totalHours < 0 {
		totalHours += 24
	}

	if totalHours < s.HalfDayHours {
		status = attendance.StatusHalfDay
	}

	overtime := totalHours - s.FullDayHours - float64(overtimeThresholdMinutes)/60
	if overtime < 0 {
		overtime = 0
	}

	return Result{
		Status:        status,
		TotalHours:    totalHours,
		OvertimeHours: overtime,
	}
}
