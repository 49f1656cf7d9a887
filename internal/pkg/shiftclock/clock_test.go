package shiftclock

import (
	"testing"
	"time"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/attendance"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
)

func timeOfDay(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func dayShift() shift.Shift {
	return shift.Shift{
		ID:                 "shift-day",
		Name:               "DAY",
		StartTime:          "09:00",
		EndTime:            "18:00",
		GracePeriodMinutes: 15,
		HalfDayHours:       4,
		FullDayHours:       8,
	}
}

func nightShift() shift.Shift {
	return shift.Shift{
		ID:                 "shift-night",
		Name:               "NIGHT",
		StartTime:          "21:00",
		EndTime:            "06:00",
		GracePeriodMinutes: 15,
		HalfDayHours:       4,
		FullDayHours:       8,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, time.UTC)
}

func TestClassify_WithinGraceIsPresent(t *testing.T) {
	// Day shift 09:00-18:00 with 15m grace: 09:10 is on time.
	res := Classify(dayShift(), at(9, 10), nil, 30)
	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.Equal(t, 0.0, res.TotalHours)
}

func TestClassify_AfterGraceIsLate(t *testing.T) {
	res := Classify(dayShift(), at(9, 20), nil, 30)
	assert.Equal(t, attendance.StatusLate, res.Status)
}

func TestClassify_GraceBoundaryIsPresent(t *testing.T) {
	// Exactly shift start + grace is still on time.
	res := Classify(dayShift(), at(9, 15), nil, 30)
	assert.Equal(t, attendance.StatusPresent, res.Status)
}

func TestClassify_FullDayStaysPresent(t *testing.T) {
	// 09:10 -> 17:10 is exactly 8 worked hours.
	out := at(17, 10)
	res := Classify(dayShift(), at(9, 10), &out, 30)

	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.Equal(t, 8.0, res.TotalHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
}

func TestClassify_HalfDayOverridesLate(t *testing.T) {
	// Late check-in at 09:20, out at 13:00: 3.67h < 4h half-day threshold.
	out := at(13, 0)
	res := Classify(dayShift(), at(9, 20), &out, 30)

	assert.Equal(t, attendance.StatusHalfDay, res.Status)
	assert.InDelta(t, 3.67, res.TotalHours, 0.01)
}

func TestClassify_NightShiftWrapsMidnight(t *testing.T) {
	// 21:10 -> 06:05 next day.
	in := at(21, 10)
	out := in.Add(8*time.Hour + 55*time.Minute)
	res := Classify(nightShift(), in, &out, 30)

	assert.Equal(t, attendance.StatusPresent, res.Status)
	assert.InDelta(t, 8.92, res.TotalHours, 0.01)
	assert.InDelta(t, 0.42, res.OvertimeHours, 0.01)
}

func TestClassify_NightShiftTimeOfDayStamps(t *testing.T) {
	// Same session recorded with bare time-of-day stamps: the raw
	// difference is negative and must be corrected by the +24h rule.
	in := timeOfDay(21, 10)
	out := timeOfDay(6, 5)
	res := Classify(nightShift(), in, &out, 30)

	assert.InDelta(t, 8.92, res.TotalHours, 0.01)
}

func TestClassify_OvertimeAccrualNeedsThreshold(t *testing.T) {
	// 09:00 -> 17:25: 8.42h worked, but overtime starts at 8h + 30m.
	out := at(17, 25)
	res := Classify(dayShift(), at(9, 0), &out, 30)
	assert.Equal(t, 0.0, res.OvertimeHours)

	// 09:00 -> 19:00: 10h worked, 1.5h beyond full day + threshold.
	out = at(19, 0)
	res = Classify(dayShift(), at(9, 0), &out, 30)
	assert.InDelta(t, 1.5, res.OvertimeHours, 0.001)
}

func TestClassify_LateStatusRetainedAfterFullDay(t *testing.T) {
	out := at(18, 30)
	res := Classify(dayShift(), at(9, 30), &out, 30)

	assert.Equal(t, attendance.StatusLate, res.Status)
	assert.Equal(t, 9.0, res.TotalHours)
}
