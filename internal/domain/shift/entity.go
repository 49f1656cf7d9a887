package shift

import "time"

// Shift is a work schedule assigned to an employee. Start and end are
// times of day ("15:04" resolution); a shift whose end is earlier than its
// start crosses midnight.
type Shift struct {
	ID                 string
	Name               string
	StartTime          string
	EndTime            string
	GracePeriodMinutes int
	HalfDayHours       float64
	FullDayHours       float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CrossesMidnight reports whether the shift ends on the calendar day after
// it starts.
func (s Shift) CrossesMidnight() bool {
	start, errStart := time.Parse("15:04", s.StartTime)
	end, errEnd := time.Parse("15:04", s.EndTime)
	if errStart != nil || errEnd != nil {
		return false
	}
	return end.Before(start)
}

// StartOn anchors the shift's start time on the given day, in that day's
// location.
func (s Shift) StartOn(day time.Time) time.Time {
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	}
	return time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, day.Location())
}
