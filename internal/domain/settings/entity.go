package settings

// Setting keys stored in the attendance_settings table. The admin screen is
// the single writer; the engine only reads.
const (
	KeyFaceRecognitionThreshold     = "face_recognition_threshold"
	KeyLocationVerificationRequired = "location_verification_required"
	KeyLateThresholdMinutes         = "late_threshold_minutes"
	KeyHalfDayThresholdHours        = "half_day_threshold_hours"
	KeyOvertimeThresholdMinutes     = "overtime_threshold_minutes"
	KeyAttendanceLockDay            = "attendance_lock_day"
)

// Settings is the typed view of the engine configuration, read at request
// time.
type Settings struct {
	FaceRecognitionThreshold     float64
	LocationVerificationRequired bool
	LateThresholdMinutes         int
	HalfDayThresholdHours        float64
	OvertimeThresholdMinutes     int
	AttendanceLockDay            int
}

// Defaults returns the settings applied when a key has no stored value.
func Defaults() Settings {
	return Settings{
		FaceRecognitionThreshold:     0.6,
		LocationVerificationRequired: true,
		LateThresholdMinutes:         15,
		HalfDayThresholdHours:        4,
		OvertimeThresholdMinutes:     30,
		AttendanceLockDay:            5,
	}
}

// OfficeGeofence is the single global office boundary. It is the sole
// source of office coordinates; no caller may hardcode its own pair.
type OfficeGeofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}
