package audit

import (
	"encoding/json"
	"time"
)

// Action names recorded by the engine.
const (
	ActionCheckIn      = "attendance.check_in"
	ActionCheckOut     = "attendance.check_out"
	ActionManualEntry  = "attendance.manual_entry"
	ActionPayrollLock  = "payroll.lock"
	ActionEnrollFace   = "identity.enroll_descriptor"
	ActionMarkedAbsent = "attendance.marked_absent"
)

// Entry is one immutable audit record, written on every mutating
// transition.
type Entry struct {
	ID         string
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	Before     json.RawMessage
	After      json.RawMessage
	Reason     *string
	CreatedAt  time.Time
}
