package payroll

import (
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/validator"
)

// LockRequest asks for a payroll period to be locked.
type LockRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r LockRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LockResponse reports the outcome of a lock operation.
type LockResponse struct {
	Year        int   `json:"year"`
	Month       int   `json:"month"`
	LockedCount int64 `json:"locked_count"`
}

// LockInfo is one existing lock in a listing.
type LockInfo struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	LockedBy *string `json:"locked_by,omitempty"`
	LockedAt string  `json:"locked_at"`
}
