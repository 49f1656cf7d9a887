package identity

import (
	"time"
)

// Identity is an employee as seen by the biometric matcher: an id and a set
// of registered face descriptors. Descriptors are written by the enrollment
// flow and read-only everywhere else.
type Identity struct {
	ID          string
	FullName    string
	IsActive    bool
	Descriptors [][]float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
