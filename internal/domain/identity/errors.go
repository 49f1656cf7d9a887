package identity

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeInactive  = errors.New("employee is inactive")
	ErrInvalidDescriptor = errors.New("face descriptor has invalid shape")
)
