package user

import "errors"

// Role is carried in the JWT access token issued by the external auth
// service.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

var (
	ErrAdminAccessRequired = errors.New("admin access required")
	ErrHRAccessRequired    = errors.New("hr or admin access required")
)
