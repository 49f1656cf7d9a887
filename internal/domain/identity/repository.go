package identity

import "context"

// IdentityRepository is the employee registry consumed by the matcher and
// the enrollment flow.
type IdentityRepository interface {
	// GetByID retrieves a single employee.
	GetByID(ctx context.Context, id string) (Identity, error)

	// ListActive retrieves all active employees without descriptors.
	ListActive(ctx context.Context) ([]Identity, error)

	// ListActiveWithDescriptors retrieves the matcher's registry snapshot.
	// Results are ordered by employee id so tie-breaking is deterministic.
	ListActiveWithDescriptors(ctx context.Context) ([]Identity, error)

	// AddDescriptor appends a canonical descriptor to an employee's set.
	AddDescriptor(ctx context.Context, employeeID string, descriptor []float64) error
}
