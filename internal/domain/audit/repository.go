package audit

import "context"

// AuditRepository is the audit sink. Audit writes must not fail the
// business operation; callers log and continue on error.
type AuditRepository interface {
	Record(ctx context.Context, entry Entry) error
	ListByEntity(ctx context.Context, entityType string, entityID string) ([]Entry, error)
}
