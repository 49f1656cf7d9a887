package postgresql

import (
	"context"

	"github.com/google/uuid"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/audit"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// Record implements audit.AuditRepository.
func (r *auditRepository) Record(ctx context.Context, entry audit.Entry) error {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO audit_logs (id, actor, action, entity_type, entity_id, before, after, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		entry.ID, entry.Actor, entry.Action, entry.EntityType, entry.EntityID,
		entry.Before, entry.After, entry.Reason,
	)
	if err != nil {
		return wrapStoreErr(err, "failed to record audit entry")
	}

	return nil
}

// ListByEntity implements audit.AuditRepository.
func (r *auditRepository) ListByEntity(ctx context.Context, entityType string, entityID string) ([]audit.Entry, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, actor, action, entity_type, entity_id, before, after, reason, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to query audit entries")
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		if err := rows.Scan(
			&entry.ID, &entry.Actor, &entry.Action, &entry.EntityType, &entry.EntityID,
			&entry.Before, &entry.After, &entry.Reason, &entry.CreatedAt,
		); err != nil {
			return nil, wrapStoreErr(err, "failed to scan audit entry")
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}
