package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/identity"
	"github.com/kerjaflow/attendance-backend-go/internal/pkg/database"
)

type identityRepository struct {
	db *database.DB
}

// GetByID implements identity.IdentityRepository.
func (r *identityRepository) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, is_active, face_descriptors, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp identity.Identity
	var rawDescriptors []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.IsActive, &rawDescriptors,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, identity.ErrEmployeeNotFound
		}
		return identity.Identity{}, wrapStoreErr(err, "failed to get employee")
	}

	emp.Descriptors, err = identity.NormalizeDescriptors(rawDescriptors)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}

	return emp, nil
}

// ListActive implements identity.IdentityRepository.
func (r *identityRepository) ListActive(ctx context.Context) ([]identity.Identity, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, is_active, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to query employees")
	}
	defer rows.Close()

	var employees []identity.Identity
	for rows.Next() {
		var emp identity.Identity
		if err := rows.Scan(&emp.ID, &emp.FullName, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, wrapStoreErr(err, "failed to scan employee")
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// ListActiveWithDescriptors implements identity.IdentityRepository. The
// fixed ordering makes matcher tie-breaking deterministic across calls.
func (r *identityRepository) ListActiveWithDescriptors(ctx context.Context) ([]identity.Identity, error) {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, is_active, face_descriptors, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE AND face_descriptors IS NOT NULL
		ORDER BY id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to query employee descriptors")
	}
	defer rows.Close()

	var employees []identity.Identity
	for rows.Next() {
		var emp identity.Identity
		var rawDescriptors []byte
		if err := rows.Scan(&emp.ID, &emp.FullName, &emp.IsActive, &rawDescriptors, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, wrapStoreErr(err, "failed to scan employee descriptors")
		}

		emp.Descriptors, err = identity.NormalizeDescriptors(rawDescriptors)
		if err != nil {
			// One corrupt row must not take the whole registry down.
			continue
		}
		if len(emp.Descriptors) == 0 {
			continue
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// AddDescriptor implements identity.IdentityRepository. Stored descriptors
// are rewritten in canonical form so legacy shapes age out of the table.
func (r *identityRepository) AddDescriptor(ctx context.Context, employeeID string, descriptor []float64) error {
	ctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var rawDescriptors []byte
	readQuery := `SELECT face_descriptors FROM employees WHERE id = $1 FOR UPDATE`
	if err := q.QueryRow(ctx, readQuery, employeeID).Scan(&rawDescriptors); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.ErrEmployeeNotFound
		}
		return wrapStoreErr(err, "failed to read employee descriptors")
	}

	existing, err := identity.NormalizeDescriptors(rawDescriptors)
	if err != nil {
		return fmt.Errorf("employee %s: %w", employeeID, err)
	}

	updated, err := json.Marshal(append(existing, descriptor))
	if err != nil {
		return fmt.Errorf("failed to encode descriptors: %w", err)
	}

	updateQuery := `UPDATE employees SET face_descriptors = $1, updated_at = NOW() WHERE id = $2`
	if _, err := q.Exec(ctx, updateQuery, updated, employeeID); err != nil {
		return wrapStoreErr(err, "failed to update employee descriptors")
	}

	return nil
}

func NewIdentityRepository(db *database.DB) identity.IdentityRepository {
	return &identityRepository{db: db}
}
