package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/auth"
)

// PermissionStore reads permission grants through the permissions schema
// procedures.
type PermissionStore struct {
	db *sql.DB
}

// NewPermissionStore creates a permission store over the shared pool.
func NewPermissionStore(db *sql.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

// FetchForUserAndTenant retrieves the permission set granted to the user
// within the tenant.
func (s *PermissionStore) FetchForUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) ([]auth.Permission, error) {
	query := `
		SELECT permission_id, name
		FROM permissions.permissions_fetch_by_user_tenant($1, $2)
	`

	rows, err := s.db.QueryContext(ctx, query, userID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions for user and tenant: %w", err)
	}
	defer rows.Close()

	return scanPermissions(rows)
}

// Fetch retrieves permission catalog entries matching the filter.
func (s *PermissionStore) Fetch(ctx context.Context, filter string) ([]auth.Permission, error) {
	query := `
		SELECT permission_id, name
		FROM permissions.permissions_fetch($1)
	`

	rows, err := s.db.QueryContext(ctx, query, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}
	defer rows.Close()

	return scanPermissions(rows)
}

func scanPermissions(rows *sql.Rows) ([]auth.Permission, error) {
	var permissions []auth.Permission
	for rows.Next() {
		var permission auth.Permission
		if err := rows.Scan(&permission.ID, &permission.Name); err != nil {
			return nil, fmt.Errorf("failed to scan permission row: %w", err)
		}
		permissions = append(permissions, permission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read permission rows: %w", err)
	}
	return permissions, nil
}
