package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/auth"
)

// TenantStore reads and writes tenant records through the tenants schema
// procedures. It implements both directory.TenantDirectory and
// directory.TenantAdmin.
type TenantStore struct {
	db *sql.DB
}

// NewTenantStore creates a tenant store over the shared pool.
func NewTenantStore(db *sql.DB) *TenantStore {
	return &TenantStore{db: db}
}

// FetchByID retrieves one tenant record by id.
func (s *TenantStore) FetchByID(ctx context.Context, tenantID uuid.UUID) (auth.Tenant, error) {
	query := `
		SELECT tenant_id, name, description
		FROM tenants.tenants_fetch_by_id($1)
	`

	var tenant auth.Tenant
	err := s.db.QueryRowContext(ctx, query, tenantID).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Description,
	)
	if err == sql.ErrNoRows {
		return auth.Tenant{}, fmt.Errorf("tenant not found: %s", tenantID)
	}
	if err != nil {
		return auth.Tenant{}, fmt.Errorf("failed to fetch tenant by id: %w", err)
	}

	return tenant, nil
}

// FetchForUser retrieves every tenant the user belongs to.
func (s *TenantStore) FetchForUser(ctx context.Context, userID uuid.UUID) ([]auth.Tenant, error) {
	query := `
		SELECT tenant_id, name, description
		FROM tenants.tenants_fetch_by_user($1)
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tenants for user: %w", err)
	}
	defer rows.Close()

	var tenants []auth.Tenant
	for rows.Next() {
		var tenant auth.Tenant
		if err := rows.Scan(&tenant.ID, &tenant.Name, &tenant.Description); err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tenant rows: %w", err)
	}

	return tenants, nil
}

// Save creates or updates a tenant record.
func (s *TenantStore) Save(ctx context.Context, tenant auth.Tenant) error {
	if _, err := s.db.ExecContext(ctx, `CALL tenants.tenant_save($1, $2, $3)`,
		tenant.ID, tenant.Name, tenant.Description); err != nil {
		return fmt.Errorf("failed to save tenant: %w", err)
	}
	return nil
}
