// Package directory defines the read interfaces the auth core consumes
// from the SQL-backed user, tenant and permission directories. The core
// never writes through these interfaces; the postgres subpackage holds
// the stored-procedure backed implementations.
package directory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/auth"
)

// User is a directory user record.
type User struct {
	ID         uuid.UUID `json:"user_id"`
	Active     bool      `json:"active"`
	Created    time.Time `json:"created"`
	FirstName  string    `json:"first_name"`
	MiddleName string    `json:"middle_name"`
	LastName   string    `json:"last_name"`
	Prefix     string    `json:"prefix"`
	Suffix     string    `json:"suffix"`
	Email      string    `json:"email"`
}

// Credential is the identity half of a password credential record.
type Credential struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// UserDirectory reads user records.
type UserDirectory interface {
	FetchByID(ctx context.Context, userID uuid.UUID) (User, error)
}

// TenantDirectory reads tenant records and tenant membership.
type TenantDirectory interface {
	FetchByID(ctx context.Context, tenantID uuid.UUID) (auth.Tenant, error)
	FetchForUser(ctx context.Context, userID uuid.UUID) ([]auth.Tenant, error)
}

// TenantAdmin writes tenant records. Kept separate from TenantDirectory
// so the auth core only ever holds the read half.
type TenantAdmin interface {
	Save(ctx context.Context, tenant auth.Tenant) error
}

// PermissionDirectory reads the permission set granted to a user within
// a tenant, and the full permission catalog.
type PermissionDirectory interface {
	FetchForUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) ([]auth.Permission, error)
	Fetch(ctx context.Context, filter string) ([]auth.Permission, error)
}

// AuthDirectory reads password credentials for sign-in.
type AuthDirectory interface {
	AuthenticateByPassword(ctx context.Context, email, password string) (bool, error)
	FetchByEmail(ctx context.Context, email string) (Credential, error)
}
