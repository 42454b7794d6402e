package auth

import "github.com/google/uuid"

// Tenant represents a tenant a user can act within.
type Tenant struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// DefaultTenant returns the nil-UUID sentinel meaning "no tenant selected".
func DefaultTenant() Tenant {
	return Tenant{
		ID:          uuid.Nil,
		Name:        "default",
		Description: "default",
	}
}

// IsDefault reports whether the tenant is the "no tenant selected" sentinel.
func (t Tenant) IsDefault() bool {
	return t.ID == uuid.Nil
}

// Permission is a named capability granted to a user within a tenant.
// Name is the unit compared against a route's required permission; the
// id is opaque to this core.
type Permission struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// Identity is the fully resolved authorization context for one request:
// user, active tenant, tenant list and permission set. It is constructed
// once per request by the session middleware, is immutable afterwards,
// and lives only in that request's context.
type Identity struct {
	UserID       uuid.UUID    `json:"user_id"`
	ActiveTenant Tenant       `json:"active_tenant"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Tenants      []Tenant     `json:"tenants"`
	Permissions  []Permission `json:"permissions"`
}

// Anonymous returns the unauthenticated sentinel Identity.
func Anonymous() Identity {
	return Identity{
		UserID:       uuid.Nil,
		ActiveTenant: DefaultTenant(),
	}
}

// IsAnonymous reports whether the identity is the unauthenticated sentinel.
func (i Identity) IsAnonymous() bool {
	return i.UserID == uuid.Nil
}

// IsAuthenticated reports whether the identity belongs to a real user.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != uuid.Nil
}

// HasPermission reports whether the permission set contains an entry with
// the given name. Matching is exact and case-sensitive.
func (i Identity) HasPermission(name string) bool {
	for _, p := range i.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}
