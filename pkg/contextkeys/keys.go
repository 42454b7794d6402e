// Package contextkeys provides centralized context key definitions
//
// All context keys used across the application are defined here. This
// prevents typos, documents dependencies, and makes key usage
// discoverable.
package contextkeys

import (
	"context"

	"github.com/quorali/atrium/pkg/auth"
)

// Key is the type for context keys to prevent collisions
type Key string

const (
	// IdentityKey contains the auth.Identity resolved for the request.
	// Set by: middleware.SessionResolver (pkg/middleware/session.go)
	// Read by: middleware.PermissionGate, session handlers, all
	// tenant-scoped endpoints.
	IdentityKey Key = "identity"
)

// WithIdentity attaches the resolved identity to the context. The write
// is idempotent: when an identity is already present it is reused, so a
// duplicated middleware invocation never recomputes or overwrites it.
func WithIdentity(ctx context.Context, ident auth.Identity) context.Context {
	if _, ok := ctx.Value(IdentityKey).(auth.Identity); ok {
		return ctx
	}
	return context.WithValue(ctx, IdentityKey, ident)
}

// LookupIdentity returns the identity attached to the context and
// whether one was present. Callers that want to avoid recomputing an
// identity check presence through this before resolving.
func LookupIdentity(ctx context.Context) (auth.Identity, bool) {
	ident, ok := ctx.Value(IdentityKey).(auth.Identity)
	return ident, ok
}

// GetIdentity returns the identity resolved for the request, or the
// anonymous sentinel when none was attached.
func GetIdentity(ctx context.Context) auth.Identity {
	if ident, ok := LookupIdentity(ctx); ok {
		return ident
	}
	return auth.Anonymous()
}
