package middleware

import (
	"net/http"

	"github.com/quorali/atrium/pkg/contextkeys"
	"github.com/quorali/atrium/pkg/httputil"
	"github.com/quorali/atrium/pkg/observability"
)

// PermissionGate enforces a single named permission per route. An empty
// permission name marks a route public. The gate composes as a plain
// decorator and knows nothing about the handler it wraps.
type PermissionGate struct {
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewPermissionGate creates the per-route permission guard.
func NewPermissionGate(logger *observability.Logger, metrics *observability.Metrics) *PermissionGate {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &PermissionGate{
		logger:  logger,
		metrics: metrics,
	}
}

// Require returns middleware that denies the request unless the
// identity resolved for it holds the named permission: 401 when
// anonymous, 403 when authenticated without the permission. Non-POST
// requests and routes configured with an empty permission pass through
// unconditionally.
func (g *PermissionGate) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if permission == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ident := contextkeys.GetIdentity(r.Context())

			if ident.IsAnonymous() {
				g.metrics.ObserveDenial(observability.DenialUnauthenticated, permission)
				httputil.WriteUnauthorized(w, "authentication required")
				return
			}

			if !ident.HasPermission(permission) {
				g.logger.WithField("user_id", ident.UserID.String()).
					WithField("permission", permission).
					Warn("permission denied")
				g.metrics.ObserveDenial(observability.DenialForbidden, permission)
				httputil.WriteForbidden(w, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
