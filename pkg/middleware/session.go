package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/quorali/atrium/pkg/auth"
	"github.com/quorali/atrium/pkg/contextkeys"
	"github.com/quorali/atrium/pkg/directory"
	"github.com/quorali/atrium/pkg/observability"
)

// The API uses POST as its single verb for every mutating and query
// call; anything else (OPTIONS preflight included) never carries
// identity resolution cost.
var bearerPattern = regexp.MustCompile(`^(?i:bearer)\s*`)

// stripBearer removes a case-insensitive Bearer prefix from the header
// value. Only the prefix is stripped; the token itself is never touched.
func stripBearer(header string) string {
	return strings.TrimSpace(bearerPattern.ReplaceAllString(header, ""))
}

// SessionResolver resolves the bearer token on each request into an
// auth.Identity and attaches it to the request context. Resolution is
// fail-closed: any token or directory failure yields the anonymous
// identity.
type SessionResolver struct {
	codec       *auth.TokenCodec
	users       directory.UserDirectory
	tenants     directory.TenantDirectory
	permissions directory.PermissionDirectory
	logger      *observability.Logger
	metrics     *observability.Metrics
}

// NewSessionResolver creates the session resolution middleware.
func NewSessionResolver(
	codec *auth.TokenCodec,
	users directory.UserDirectory,
	tenants directory.TenantDirectory,
	permissions directory.PermissionDirectory,
	logger *observability.Logger,
	metrics *observability.Metrics,
) *SessionResolver {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &SessionResolver{
		codec:       codec,
		users:       users,
		tenants:     tenants,
		permissions: permissions,
		logger:      logger,
		metrics:     metrics,
	}
}

// Handler wraps next with session resolution. The resolved identity is
// written into the request context exactly once; if one is already
// present it is reused rather than recomputed, so a duplicated
// middleware invocation never pays the directory round trips twice.
func (m *SessionResolver) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := contextkeys.LookupIdentity(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		ident := m.resolve(r)
		ctx := contextkeys.WithIdentity(r.Context(), ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionResolver) resolve(r *http.Request) auth.Identity {
	if r.Method != http.MethodPost {
		return auth.Anonymous()
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		m.metrics.ObserveSession(observability.SessionOutcomeAnonymous)
		return auth.Anonymous()
	}

	claim := m.codec.Parse(stripBearer(header))
	if claim.IsEmpty() {
		m.logger.Warn("token rejected")
		m.metrics.ObserveSession(observability.SessionOutcomeTokenRejected)
		return auth.Anonymous()
	}

	// Independent directory reads joined as one unit. Latency is
	// dominated by round trips, so they run concurrently; any single
	// failure discards the partial result.
	g, ctx := errgroup.WithContext(r.Context())

	var (
		user    directory.User
		tenants []auth.Tenant
		active  auth.Tenant
		perms   []auth.Permission
	)

	g.Go(func() error {
		var err error
		user, err = m.users.FetchByID(ctx, claim.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		tenants, err = m.tenants.FetchForUser(ctx, claim.UserID)
		return err
	})
	// A nil tenant claim means no tenant selected yet (a fresh sign-in
	// token); the directory has no row for it, so the sentinel stands
	// in without a lookup.
	if claim.TenantID == uuid.Nil {
		active = auth.DefaultTenant()
	} else {
		g.Go(func() error {
			var err error
			active, err = m.tenants.FetchByID(ctx, claim.TenantID)
			return err
		})
	}
	g.Go(func() error {
		var err error
		perms, err = m.permissions.FetchForUserAndTenant(ctx, claim.UserID, claim.TenantID)
		return err
	})

	if err := g.Wait(); err != nil {
		m.logger.WithError(err).WithField("user_id", claim.UserID.String()).
			Error("directory fan-out failed")
		m.metrics.ObserveSession(observability.SessionOutcomeLookupFailed)
		return auth.Anonymous()
	}

	// A selected tenant must be one the user still belongs to. A stale
	// token naming a tenant the user was removed from fails closed.
	if !active.IsDefault() && !memberOf(tenants, active.ID) {
		m.logger.WithField("user_id", claim.UserID.String()).
			WithField("tenant_id", active.ID.String()).
			Warn("active tenant not in membership")
		m.metrics.ObserveSession(observability.SessionOutcomeTenantMismatch)
		return auth.Anonymous()
	}

	m.metrics.ObserveSession(observability.SessionOutcomeAuthenticated)

	return auth.Identity{
		UserID:       user.ID,
		ActiveTenant: active,
		Name:         claim.UserName,
		Email:        claim.Email,
		Tenants:      tenants,
		Permissions:  perms,
	}
}

func memberOf(tenants []auth.Tenant, id uuid.UUID) bool {
	for _, t := range tenants {
		if t.ID == id {
			return true
		}
	}
	return false
}
