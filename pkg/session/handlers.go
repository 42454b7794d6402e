// Package session implements the session endpoints: password sign-in
// (the producer of bearer tokens) and tenant switch (re-issuing a token
// with a different active tenant).
package session

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/auth"
	"github.com/quorali/atrium/pkg/contextkeys"
	"github.com/quorali/atrium/pkg/directory"
	"github.com/quorali/atrium/pkg/httputil"
	"github.com/quorali/atrium/pkg/observability"
)

// AuthorizationHeader carries issued tokens back to the caller. It is
// listed in Access-Control-Expose-Headers so browser clients can read it.
const AuthorizationHeader = "Authorization"

// Handlers holds the session endpoint handlers.
type Handlers struct {
	codec       *auth.TokenCodec
	credentials directory.AuthDirectory
	users       directory.UserDirectory
	tenants     directory.TenantDirectory
	logger      *observability.Logger
	metrics     *observability.Metrics
}

// NewHandlers creates the session endpoint handlers.
func NewHandlers(
	codec *auth.TokenCodec,
	credentials directory.AuthDirectory,
	users directory.UserDirectory,
	tenants directory.TenantDirectory,
	logger *observability.Logger,
	metrics *observability.Metrics,
) *Handlers {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &Handlers{
		codec:       codec,
		credentials: credentials,
		users:       users,
		tenants:     tenants,
		logger:      logger,
		metrics:     metrics,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"pw"`
}

// SignIn authenticates an email/password pair and issues a bearer token
// with no active tenant selected. The token is returned in the
// Authorization response header.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "email and pw are required")
		return
	}

	ok, err := h.credentials.AuthenticateByPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithError(err).Error("unable to authenticate by password")
		httputil.WriteInternalError(w, "unable to sign in")
		return
	}
	if !ok {
		httputil.WriteUnauthorized(w, "invalid credentials")
		return
	}

	credential, err := h.credentials.FetchByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.WithError(err).Error("unable to fetch credential by email")
		httputil.WriteInternalError(w, "unable to sign in")
		return
	}

	userName := ""
	if user, err := h.users.FetchByID(r.Context(), credential.UserID); err == nil {
		userName = strings.TrimSpace(user.FirstName + " " + user.LastName)
	} else {
		h.logger.WithError(err).Warn("unable to fetch user for sign-in")
	}

	claim := auth.NewClaim(credential.UserID, uuid.Nil, userName, credential.Email)
	token, err := h.codec.Generate(claim)
	if err != nil {
		h.logger.WithError(err).Error("unable to sign claims")
		httputil.WriteInternalError(w, "unable to sign in")
		return
	}

	h.metrics.ObserveTokenIssued("sign_in")
	w.Header().Set(AuthorizationHeader, "Bearer "+token)
	httputil.WriteSuccess(w, "success", nil)
}

type switchTenantRequest struct {
	TenantID uuid.UUID `json:"tenant_id"`
}

// SwitchTenant re-issues the caller's token with the requested tenant as
// the active one, keeping user id, name and email unchanged. When the
// tenant lookup fails the operation still reports success, just without
// a new token; the previous token stays valid until its natural expiry.
func (h *Handlers) SwitchTenant(w http.ResponseWriter, r *http.Request) {
	ident := contextkeys.GetIdentity(r.Context())
	if ident.IsAnonymous() {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	var req switchTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}

	tenant, err := h.tenants.FetchByID(r.Context(), req.TenantID)
	if err != nil {
		h.logger.WithError(err).WithField("tenant_id", req.TenantID.String()).
			Warn("unable to fetch tenant for switch")
		httputil.WriteSuccess(w, "success", nil)
		return
	}

	claim := auth.NewClaim(ident.UserID, tenant.ID, ident.Name, ident.Email)
	token, err := h.codec.Generate(claim)
	if err != nil {
		h.logger.WithError(err).Error("unable to sign claims")
		httputil.WriteInternalError(w, "unable to switch tenant")
		return
	}

	h.metrics.ObserveTokenIssued("tenant_switch")
	w.Header().Set(AuthorizationHeader, "Bearer "+token)
	httputil.WriteSuccess(w, "success", nil)
}
