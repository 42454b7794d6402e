package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/auth"
	"github.com/quorali/atrium/pkg/contextkeys"
	"github.com/quorali/atrium/pkg/httputil"
)

type tenantFetchByIDRequest struct {
	TenantID uuid.UUID `json:"tenant_id"`
}

func (s *Server) tenantsFetchByID(w http.ResponseWriter, r *http.Request) {
	var req tenantFetchByIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}

	tenant, err := s.tenants.FetchByID(r.Context(), req.TenantID)
	if err != nil {
		s.logger.WithError(err).Error("unable to fetch tenant by id")
		httputil.WriteInternalError(w, "unable to fetch tenant by id")
		return
	}

	httputil.WriteSuccess(w, "successfully retrieved tenant by id", map[string]interface{}{
		"tenant": tenant,
	})
}

func (s *Server) tenantsFetchByUser(w http.ResponseWriter, r *http.Request) {
	ident := contextkeys.GetIdentity(r.Context())

	tenants, err := s.tenants.FetchForUser(r.Context(), ident.UserID)
	if err != nil {
		s.logger.WithError(err).Error("unable to fetch tenants for user")
		httputil.WriteInternalError(w, "unable to fetch tenant records")
		return
	}

	httputil.WriteSuccess(w, "successfully retrieved tenant records", map[string]interface{}{
		"tenants": tenants,
	})
}

type tenantSaveRequest struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func (s *Server) tenantsSave(w http.ResponseWriter, r *http.Request) {
	var req tenantSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		httputil.WriteBadRequest(w, "name is required")
		return
	}

	tenant := auth.Tenant{
		ID:          req.TenantID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.tenantAdmin.Save(r.Context(), tenant); err != nil {
		s.logger.WithError(err).Error("unable to save tenant")
		httputil.WriteInternalError(w, "unable to save tenant")
		return
	}

	httputil.WriteSuccess(w, "successfully saved tenant", nil)
}
