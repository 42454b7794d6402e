package api

import (
	"encoding/json"
	"net/http"

	"github.com/quorali/atrium/pkg/httputil"
)

type permissionFetchRequest struct {
	Filter string `json:"filter"`
}

func (s *Server) permissionsFetch(w http.ResponseWriter, r *http.Request) {
	var req permissionFetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}

	permissions, err := s.permissions.Fetch(r.Context(), req.Filter)
	if err != nil {
		s.logger.WithError(err).Error("unable to fetch permissions")
		httputil.WriteInternalError(w, "unable to fetch permission records")
		return
	}

	httputil.WriteSuccess(w, "successfully retrieved permission records", map[string]interface{}{
		"permissions": permissions,
	})
}
