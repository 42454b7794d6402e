package api

import (
	"net/http"

	"github.com/quorali/atrium/pkg/middleware"
)

// route binds one path to a handler and the single permission required
// to call it. An empty permission marks the route public.
type route struct {
	path       string
	permission string
	handler    http.HandlerFunc
}

func (s *Server) registerRoutes() {
	s.router.Use(middleware.CORS)
	s.router.Use(s.resolver.Handler)

	routes := []route{
		{path: "/session/sign-in", permission: "", handler: s.session.SignIn},
		{path: "/session/switch-tenant", permission: "", handler: s.session.SwitchTenant},

		{path: "/tenants/fetch-by-id", permission: "tenant.fetch", handler: s.tenantsFetchByID},
		{path: "/tenants/fetch-by-user", permission: "tenant.fetch", handler: s.tenantsFetchByUser},
		{path: "/tenants/save", permission: "tenant.save", handler: s.tenantsSave},

		{path: "/permissions/fetch", permission: "permission.fetch", handler: s.permissionsFetch},
	}

	for _, rt := range routes {
		handler := s.gate.Require(rt.permission)(rt.handler)
		// OPTIONS is registered so the CORS middleware can answer
		// preflight before method matching rejects it.
		s.router.Handle(rt.path, handler).Methods(http.MethodPost, http.MethodOptions)
	}

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
}
