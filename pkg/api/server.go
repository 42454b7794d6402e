// Package api constructs the HTTP router: the middleware chain, the
// route-to-permission table, and the representative tenant and
// permission endpoints.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quorali/atrium/pkg/directory"
	"github.com/quorali/atrium/pkg/middleware"
	"github.com/quorali/atrium/pkg/observability"
	"github.com/quorali/atrium/pkg/session"
)

// Server wires the middleware chain and the API routes.
type Server struct {
	router      *mux.Router
	resolver    *middleware.SessionResolver
	gate        *middleware.PermissionGate
	session     *session.Handlers
	tenants     directory.TenantDirectory
	tenantAdmin directory.TenantAdmin
	permissions directory.PermissionDirectory
	logger      *observability.Logger
	metrics     *observability.Metrics
}

// NewServer creates the API server and registers all routes.
func NewServer(
	resolver *middleware.SessionResolver,
	gate *middleware.PermissionGate,
	sessionHandlers *session.Handlers,
	tenants directory.TenantDirectory,
	tenantAdmin directory.TenantAdmin,
	permissions directory.PermissionDirectory,
	logger *observability.Logger,
	metrics *observability.Metrics,
) *Server {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	s := &Server{
		router:      mux.NewRouter(),
		resolver:    resolver,
		gate:        gate,
		session:     sessionHandlers,
		tenants:     tenants,
		tenantAdmin: tenantAdmin,
		permissions: permissions,
		logger:      logger,
		metrics:     metrics,
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
