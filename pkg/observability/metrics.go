package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session resolution outcomes recorded by the metrics below.
const (
	SessionOutcomeAnonymous      = "anonymous"
	SessionOutcomeAuthenticated  = "authenticated"
	SessionOutcomeTokenRejected  = "token_rejected"
	SessionOutcomeLookupFailed   = "lookup_failed"
	SessionOutcomeTenantMismatch = "tenant_mismatch"
)

// Denial reasons recorded by the permission gate.
const (
	DenialUnauthenticated = "unauthenticated"
	DenialForbidden       = "forbidden"
)

// Metrics holds the Prometheus metrics for the auth core.
type Metrics struct {
	registry *prometheus.Registry

	SessionResolutionsTotal *prometheus.CounterVec
	PermissionDenialsTotal  *prometheus.CounterVec
	TokensIssuedTotal       *prometheus.CounterVec
}

// NewMetrics creates and registers the auth metrics against the given
// registry. A nil registry creates a private one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		SessionResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atrium_session_resolutions_total",
				Help: "Session resolutions by outcome",
			},
			[]string{"outcome"},
		),
		PermissionDenialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atrium_permission_denials_total",
				Help: "Permission gate denials by reason and permission",
			},
			[]string{"reason", "permission"},
		),
		TokensIssuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atrium_tokens_issued_total",
				Help: "Bearer tokens issued by operation",
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(
		m.SessionResolutionsTotal,
		m.PermissionDenialsTotal,
		m.TokensIssuedTotal,
	)

	return m
}

// ObserveSession records one session resolution outcome. Safe on a nil
// receiver so callers can run without metrics.
func (m *Metrics) ObserveSession(outcome string) {
	if m == nil {
		return
	}
	m.SessionResolutionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveDenial records one permission gate denial.
func (m *Metrics) ObserveDenial(reason, permission string) {
	if m == nil {
		return
	}
	m.PermissionDenialsTotal.WithLabelValues(reason, permission).Inc()
}

// ObserveTokenIssued records one issued token.
func (m *Metrics) ObserveTokenIssued(operation string) {
	if m == nil {
		return
	}
	m.TokensIssuedTotal.WithLabelValues(operation).Inc()
}

// Handler returns an HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
