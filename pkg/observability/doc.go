// Package observability provides structured logging and Prometheus
// metrics for the Atrium service.
//
// Logging is a thin wrapper over log/slog with JSON output and chainable
// field helpers. Metrics cover session resolution outcomes, permission
// gate denials and token issuance; they are registered against an
// explicit registry so tests can run in isolation.
package observability
