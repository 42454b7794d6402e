// Package middleware provides the HTTP middleware chain for the Atrium
// API: session resolution, per-route permission enforcement, and CORS.
//
// SessionResolver runs first on every request and always attaches
// exactly one auth.Identity to the request context (anonymous by
// default). PermissionGate wraps individual routes and consults that
// identity, denying with 401 (unauthenticated) or 403 (missing
// permission) before the handler runs. Every internal failure collapses
// to the anonymous identity; the worst outcome of any error in this
// package is an overly restrictive request, never a crash.
package middleware
