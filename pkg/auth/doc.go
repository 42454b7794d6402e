// Package auth provides the request-identity core for the Atrium backend.
//
// # Overview
//
// This package implements the identity value types shared by the whole
// service together with the bearer-token codec. A signed token carries a
// Claim (who, which tenant, when issued/expires); the session middleware
// resolves a Claim into a full Identity (user, active tenant, tenant list,
// permission set) that downstream handlers read from the request context.
//
// # Key Components
//
// Claim: the facts embedded in a token
//
//	claim := auth.NewClaim(userID, tenantID, "alice", "alice@example.com")
//
// TokenCodec: HMAC-SHA256 signed, self-contained bearer tokens
//
//	codec := auth.NewTokenCodec(secret, auth.TokenTTL, logger)
//	token, err := codec.Generate(claim)
//	claim = codec.Parse(token) // empty claim on any failure
//
// Identity: the resolved per-request authorization context
//
//	ident := auth.Anonymous()
//	ident.IsAnonymous()            // true
//	ident.HasPermission("tenant.save")
//
// All failure paths in this package are fail-closed: a malformed, forged
// or expired token degrades to the empty Claim (and from there to the
// anonymous Identity), never to a process-level error.
package auth
