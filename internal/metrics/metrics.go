// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// OIDC validation outcomes.
const (
	OIDCValid              = "valid"
	OIDCAppNotFound        = "not_found"
	OIDCInvalidRedirectURI = "invalid_redirect_uri"
)

// Public app cache outcomes.
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheNegative = "negative"
	CacheError    = "error"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// Backend (GraphQL or Postgres) metrics
	ObserveBackendCall(operation string, success bool, duration time.Duration)

	// Domain metrics
	IncOIDCValidation(result string)
	IncPublicAppCache(result string)
	IncTeamCreated(withInvite bool)
}
