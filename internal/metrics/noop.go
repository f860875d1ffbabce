package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}

// ObserveBackendCall is a no-op.
func (n *NoopRecorder) ObserveBackendCall(operation string, success bool, duration time.Duration) {}

// IncOIDCValidation is a no-op.
func (n *NoopRecorder) IncOIDCValidation(result string) {}

// IncPublicAppCache is a no-op.
func (n *NoopRecorder) IncPublicAppCache(result string) {}

// IncTeamCreated is a no-op.
func (n *NoopRecorder) IncTeamCreated(withInvite bool) {}
