package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTPRequests    uint64
	BackendCalls    map[string]uint64
	BackendFailures map[string]uint64
	OIDCValidations map[string]uint64
	PublicAppCache  map[string]uint64
	TeamsCreated    uint64
	InvitesAccepted uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		snap: Snapshot{
			BackendCalls:    make(map[string]uint64),
			BackendFailures: make(map[string]uint64),
			OIDCValidations: make(map[string]uint64),
			PublicAppCache:  make(map[string]uint64),
		},
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		HTTPRequests:    m.snap.HTTPRequests,
		BackendCalls:    copyCounts(m.snap.BackendCalls),
		BackendFailures: copyCounts(m.snap.BackendFailures),
		OIDCValidations: copyCounts(m.snap.OIDCValidations),
		PublicAppCache:  copyCounts(m.snap.PublicAppCache),
		TeamsCreated:    m.snap.TeamsCreated,
		InvitesAccepted: m.snap.InvitesAccepted,
	}
}

// ObserveHTTPRequest counts handled requests.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.mu.Lock()
	m.snap.HTTPRequests++
	m.mu.Unlock()
}

// ObserveBackendCall counts backend calls per operation.
func (m *InMemoryRecorder) ObserveBackendCall(operation string, success bool, duration time.Duration) {
	m.mu.Lock()
	m.snap.BackendCalls[operation]++
	if !success {
		m.snap.BackendFailures[operation]++
	}
	m.mu.Unlock()
}

// IncOIDCValidation counts validation outcomes.
func (m *InMemoryRecorder) IncOIDCValidation(result string) {
	m.mu.Lock()
	m.snap.OIDCValidations[result]++
	m.mu.Unlock()
}

// IncPublicAppCache counts public app cache outcomes.
func (m *InMemoryRecorder) IncPublicAppCache(result string) {
	m.mu.Lock()
	m.snap.PublicAppCache[result]++
	m.mu.Unlock()
}

// IncTeamCreated counts created teams.
func (m *InMemoryRecorder) IncTeamCreated(withInvite bool) {
	m.mu.Lock()
	m.snap.TeamsCreated++
	if withInvite {
		m.snap.InvitesAccepted++
	}
	m.mu.Unlock()
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
