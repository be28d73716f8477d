package clock

import (
	"sync"
	"time"
)

// ManualTimeSource is a TimeSource that only moves when told to. Used by tests and headless runs.
type ManualTimeSource struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualTimeSource(start time.Time) *ManualTimeSource {
	return &ManualTimeSource{now: start}
}

func (m *ManualTimeSource) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the source forward by d and returns the new instant. Negative steps are ignored.
func (m *ManualTimeSource) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.now = m.now.Add(d)
	}
	return m.now
}
