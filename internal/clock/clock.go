package clock

import (
	"sync"
	"time"
)

// ExpiryEpsilon absorbs tick jitter: a countdown with this much or less remaining is expired.
const ExpiryEpsilon = 10 * time.Millisecond

// TimeSource supplies monotonic instants
type TimeSource interface {
	Now() time.Time
}

// SystemTimeSource reads time.Now, whose monotonic reading survives wall clock adjustments
type SystemTimeSource struct{}

func (SystemTimeSource) Now() time.Time {
	return time.Now()
}

// State is a value snapshot of a single countdown
type State struct {
	Duration  time.Duration
	StartedAt time.Time
	Active    bool
}

// Remaining returns max(0, Duration - (now - StartedAt)).
// An inactive countdown has nothing remaining.
func (s State) Remaining(now time.Time) time.Duration {
	if !s.Active {
		return 0
	}
	remaining := s.Duration - now.Sub(s.StartedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsExpired reports whether an active countdown has run down to within ExpiryEpsilon.
// A stopped countdown never expires.
func (s State) IsExpired(now time.Time) bool {
	if !s.Active {
		return false
	}
	return s.Remaining(now) <= ExpiryEpsilon
}

// SessionClock tracks one countdown at a time. Arming replaces any previous countdown.
type SessionClock struct {
	mu     sync.RWMutex
	source TimeSource
	state  State
}

// NewSessionClock creates a stopped clock reading instants from source
func NewSessionClock(source TimeSource) *SessionClock {
	if source == nil {
		panic("SessionClock: source cannot be nil")
	}
	return &SessionClock{source: source}
}

// Arm starts a countdown of d from the source's current instant. Negative durations count as zero.
func (c *SessionClock) Arm(d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := c.source.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Duration: d, StartedAt: now, Active: true}
}

// Stop deactivates the countdown; no further expiry is reported until the next Arm
func (c *SessionClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Active = false
}

func (c *SessionClock) Remaining(now time.Time) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Remaining(now)
}

func (c *SessionClock) IsExpired(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.IsExpired(now)
}

func (c *SessionClock) Active() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Active
}

// Snapshot returns a copy of the countdown state for projection
func (c *SessionClock) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Now returns the current instant of the clock's time source
func (c *SessionClock) Now() time.Time {
	return c.source.Now()
}
