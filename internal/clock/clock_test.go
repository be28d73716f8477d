package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewSessionClock_NilSourcePanics(t *testing.T) {
	assert.Panics(t, func() { NewSessionClock(nil) })
}

func TestSessionClock_StartsStopped(t *testing.T) {
	c := NewSessionClock(NewManualTimeSource(epoch))
	assert.False(t, c.Active())
	assert.Equal(t, time.Duration(0), c.Remaining(epoch))
	assert.False(t, c.IsExpired(epoch.Add(time.Hour)))
}

func TestSessionClock_RemainingIsMonotonicAndFloorsAtZero(t *testing.T) {
	src := NewManualTimeSource(epoch)
	c := NewSessionClock(src)
	c.Arm(10 * time.Second)

	prev := c.Remaining(epoch)
	assert.Equal(t, 10*time.Second, prev)
	for step := 0; step <= 150; step++ {
		now := epoch.Add(time.Duration(step) * 100 * time.Millisecond)
		r := c.Remaining(now)
		assert.LessOrEqual(t, r, prev, "remaining increased at step %d", step)
		assert.GreaterOrEqual(t, r, time.Duration(0))
		prev = r
	}

	assert.Equal(t, time.Duration(0), c.Remaining(epoch.Add(10*time.Second)))
	assert.Equal(t, time.Duration(0), c.Remaining(epoch.Add(time.Minute)))
}

func TestSessionClock_ExpiryUsesEpsilon(t *testing.T) {
	src := NewManualTimeSource(epoch)
	c := NewSessionClock(src)
	c.Arm(time.Second)

	assert.False(t, c.IsExpired(epoch.Add(980*time.Millisecond)))
	assert.True(t, c.IsExpired(epoch.Add(990*time.Millisecond)))
	assert.True(t, c.IsExpired(epoch.Add(2*time.Second)))
}

func TestSessionClock_ZeroDurationIsImmediatelyExpired(t *testing.T) {
	c := NewSessionClock(NewManualTimeSource(epoch))
	c.Arm(0)
	assert.True(t, c.IsExpired(epoch))

	c.Arm(-5 * time.Second)
	assert.Equal(t, time.Duration(0), c.Snapshot().Duration)
	assert.True(t, c.IsExpired(epoch))
}

func TestSessionClock_ArmReplacesPreviousCountdown(t *testing.T) {
	src := NewManualTimeSource(epoch)
	c := NewSessionClock(src)
	c.Arm(5 * time.Second)

	later := src.Advance(4 * time.Second)
	c.Arm(20 * time.Second)

	snap := c.Snapshot()
	require.True(t, snap.Active)
	assert.Equal(t, later, snap.StartedAt)
	assert.Equal(t, 20*time.Second, snap.Duration)
	assert.Equal(t, 20*time.Second, c.Remaining(later))
}

func TestSessionClock_StopDisablesExpiry(t *testing.T) {
	c := NewSessionClock(NewManualTimeSource(epoch))
	c.Arm(time.Second)
	c.Stop()

	assert.False(t, c.Active())
	assert.False(t, c.IsExpired(epoch.Add(time.Hour)))
	assert.Equal(t, time.Second, c.Snapshot().Duration)
}

func TestState_IsValue(t *testing.T) {
	s := State{Duration: 3 * time.Second, StartedAt: epoch, Active: true}
	assert.Equal(t, 1500*time.Millisecond, s.Remaining(epoch.Add(1500*time.Millisecond)))
	assert.Equal(t, s.Remaining(epoch.Add(time.Second)), s.Remaining(epoch.Add(time.Second)))
}

func TestManualTimeSource_IgnoresNegativeSteps(t *testing.T) {
	src := NewManualTimeSource(epoch)
	src.Advance(-time.Second)
	assert.Equal(t, epoch, src.Now())
	assert.Equal(t, epoch.Add(time.Second), src.Advance(time.Second))
}
