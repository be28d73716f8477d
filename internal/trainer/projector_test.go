package trainer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectHIIT_EmptyPlan(t *testing.T) {
	h, _, _ := newTestHIIT()
	dm := ProjectHIIT(h.State(), epoch)

	assert.Equal(t, WorkoutKindHIIT, dm.Kind)
	assert.Equal(t, "READY", dm.PhaseLabel)
	assert.Equal(t, "Add HIIT moves to begin", dm.CurrentLabel)
	assert.Equal(t, "Add a HIIT move to see coaching cues.", dm.CuePlaceholder)
	assert.Equal(t, "Add at least one exercise before starting.", dm.StatusMessage)
	assert.False(t, dm.StartEnabled)
	assert.Equal(t, -1, dm.ActiveIndex)
}

func TestProjectHIIT_Ready(t *testing.T) {
	h, _, _ := newTestHIIT(hiitMoves(2)...)
	h.SetSettings(HIITSettings{Work: 40 * time.Second, Rest: 20 * time.Second, Rounds: 6})
	dm := ProjectHIIT(h.State(), epoch)

	assert.Equal(t, "READY", dm.PhaseLabel)
	assert.Equal(t, "Ready", dm.CurrentLabel)
	assert.Equal(t, 40, dm.SecondsLeft)
	assert.Equal(t, 0.0, dm.ProgressPercent)
	assert.Equal(t, "0/6", dm.ProgressLabel)
	assert.Equal(t, []string{"cue 0"}, dm.UpcomingCues)
	assert.Equal(t, "Preview cues for your first interval.", dm.CuePlaceholder)
	assert.True(t, dm.StartEnabled)
	assert.Equal(t, 0, dm.ActiveIndex)
}

func TestProjectHIIT_Work(t *testing.T) {
	h, src, _ := newTestHIIT(hiitMoves(2)...)
	require.NoError(t, h.Start(HIITSettings{Work: 20 * time.Second, Rest: 10 * time.Second, Rounds: 3}))

	dm := ProjectHIIT(h.State(), src.Advance(5500*time.Millisecond))

	assert.Equal(t, "WORK", dm.PhaseLabel)
	assert.Equal(t, 15, dm.SecondsLeft, "14.5s left rounds up")
	assert.InDelta(t, 27.5, dm.ProgressPercent, 1e-9)
	assert.Equal(t, "Move 0", dm.CurrentLabel)
	assert.Equal(t, []string{"cue 0"}, dm.UpcomingCues)
	assert.Equal(t, "1/3", dm.ProgressLabel)
	assert.Equal(t, 0, dm.ActiveIndex)
}

func TestProjectHIIT_RestPreviewsNextMove(t *testing.T) {
	h, src, _ := newTestHIIT(hiitMoves(2)...)
	require.NoError(t, h.Start(HIITSettings{Work: 20 * time.Second, Rest: 10 * time.Second, Rounds: 3}))
	require.True(t, h.Advance(src.Advance(20*time.Second)))

	dm := ProjectHIIT(h.State(), src.Advance(time.Second))

	assert.Equal(t, "REST", dm.PhaseLabel)
	assert.Equal(t, 9, dm.SecondsLeft)
	assert.Equal(t, "Rest · Upcoming: Move 1", dm.CurrentLabel)
	assert.Equal(t, []string{"cue 1"}, dm.UpcomingCues)
	assert.Equal(t, "Preview cues for the next interval.", dm.CuePlaceholder)
	assert.Equal(t, 1, dm.ActiveIndex)
}

func TestProjectHIIT_Done(t *testing.T) {
	h, src, _ := newTestHIIT(hiitMoves(1)...)
	require.NoError(t, h.Start(HIITSettings{Work: 5 * time.Second, Rest: 5 * time.Second, Rounds: 1}))
	require.True(t, h.Advance(src.Advance(5*time.Second)))
	require.True(t, h.Advance(src.Advance(5*time.Second)))

	dm := ProjectHIIT(h.State(), src.Now())

	assert.Equal(t, "DONE", dm.PhaseLabel)
	assert.Equal(t, 0, dm.SecondsLeft)
	assert.Equal(t, 100.0, dm.ProgressPercent)
	assert.Equal(t, "Workout complete!", dm.CurrentLabel)
	assert.Equal(t, "Nice work! Session complete.", dm.StatusMessage)
}

func TestProjectHIIT_IsPure(t *testing.T) {
	h, src, _ := newTestHIIT(hiitMoves(3)...)
	require.NoError(t, h.Start(DefaultHIITSettings()))
	state := h.State()
	now := src.Advance(3 * time.Second)

	first := ProjectHIIT(state, now)
	second := ProjectHIIT(state, now)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first, second)

	first.UpcomingCues[0] = "mutated"
	assert.Equal(t, "cue 0", h.Plan()[0].Cues[0], "display models do not alias the plan")
}

func TestProjectStrength_Labels(t *testing.T) {
	s, src, _ := newTestStrength(strengthMove("a", 3, 12, 30), strengthMove("b", 1, 5, 0))

	idle := ProjectStrength(s.State(), src.Now())
	assert.Equal(t, "IDLE", idle.PhaseLabel)
	assert.Equal(t, "Press start to begin.", idle.RestLabel)
	assert.Equal(t, "Press start when ready.", idle.StatusMessage)
	assert.Equal(t, "0/3", idle.ProgressLabel)
	assert.Equal(t, "12", idle.TargetReps)
	assert.Equal(t, "Lift a", idle.CurrentLabel)
	assert.False(t, idle.ActionEnabled)
	assert.True(t, idle.StartEnabled)

	require.NoError(t, s.Start(time.Minute))
	set := ProjectStrength(s.State(), src.Now())
	assert.Equal(t, "SET", set.PhaseLabel)
	assert.Equal(t, "Ready for next set.", set.RestLabel)
	assert.Equal(t, "1/3", set.ProgressLabel)
	assert.True(t, set.ActionEnabled)
	assert.Equal(t, 0, set.ActiveIndex)

	require.True(t, s.CompleteSet())
	rest := ProjectStrength(s.State(), src.Advance(10*time.Second))
	assert.Equal(t, "REST", rest.PhaseLabel)
	assert.Equal(t, "Rest between sets…", rest.RestLabel)
	assert.Equal(t, 20, rest.SecondsLeft)
	assert.InDelta(t, 100.0/3, rest.ProgressPercent, 1e-9)
	assert.False(t, rest.ActionEnabled)

	require.True(t, s.Advance(src.Advance(20*time.Second)))
	after := ProjectStrength(s.State(), src.Now())
	assert.Equal(t, "Rest complete.", after.RestLabel)
	assert.Equal(t, "2/3", after.ProgressLabel)

	require.True(t, s.CompleteSet())
	s.Advance(src.Advance(30 * time.Second))
	require.True(t, s.CompleteSet())
	transition := ProjectStrength(s.State(), src.Now())
	assert.Equal(t, "TRANSITION", transition.PhaseLabel)
	assert.Equal(t, "Transition rest…", transition.RestLabel)
	assert.Equal(t, 60, transition.SecondsLeft)

	s.Advance(src.Advance(time.Minute))
	require.True(t, s.CompleteSet())
	finished := ProjectStrength(s.State(), src.Now())
	assert.Equal(t, "FINISHED", finished.PhaseLabel)
	assert.Equal(t, "Workout complete.", finished.RestLabel)
	assert.Equal(t, "All done!", finished.StatusMessage)
	assert.Equal(t, 100.0, finished.ProgressPercent)
}

func TestProjectStrength_EmptyPlan(t *testing.T) {
	s, _, _ := newTestStrength()
	dm := ProjectStrength(s.State(), epoch)

	assert.Equal(t, "Add movements to build a plan.", dm.StatusMessage)
	assert.Equal(t, "—", dm.CurrentLabel)
	assert.False(t, dm.StartEnabled)
}

func TestProgressPercent_Clamped(t *testing.T) {
	assert.Equal(t, 0.0, progressPercent(0, 0))
	assert.Equal(t, 0.0, progressPercent(10*time.Second, 20*time.Second))
	assert.Equal(t, 100.0, progressPercent(10*time.Second, -time.Second))
	assert.Equal(t, 50.0, progressPercent(10*time.Second, 5*time.Second))
}

func TestCeilSeconds(t *testing.T) {
	assert.Equal(t, 0, ceilSeconds(0))
	assert.Equal(t, 0, ceilSeconds(-time.Second))
	assert.Equal(t, 1, ceilSeconds(time.Millisecond))
	assert.Equal(t, 20, ceilSeconds(20*time.Second))
}

func TestProjectHIIT_ProgressUsesArmedDuration(t *testing.T) {
	h, src, _ := newTestHIIT(hiitMoves(1)...)
	require.NoError(t, h.Start(HIITSettings{Work: 20 * time.Second, Rest: 10 * time.Second, Rounds: 2}))
	state := h.State()
	state.Settings.Work = 60 * time.Second

	dm := ProjectHIIT(state, src.Advance(10*time.Second))

	assert.Equal(t, 20*time.Second, state.Clock.Duration)
	assert.InDelta(t, 50.0, dm.ProgressPercent, 1e-9)
	assert.Equal(t, 10, dm.SecondsLeft)
}
