package trainer

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// WorkoutKind names which runner a DisplayModel describes
type WorkoutKind string

const (
	WorkoutKindHIIT     WorkoutKind = "hiit"
	WorkoutKindStrength WorkoutKind = "strength"
)

// DisplayModel is everything a view needs to draw one runner
type DisplayModel struct {
	Kind            WorkoutKind
	PhaseLabel      string
	SecondsLeft     int
	ProgressPercent float64
	CurrentLabel    string
	UpcomingCues    []string
	CuePlaceholder  string // shown when UpcomingCues is empty
	ActionEnabled   bool   // HIIT: start, Strength: complete set
	StartEnabled    bool
	ProgressLabel   string // "round/rounds" or "set/sets"
	TargetReps      string
	StatusMessage   string
	RestLabel       string
	ActiveIndex     int // plan row to highlight, -1 for none
}

// Equal compares two models field by field
func (d DisplayModel) Equal(other DisplayModel) bool {
	return d.Kind == other.Kind &&
		d.PhaseLabel == other.PhaseLabel &&
		d.SecondsLeft == other.SecondsLeft &&
		d.ProgressPercent == other.ProgressPercent &&
		d.CurrentLabel == other.CurrentLabel &&
		slices.Equal(d.UpcomingCues, other.UpcomingCues) &&
		d.CuePlaceholder == other.CuePlaceholder &&
		d.ActionEnabled == other.ActionEnabled &&
		d.StartEnabled == other.StartEnabled &&
		d.ProgressLabel == other.ProgressLabel &&
		d.TargetReps == other.TargetReps &&
		d.StatusMessage == other.StatusMessage &&
		d.RestLabel == other.RestLabel &&
		d.ActiveIndex == other.ActiveIndex
}

const placeholderDash = "—"

// ProjectHIIT maps a HIIT snapshot to a display model. Pure: same inputs, same output.
func ProjectHIIT(state HIITState, now time.Time) DisplayModel {
	planLen := len(state.Plan)

	dm := DisplayModel{
		Kind:          WorkoutKindHIIT,
		PhaseLabel:    strings.ToUpper(string(state.Phase)),
		ProgressLabel: fmt.Sprintf("%d/%d", state.CurrentRound, state.Settings.Rounds),
		ActionEnabled: planLen > 0,
		StartEnabled:  planLen > 0,
		ActiveIndex:   -1,
	}

	switch state.Phase {
	case HIITPhaseWork, HIITPhaseRest:
		remaining := state.Clock.Remaining(now)
		dm.SecondsLeft = ceilSeconds(remaining)
		dm.ProgressPercent = progressPercent(state.Clock.Duration, remaining)
	case HIITPhaseDone:
		dm.SecondsLeft = 0
		dm.ProgressPercent = 100
	default:
		dm.SecondsLeft = ceilSeconds(state.Settings.Work)
	}

	if planLen == 0 {
		dm.CurrentLabel = "Add HIIT moves to begin"
		dm.CuePlaceholder = "Add a HIIT move to see coaching cues."
		dm.StatusMessage = "Add at least one exercise before starting."
		return dm
	}

	next := state.NextIndex()
	switch state.Phase {
	case HIITPhaseWork:
		current, ok := state.CurrentMovement()
		dm.CurrentLabel = placeholderDash
		if ok {
			dm.CurrentLabel = current.Name
			dm.UpcomingCues = copyCues(current.Cues)
		}
		dm.CuePlaceholder = "No saved cues for this move yet."
		dm.ActiveIndex = state.ExerciseIndex
	case HIITPhaseRest:
		upcoming := state.Plan[next]
		dm.CurrentLabel = "Rest · Upcoming: " + upcoming.Name
		dm.UpcomingCues = copyCues(upcoming.Cues)
		if len(dm.UpcomingCues) > 0 {
			dm.CuePlaceholder = "Preview cues for the next interval."
		} else {
			dm.CuePlaceholder = "No saved cues for the upcoming move."
		}
		dm.ActiveIndex = next
	case HIITPhaseDone:
		dm.CurrentLabel = "Workout complete!"
		dm.CuePlaceholder = "Session complete — hydrate and recover!"
		dm.StatusMessage = "Nice work! Session complete."
	default:
		dm.CurrentLabel = "Ready"
		dm.UpcomingCues = copyCues(state.Plan[0].Cues)
		if len(dm.UpcomingCues) > 0 {
			dm.CuePlaceholder = "Preview cues for your first interval."
		} else {
			dm.CuePlaceholder = "No saved cues for this move yet."
		}
		dm.ActiveIndex = max(state.ExerciseIndex, 0)
	}
	return dm
}

// ProjectStrength maps a strength snapshot to a display model. Pure: same inputs, same output.
func ProjectStrength(state StrengthState, now time.Time) DisplayModel {
	dm := DisplayModel{
		Kind:          WorkoutKindStrength,
		CurrentLabel:  placeholderDash,
		ProgressLabel: placeholderDash,
		TargetReps:    placeholderDash,
		StartEnabled:  len(state.Plan) > 0,
		ActiveIndex:   -1,
	}

	switch {
	case state.Status == StrengthStatusIdle:
		dm.PhaseLabel = "IDLE"
		dm.RestLabel = "Press start to begin."
	case state.Status == StrengthStatusFinished:
		dm.PhaseLabel = "FINISHED"
		dm.RestLabel = "Workout complete."
		dm.ProgressPercent = 100
	case state.Resting && state.RestContext == RestContextAfterExercise:
		dm.PhaseLabel = "TRANSITION"
		dm.RestLabel = "Transition rest…"
	case state.Resting:
		dm.PhaseLabel = "REST"
		dm.RestLabel = "Rest between sets…"
	default:
		dm.PhaseLabel = "SET"
		if state.SetNumber > 1 || state.MovementIndex > 0 {
			dm.RestLabel = "Rest complete."
		} else {
			dm.RestLabel = "Ready for next set."
		}
	}

	if state.Resting {
		remaining := state.Clock.Remaining(now)
		dm.SecondsLeft = ceilSeconds(remaining)
		dm.ProgressPercent = progressPercent(state.Clock.Duration, remaining)
	}

	if len(state.Plan) == 0 {
		dm.StatusMessage = "Add movements to build a plan."
		return dm
	}

	if state.Status == StrengthStatusFinished {
		dm.StatusMessage = "All done!"
		return dm
	}

	movement, _ := state.CurrentMovement()
	dm.CurrentLabel = movement.Name
	dm.TargetReps = fmt.Sprintf("%d", movement.Reps)
	dm.UpcomingCues = copyCues(movement.Cues)
	dm.CuePlaceholder = "No saved cues for this move yet."

	if state.Status == StrengthStatusIdle {
		dm.ProgressLabel = fmt.Sprintf("0/%d", movement.Sets)
		dm.StatusMessage = "Press start when ready."
		return dm
	}

	dm.ProgressLabel = fmt.Sprintf("%d/%d", state.SetNumber, movement.Sets)
	dm.ActiveIndex = state.MovementIndex
	if state.Resting {
		dm.StatusMessage = dm.RestLabel
		return dm
	}
	dm.StatusMessage = "Complete the set when you finish your reps."
	dm.ActionEnabled = true
	return dm
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// progressPercent is 100*(total-remaining)/total clamped to [0,100]; zero totals report 0
func progressPercent(total, remaining time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	pct := 100 * float64(total-remaining) / float64(total)
	return math.Min(100, math.Max(0, pct))
}

func copyCues(cues []string) []string {
	if len(cues) == 0 {
		return nil
	}
	return append([]string(nil), cues...)
}
