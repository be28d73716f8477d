package trainer

import (
	"log"
	"time"

	"github.com/lowaak/zbf-timer/internal/clock"
)

// HIITState is a snapshot of a HIIT session
type HIITState struct {
	Phase         HIITPhase
	CurrentRound  int
	ExerciseIndex int // -1 while the plan is empty
	Settings      HIITSettings
	Plan          []HIITMovement
	Clock         clock.State
}

// CurrentMovement returns the movement at ExerciseIndex
func (s HIITState) CurrentMovement() (HIITMovement, bool) {
	if s.ExerciseIndex < 0 || s.ExerciseIndex >= len(s.Plan) {
		return HIITMovement{}, false
	}
	return s.Plan[s.ExerciseIndex], true
}

// NextIndex returns the circular successor of ExerciseIndex, or -1 for an empty plan
func (s HIITState) NextIndex() int {
	if len(s.Plan) == 0 {
		return -1
	}
	if s.ExerciseIndex < 0 {
		return 0
	}
	return (s.ExerciseIndex + 1) % len(s.Plan)
}

// HIITController cycles ready -> work -> rest -> ... -> done over a circular plan.
// It is not safe for concurrent use; WorkoutManager serializes access.
type HIITController struct {
	clock  *clock.SessionClock
	cues   cueEmitter
	logger *log.Logger

	plan          []HIITMovement
	settings      HIITSettings // the session's own copy, fixed from Start until Reset
	pending       HIITSettings // what the next Start uses
	phase         HIITPhase
	currentRound  int
	exerciseIndex int
}

// NewHIITController creates a controller in the ready phase with an empty plan
func NewHIITController(sessionClock *clock.SessionClock, cues CueSink, logger *log.Logger) *HIITController {
	if sessionClock == nil {
		panic("HIITController: clock cannot be nil")
	}
	if logger == nil {
		panic("HIITController: logger cannot be nil")
	}
	return &HIITController{
		clock:         sessionClock,
		cues:          newCueEmitter(cues, logger),
		logger:        logger,
		settings:      DefaultHIITSettings(),
		pending:       DefaultHIITSettings(),
		phase:         HIITPhaseReady,
		exerciseIndex: -1,
	}
}

// Start begins a session. An empty plan leaves the controller untouched and returns ErrNotReady.
func (h *HIITController) Start(settings HIITSettings) error {
	if len(h.plan) == 0 {
		return ErrNotReady
	}
	if settings.Rounds < 1 {
		settings.Rounds = 1
	}
	if settings.Work < 0 {
		settings.Work = 0
	}
	if settings.Rest < 0 {
		settings.Rest = 0
	}

	h.settings = settings
	h.pending = settings
	h.phase = HIITPhaseWork
	h.currentRound = 1
	h.exerciseIndex = 0
	h.clock.Arm(settings.Work)
	h.cues.emit(ToneRoundStart)
	return nil
}

// Advance performs at most one transition when the countdown has expired.
// Returns true when the state changed.
func (h *HIITController) Advance(now time.Time) bool {
	if h.phase != HIITPhaseWork && h.phase != HIITPhaseRest {
		return false
	}
	if !h.clock.IsExpired(now) {
		return false
	}

	switch h.phase {
	case HIITPhaseWork:
		h.phase = HIITPhaseRest
		h.clock.Arm(h.settings.Rest)
		h.cues.emit(ToneIntervalEnd)

	case HIITPhaseRest:
		if h.currentRound < h.settings.Rounds {
			h.currentRound++
			h.exerciseIndex = (h.exerciseIndex + 1) % len(h.plan)
			h.phase = HIITPhaseWork
			h.clock.Arm(h.settings.Work)
			h.cues.emit(ToneRoundStart)
		} else {
			h.phase = HIITPhaseDone
			h.clock.Stop()
			h.cues.emit(ToneSessionComplete)
		}
	}
	return true
}

// Reset returns to the ready phase keeping the plan. Pending settings take effect.
func (h *HIITController) Reset() {
	h.clock.Stop()
	h.settings = h.pending
	h.phase = HIITPhaseReady
	h.currentRound = 0
	if len(h.plan) == 0 {
		h.exerciseIndex = -1
	} else {
		h.exerciseIndex = 0
	}
}

// SetSettings stores the settings for the next session. A session in progress or done
// keeps the settings it started with until Reset.
func (h *HIITController) SetSettings(settings HIITSettings) {
	h.pending = settings
	if h.phase == HIITPhaseReady {
		h.settings = settings
	}
}

// PendingSettings returns the settings the next Start will use
func (h *HIITController) PendingSettings() HIITSettings {
	return h.pending
}

// SetPlan replaces the plan and resets the session
func (h *HIITController) SetPlan(plan []HIITMovement) {
	h.plan = append([]HIITMovement(nil), plan...)
	h.Reset()
}

// AddMovement appends a movement. Legal in every phase; a running session keeps its position.
func (h *HIITController) AddMovement(m HIITMovement) error {
	if m.ID == "" || m.Name == "" {
		return ErrInvalidMovement
	}
	h.plan = append(h.plan, m)
	if h.exerciseIndex < 0 {
		h.exerciseIndex = 0
	}
	return nil
}

// RemoveMovement deletes the movement at index and re-points exerciseIndex so it stays in range.
// Removing the last movement resets the session since nothing is left to run.
func (h *HIITController) RemoveMovement(index int) error {
	if index < 0 || index >= len(h.plan) {
		return ErrIndexOutOfRange
	}
	h.plan = append(h.plan[:index], h.plan[index+1:]...)

	if len(h.plan) == 0 {
		if h.phase == HIITPhaseWork || h.phase == HIITPhaseRest {
			h.logger.Printf("HIITController: Plan emptied during session, resetting")
		}
		h.Reset()
		return nil
	}

	switch {
	case index < h.exerciseIndex:
		h.exerciseIndex--
	case h.exerciseIndex >= len(h.plan):
		h.exerciseIndex = len(h.plan) - 1
	}
	return nil
}

// Plan returns a copy of the current plan
func (h *HIITController) Plan() []HIITMovement {
	return append([]HIITMovement(nil), h.plan...)
}

func (h *HIITController) Phase() HIITPhase {
	return h.phase
}

// Running reports whether a countdown is in progress
func (h *HIITController) Running() bool {
	return h.phase == HIITPhaseWork || h.phase == HIITPhaseRest
}

// State returns a snapshot for projection
func (h *HIITController) State() HIITState {
	return HIITState{
		Phase:         h.phase,
		CurrentRound:  h.currentRound,
		ExerciseIndex: h.exerciseIndex,
		Settings:      h.settings,
		Plan:          h.Plan(),
		Clock:         h.clock.Snapshot(),
	}
}
