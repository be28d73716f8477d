package trainer

import (
	"fmt"
	"log"
	"time"

	"github.com/lowaak/zbf-timer/internal/clock"
)

// StrengthState is a snapshot of a strength session
type StrengthState struct {
	Status         StrengthStatus
	MovementIndex  int
	SetNumber      int
	Resting        bool
	RestContext    RestContext
	TransitionRest time.Duration
	Plan           []StrengthMovement
	Clock          clock.State
}

// CurrentMovement returns the movement at MovementIndex, or the first one while idle
func (s StrengthState) CurrentMovement() (StrengthMovement, bool) {
	if len(s.Plan) == 0 {
		return StrengthMovement{}, false
	}
	if s.MovementIndex < 0 || s.MovementIndex >= len(s.Plan) {
		return s.Plan[0], true
	}
	return s.Plan[s.MovementIndex], true
}

// StrengthController walks a linear plan set by set with rests in between.
// It is not safe for concurrent use; WorkoutManager serializes access.
type StrengthController struct {
	clock  *clock.SessionClock
	cues   cueEmitter
	logger *log.Logger

	plan           []StrengthMovement
	transitionRest time.Duration

	status        StrengthStatus
	movementIndex int
	setNumber     int
	resting       bool
	restContext   RestContext
}

// NewStrengthController creates an idle controller with an empty plan
func NewStrengthController(sessionClock *clock.SessionClock, cues CueSink, logger *log.Logger) *StrengthController {
	if sessionClock == nil {
		panic("StrengthController: clock cannot be nil")
	}
	if logger == nil {
		panic("StrengthController: logger cannot be nil")
	}
	s := &StrengthController{
		clock:          sessionClock,
		cues:           newCueEmitter(cues, logger),
		logger:         logger,
		transitionRest: DefaultTransitionRestSeconds * time.Second,
	}
	s.Reset()
	return s
}

// Start begins a session from the first set of the first movement.
// An empty plan leaves the controller untouched and returns ErrNotReady.
func (s *StrengthController) Start(transitionRest time.Duration) error {
	if len(s.plan) == 0 {
		return ErrNotReady
	}
	s.SetTransitionRest(transitionRest)
	s.Reset()
	s.status = StrengthStatusActive
	return nil
}

// CompleteSet records the current set as done. Only valid while active and not resting;
// any other call is a no-op returning false.
func (s *StrengthController) CompleteSet() bool {
	if s.status != StrengthStatusActive || s.resting {
		return false
	}
	if s.movementIndex < 0 || s.movementIndex >= len(s.plan) {
		return false
	}

	m := s.plan[s.movementIndex]
	switch {
	case s.setNumber < m.Sets:
		s.enterRest(m.RestDuration(), RestContextBetweenSets)
	case s.movementIndex < len(s.plan)-1:
		s.enterRest(s.transitionRest, RestContextAfterExercise)
	default:
		s.finish()
	}
	return true
}

// Advance completes the rest when its countdown has expired. Returns true when the state changed.
func (s *StrengthController) Advance(now time.Time) bool {
	if !s.resting || !s.clock.IsExpired(now) {
		return false
	}
	s.completeRest(s.restContext)
	return true
}

// Reset returns to idle, keeping the plan
func (s *StrengthController) Reset() {
	s.clock.Stop()
	s.status = StrengthStatusIdle
	s.movementIndex = 0
	s.setNumber = 1
	s.resting = false
	s.restContext = RestContextNone
}

// enterRest arms the countdown, or completes the rest immediately when d is zero
func (s *StrengthController) enterRest(d time.Duration, context RestContext) {
	if d <= 0 {
		s.completeRest(context)
		return
	}
	s.resting = true
	s.restContext = context
	s.clock.Arm(d)
}

func (s *StrengthController) completeRest(context RestContext) {
	s.resting = false
	s.restContext = RestContextNone
	s.clock.Stop()
	s.cues.emit(ToneRestComplete)

	switch context {
	case RestContextBetweenSets:
		if s.setNumber < s.plan[s.movementIndex].Sets {
			s.setNumber++
		}
	case RestContextAfterExercise:
		s.movementIndex++
		s.setNumber = 1
		if s.movementIndex >= len(s.plan) {
			panic(fmt.Sprintf("StrengthController: transition rest past the last movement (index %d, plan %d)",
				s.movementIndex, len(s.plan)))
		}
	}
}

func (s *StrengthController) finish() {
	s.status = StrengthStatusFinished
	s.resting = false
	s.restContext = RestContextNone
	s.clock.Stop()
	s.cues.emit(ToneSessionComplete)
}

// SetTransitionRest changes the rest inserted between movements.
// It applies to later transitions; an in-progress rest keeps its countdown.
func (s *StrengthController) SetTransitionRest(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.transitionRest = d
}

func (s *StrengthController) TransitionRest() time.Duration {
	return s.transitionRest
}

// Plan edits below reset any session in progress so indices can never go stale.

// SetPlan replaces the plan
func (s *StrengthController) SetPlan(plan []StrengthMovement) {
	s.plan = append([]StrengthMovement(nil), plan...)
	s.Reset()
}

// AddMovement appends a sanitized copy of m
func (s *StrengthController) AddMovement(m StrengthMovement) error {
	clean, err := SanitizeStrengthMovement(m)
	if err != nil {
		return err
	}
	s.plan = append(s.plan, clean)
	s.Reset()
	return nil
}

// UpdateMovement replaces the movement at index
func (s *StrengthController) UpdateMovement(index int, m StrengthMovement) error {
	if index < 0 || index >= len(s.plan) {
		return ErrIndexOutOfRange
	}
	clean, err := SanitizeStrengthMovement(m)
	if err != nil {
		return err
	}
	s.plan[index] = clean
	s.Reset()
	return nil
}

// RemoveMovement deletes the movement at index
func (s *StrengthController) RemoveMovement(index int) error {
	if index < 0 || index >= len(s.plan) {
		return ErrIndexOutOfRange
	}
	s.plan = append(s.plan[:index], s.plan[index+1:]...)
	s.Reset()
	return nil
}

// MoveMovement relocates the movement at from to position to
func (s *StrengthController) MoveMovement(from, to int) error {
	if from < 0 || from >= len(s.plan) || to < 0 || to >= len(s.plan) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	m := s.plan[from]
	s.plan = append(s.plan[:from], s.plan[from+1:]...)
	s.plan = append(s.plan[:to], append([]StrengthMovement{m}, s.plan[to:]...)...)
	s.Reset()
	return nil
}

// Plan returns a copy of the current plan
func (s *StrengthController) Plan() []StrengthMovement {
	return append([]StrengthMovement(nil), s.plan...)
}

func (s *StrengthController) Status() StrengthStatus {
	return s.status
}

// Running reports whether a session is in progress
func (s *StrengthController) Running() bool {
	return s.status == StrengthStatusActive
}

// State returns a snapshot for projection
func (s *StrengthController) State() StrengthState {
	return StrengthState{
		Status:         s.status,
		MovementIndex:  s.movementIndex,
		SetNumber:      s.setNumber,
		Resting:        s.resting,
		RestContext:    s.restContext,
		TransitionRest: s.transitionRest,
		Plan:           s.Plan(),
		Clock:          s.clock.Snapshot(),
	}
}
