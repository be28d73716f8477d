package trainer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lowaak/zbf-timer/internal/clock"
	"github.com/lowaak/zbf-timer/internal/go_func_utils"
)

// workoutCommand represents commands sent to the workout goroutine
type workoutCommand int

const (
	cmdResumeTicking workoutCommand = iota
	cmdStopTicking
)

const (
	DefaultTickInterval = 50 * time.Millisecond
	persistTimeout      = 2 * time.Second
)

// RenderSink receives a display model whenever observable state changes
type RenderSink interface {
	Present(DisplayModel)
}

// NewWorkoutManagerArg groups the WorkoutManager dependencies
type NewWorkoutManagerArg struct {
	Sink         RenderSink
	Persistence  *PlanPersistence // optional; plan edits are not saved without it
	TimeSource   clock.TimeSource
	Cues         CueSink
	Logger       *log.Logger
	TickInterval time.Duration
	// Manual disables the ticker goroutine; the owner calls Tick itself
	Manual bool
}

// WorkoutManager owns both controllers and drives whichever one is live.
// Only one workout runs at a time.
type WorkoutManager struct {
	sink        RenderSink
	persistence *PlanPersistence
	source      clock.TimeSource
	logger      *log.Logger
	interval    time.Duration

	// protected by mu
	mu           sync.Mutex
	hiit         *HIITController
	strength     *StrengthController
	editCursor   EditCursor
	active       WorkoutKind
	sessionID    string
	lastHIIT     DisplayModel
	lastStrength DisplayModel
	published    bool

	// Goroutine management
	manual       bool
	cmdChan      chan workoutCommand
	doneChan     chan struct{} // Closed to signal shutdown
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewWorkoutManager creates a WorkoutManager and starts its tick goroutine unless Manual is set
func NewWorkoutManager(arg NewWorkoutManagerArg) *WorkoutManager {
	if arg.Sink == nil {
		panic("WorkoutManager: sink cannot be nil")
	}
	if arg.Logger == nil {
		panic("WorkoutManager: logger cannot be nil")
	}
	if arg.TimeSource == nil {
		arg.TimeSource = clock.SystemTimeSource{}
	}
	if arg.TickInterval <= 0 {
		arg.TickInterval = DefaultTickInterval
	}

	wm := &WorkoutManager{
		sink:        arg.Sink,
		persistence: arg.Persistence,
		source:      arg.TimeSource,
		logger:      arg.Logger,
		interval:    arg.TickInterval,
		hiit:        NewHIITController(clock.NewSessionClock(arg.TimeSource), arg.Cues, arg.Logger),
		strength:    NewStrengthController(clock.NewSessionClock(arg.TimeSource), arg.Cues, arg.Logger),
		editCursor:  NewEditCursor(),
		manual:      arg.Manual,
		cmdChan:     make(chan workoutCommand, 1),
		doneChan:    make(chan struct{}),
	}

	if !wm.manual {
		wm.wg.Add(1)
		go_func_utils.SafeGo(arg.Logger, func() { wm.runWorkoutLoop() })
	}

	return wm
}

// LoadPlans replaces both plans, typically with what PlanPersistence loaded
func (wm *WorkoutManager) LoadPlans(plans SavedPlans) {
	wm.mu.Lock()
	wm.hiit.SetPlan(plans.HIIT.Movements)
	wm.hiit.SetSettings(plans.HIIT.Settings())
	wm.strength.SetPlan(plans.Strength.Movements)
	wm.strength.SetTransitionRest(time.Duration(plans.Strength.TransitionRest) * time.Second)
	wm.editCursor.Clear()
	wm.active = ""
	models := wm.withPlans(wm.projectAll(true))
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Plans loaded (%d HIIT, %d strength)",
		len(plans.HIIT.Movements), len(plans.Strength.Movements))
	wm.present(models)
	wm.sendCommand(cmdStopTicking)
}

// --- Sessions ---

// StartHIIT starts a HIIT session with the current settings, resetting any strength session
func (wm *WorkoutManager) StartHIIT() error {
	wm.mu.Lock()
	settings := wm.hiit.PendingSettings()
	if err := wm.hiit.Start(settings); err != nil {
		wm.mu.Unlock()
		wm.logger.Printf("WorkoutManager: Cannot start HIIT: %v", err)
		return err
	}
	if wm.strength.Running() {
		wm.strength.Reset()
	}
	wm.active = WorkoutKindHIIT
	wm.sessionID = uuid.NewString()
	id := wm.sessionID
	models := wm.projectAll(false)
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: HIIT session %s started (%v work, %v rest, %d rounds)",
		id, settings.Work, settings.Rest, settings.Rounds)
	wm.present(models)
	wm.sendCommand(cmdResumeTicking)
	return nil
}

// StartStrength starts a strength session, resetting any HIIT session
func (wm *WorkoutManager) StartStrength() error {
	wm.mu.Lock()
	if err := wm.strength.Start(wm.strength.TransitionRest()); err != nil {
		wm.mu.Unlock()
		wm.logger.Printf("WorkoutManager: Cannot start strength: %v", err)
		return err
	}
	if wm.hiit.Running() {
		wm.hiit.Reset()
	}
	wm.active = WorkoutKindStrength
	wm.sessionID = uuid.NewString()
	id := wm.sessionID
	models := wm.projectAll(false)
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Strength session %s started", id)
	wm.present(models)
	wm.sendCommand(cmdResumeTicking)
	return nil
}

// CompleteSet forwards the complete-set action. Returns false when it was a no-op.
func (wm *WorkoutManager) CompleteSet() bool {
	wm.mu.Lock()
	changed := wm.strength.CompleteSet()
	if !changed {
		status := wm.strength.Status()
		wm.mu.Unlock()
		wm.logger.Printf("WorkoutManager: Complete set ignored (status %s)", status)
		return false
	}
	state := wm.strength.State()
	if state.Status == StrengthStatusFinished {
		wm.logger.Printf("WorkoutManager: Strength session %s finished", wm.sessionID)
		wm.active = ""
	}
	models := wm.projectAll(false)
	wm.mu.Unlock()

	wm.present(models)
	return true
}

// ResetHIIT abandons a HIIT session
func (wm *WorkoutManager) ResetHIIT() {
	wm.mu.Lock()
	wm.hiit.Reset()
	if wm.active == WorkoutKindHIIT {
		wm.active = ""
	}
	models := wm.projectAll(false)
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: HIIT reset")
	wm.present(models)
}

// ResetStrength abandons a strength session
func (wm *WorkoutManager) ResetStrength() {
	wm.mu.Lock()
	wm.strength.Reset()
	if wm.active == WorkoutKindStrength {
		wm.active = ""
	}
	models := wm.projectAll(false)
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Strength reset")
	wm.present(models)
}

// Tick advances the live controller to now and publishes any change.
// Returns true when a phase transition happened.
func (wm *WorkoutManager) Tick(now time.Time) bool {
	wm.mu.Lock()
	var transitioned bool
	switch wm.active {
	case WorkoutKindHIIT:
		before := wm.hiit.Phase()
		transitioned = wm.hiit.Advance(now)
		if transitioned {
			wm.logger.Printf("WorkoutManager: HIIT %s -> %s (round %d)", before, wm.hiit.Phase(), wm.hiit.State().CurrentRound)
		}
		if !wm.hiit.Running() {
			wm.logger.Printf("WorkoutManager: HIIT session %s complete", wm.sessionID)
			wm.active = ""
		}
	case WorkoutKindStrength:
		transitioned = wm.strength.Advance(now)
		if transitioned {
			state := wm.strength.State()
			wm.logger.Printf("WorkoutManager: Rest complete, movement %d set %d", state.MovementIndex+1, state.SetNumber)
		}
	}
	stillActive := wm.active != ""
	models := wm.projectAllAt(now, false)
	wm.mu.Unlock()

	wm.present(models)
	if !stillActive {
		wm.sendCommand(cmdStopTicking)
	}
	return transitioned
}

// Active returns the kind of the session in progress, or "" when none
func (wm *WorkoutManager) Active() WorkoutKind {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.active
}

func (wm *WorkoutManager) HIITState() HIITState {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.hiit.State()
}

func (wm *WorkoutManager) StrengthState() StrengthState {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.strength.State()
}

// --- HIIT plan ---

// SetHIITSettings sanitizes and stores the session settings used by the next start
func (wm *WorkoutManager) SetHIITSettings(workSeconds, restSeconds, rounds int) HIITSettings {
	settings := SanitizeHIITSettings(workSeconds, restSeconds, rounds)
	wm.mu.Lock()
	wm.hiit.SetSettings(settings)
	models := wm.withPlans(wm.projectAll(false))
	doc := wm.hiitDoc()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: HIIT settings %v/%v x %d", settings.Work, settings.Rest, settings.Rounds)
	wm.present(models)
	wm.saveHIIT(doc)
	return settings
}

func (wm *WorkoutManager) AddHIITMovement(m HIITMovement) error {
	return wm.editHIIT("add "+m.Name, func() error { return wm.hiit.AddMovement(m) })
}

func (wm *WorkoutManager) RemoveHIITMovement(index int) error {
	return wm.editHIIT("remove", func() error { return wm.hiit.RemoveMovement(index) })
}

func (wm *WorkoutManager) editHIIT(what string, edit func() error) error {
	wm.mu.Lock()
	if err := edit(); err != nil {
		wm.mu.Unlock()
		wm.logger.Printf("WorkoutManager: HIIT plan %s failed: %v", what, err)
		return err
	}
	if !wm.hiit.Running() && wm.active == WorkoutKindHIIT {
		wm.active = ""
	}
	models := wm.withPlans(wm.projectAll(false))
	doc := wm.hiitDoc()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: HIIT plan %s", what)
	wm.present(models)
	wm.saveHIIT(doc)
	return nil
}

// hiitDoc builds the persisted HIIT section. MUST be called with mu held.
func (wm *WorkoutManager) hiitDoc() HIITPlan {
	settings := wm.hiit.PendingSettings()
	return HIITPlan{
		Movements:   wm.hiit.Plan(),
		WorkSeconds: int(settings.Work / time.Second),
		RestSeconds: int(settings.Rest / time.Second),
		Rounds:      settings.Rounds,
	}
}

// --- Strength plan ---

func (wm *WorkoutManager) AddStrengthMovement(m StrengthMovement) error {
	return wm.editStrength("add "+m.Name, func() error { return wm.strength.AddMovement(m) })
}

// SaveStrengthMovement updates the movement under the edit cursor, or appends when nothing is selected
func (wm *WorkoutManager) SaveStrengthMovement(m StrengthMovement) error {
	return wm.editStrength("save "+m.Name, func() error {
		if index, ok := wm.editCursor.Index(); ok {
			if err := wm.strength.UpdateMovement(index, m); err != nil {
				return err
			}
		} else if err := wm.strength.AddMovement(m); err != nil {
			return err
		}
		wm.editCursor.Clear()
		return nil
	})
}

func (wm *WorkoutManager) RemoveStrengthMovement(index int) error {
	return wm.editStrength("remove", func() error {
		if err := wm.strength.RemoveMovement(index); err != nil {
			return err
		}
		wm.editCursor.AfterRemoval(index)
		return nil
	})
}

// MoveStrengthMovement moves a movement one slot up (delta -1) or down (delta +1)
func (wm *WorkoutManager) MoveStrengthMovement(index, delta int) error {
	return wm.editStrength("move", func() error {
		target := index + delta
		if err := wm.strength.MoveMovement(index, target); err != nil {
			return err
		}
		wm.editCursor.AfterMove(index, target, len(wm.strength.Plan()))
		return nil
	})
}

// SetTransitionRest changes the rest between movements without resetting a session
func (wm *WorkoutManager) SetTransitionRest(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	wm.mu.Lock()
	wm.strength.SetTransitionRest(time.Duration(seconds) * time.Second)
	models := wm.withPlans(projectedModels{})
	doc := wm.strengthDoc()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Transition rest %ds", seconds)
	wm.present(models)
	wm.saveStrength(doc)
}

// SelectStrengthEdit puts the builder into edit mode for the movement at index
func (wm *WorkoutManager) SelectStrengthEdit(index int) (StrengthMovement, bool) {
	wm.mu.Lock()
	plan := wm.strength.Plan()
	if index < 0 || index >= len(plan) {
		wm.mu.Unlock()
		return StrengthMovement{}, false
	}
	wm.editCursor.Select(index)
	models := wm.withPlans(projectedModels{})
	wm.mu.Unlock()

	wm.present(models)
	return plan[index], true
}

func (wm *WorkoutManager) ClearStrengthEdit() {
	wm.mu.Lock()
	wm.editCursor.Clear()
	models := wm.withPlans(projectedModels{})
	wm.mu.Unlock()

	wm.present(models)
}

// StrengthEditIndex returns the movement being edited, if any
func (wm *WorkoutManager) StrengthEditIndex() (int, bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.editCursor.Index()
}

func (wm *WorkoutManager) editStrength(what string, edit func() error) error {
	wm.mu.Lock()
	if err := edit(); err != nil {
		wm.mu.Unlock()
		wm.logger.Printf("WorkoutManager: Strength plan %s failed: %v", what, err)
		return err
	}
	// every structural edit resets the strength run
	if wm.active == WorkoutKindStrength {
		wm.logger.Printf("WorkoutManager: Strength session %s reset by plan edit", wm.sessionID)
		wm.active = ""
	}
	models := wm.withPlans(wm.projectAll(false))
	doc := wm.strengthDoc()
	wm.mu.Unlock()

	wm.logger.Printf("WorkoutManager: Strength plan %s", what)
	wm.present(models)
	wm.saveStrength(doc)
	return nil
}

// strengthDoc builds the persisted strength section. MUST be called with mu held.
func (wm *WorkoutManager) strengthDoc() StrengthPlan {
	return StrengthPlan{
		Movements:      wm.strength.Plan(),
		TransitionRest: int(wm.strength.TransitionRest() / time.Second),
	}
}

// Shutdown stops the workout manager and cleans up resources
// Safe to call multiple times - only the first call has effect
func (wm *WorkoutManager) Shutdown() {
	wm.shutdownOnce.Do(func() {
		wm.logger.Printf("WorkoutManager: Shutting down")
		close(wm.doneChan)
		wm.wg.Wait()
		wm.logger.Printf("WorkoutManager: Shutdown complete")
	})
}

// --- Private Methods ---

// projectedModels carries display models to publish after the lock is released
type projectedModels struct {
	hiit     *DisplayModel
	strength *DisplayModel
	plans    *PlanSnapshot
}

// projectAll projects both runners at the source's current instant. MUST be called with mu held.
func (wm *WorkoutManager) projectAll(force bool) projectedModels {
	return wm.projectAllAt(wm.source.Now(), force)
}

// projectAllAt returns only the models that differ from the last published ones.
// MUST be called with mu held.
func (wm *WorkoutManager) projectAllAt(now time.Time, force bool) projectedModels {
	var out projectedModels
	hiit := ProjectHIIT(wm.hiit.State(), now)
	strength := ProjectStrength(wm.strength.State(), now)

	if force || !wm.published || !hiit.Equal(wm.lastHIIT) {
		wm.lastHIIT = hiit
		out.hiit = &hiit
	}
	if force || !wm.published || !strength.Equal(wm.lastStrength) {
		wm.lastStrength = strength
		out.strength = &strength
	}
	wm.published = true
	return out
}

// present publishes models. No lock needed - only makes external calls.
func (wm *WorkoutManager) present(models projectedModels) {
	if models.hiit != nil {
		wm.sink.Present(*models.hiit)
	}
	if models.strength != nil {
		wm.sink.Present(*models.strength)
	}
	if models.plans != nil {
		if planSink, ok := wm.sink.(PlanSink); ok {
			planSink.PresentPlans(*models.plans)
		}
	}
}

// withPlans attaches the current plan snapshot. MUST be called with mu held.
func (wm *WorkoutManager) withPlans(models projectedModels) projectedModels {
	editIndex, ok := wm.editCursor.Index()
	if !ok {
		editIndex = -1
	}
	models.plans = &PlanSnapshot{
		HIIT:                  wm.hiit.Plan(),
		HIITSettings:          wm.hiit.PendingSettings(),
		Strength:              wm.strength.Plan(),
		TransitionRestSeconds: int(wm.strength.TransitionRest() / time.Second),
		EditIndex:             editIndex,
	}
	return models
}

func (wm *WorkoutManager) saveHIIT(doc HIITPlan) {
	if wm.persistence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := wm.persistence.SaveHIIT(ctx, doc); err != nil {
		wm.logger.Printf("WorkoutManager: Failed to save HIIT plan: %v", err)
	}
}

func (wm *WorkoutManager) saveStrength(doc StrengthPlan) {
	if wm.persistence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := wm.persistence.SaveStrength(ctx, doc); err != nil {
		wm.logger.Printf("WorkoutManager: Failed to save strength plan: %v", err)
	}
}

// sendCommand queues cmd for the loop, replacing a pending command
func (wm *WorkoutManager) sendCommand(cmd workoutCommand) {
	if wm.manual {
		return
	}
	for {
		select {
		case wm.cmdChan <- cmd:
			return
		case <-wm.doneChan:
			return
		default:
			select {
			case <-wm.cmdChan:
			default:
			}
		}
	}
}

// runWorkoutLoop is the main goroutine that drives the live controller.
func (wm *WorkoutManager) runWorkoutLoop() {
	defer wm.wg.Done()

	ticker := time.NewTicker(wm.interval)
	ticker.Stop() // Start stopped, will be started when a session starts

	for {
		select {
		case <-wm.doneChan:
			ticker.Stop()
			wm.logger.Printf("WorkoutManager: Goroutine exiting")
			return

		case cmd := <-wm.cmdChan:
			switch cmd {
			case cmdResumeTicking:
				ticker.Reset(wm.interval)
			case cmdStopTicking:
				ticker.Stop()
			}

		case <-ticker.C:
			wm.Tick(wm.source.Now())
		}
	}
}
