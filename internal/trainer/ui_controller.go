package trainer

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

const settingsTimeout = 5 * time.Second

// UIController handles UI events and coordinates with the UIModel and WorkoutManager
type UIController struct {
	model          *UIModel
	workoutManager *WorkoutManager
	persistence    *PlanPersistence
	exportPath     string
	logger         *log.Logger
}

// NewUIControllerArg holds the arguments for creating a UIController
type NewUIControllerArg struct {
	Model          *UIModel
	WorkoutManager *WorkoutManager
	Persistence    *PlanPersistence // optional; settings actions are disabled without it
	ExportPath     string
	Logger         *log.Logger
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(arg NewUIControllerArg) *UIController {
	if arg.Model == nil {
		panic("UIController: model cannot be nil")
	}
	if arg.WorkoutManager == nil {
		panic("UIController: workoutManager cannot be nil")
	}
	if arg.Logger == nil {
		panic("UIController: logger cannot be nil")
	}
	if arg.ExportPath == "" {
		arg.ExportPath = DefaultExportFile
	}
	return &UIController{
		model:          arg.Model,
		workoutManager: arg.WorkoutManager,
		persistence:    arg.Persistence,
		exportPath:     arg.ExportPath,
		logger:         arg.Logger,
	}
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s (%s)", info.DisplayName, info.Route)
	}
	c.model.SetMode(mode)
}

// OnRoute navigates by route path; unknown routes land on Home
func (c *UIController) OnRoute(route string) {
	c.OnModeChange(GetUIModeByRoute(route))
}

// --- HIIT ---

// OnHIITSettingsChanged takes raw form text; unparseable values fall back to defaults
func (c *UIController) OnHIITSettingsChanged(work, rest, rounds string) HIITSettings {
	return c.workoutManager.SetHIITSettings(
		ClampPositiveInt(work, DefaultHIITWorkSeconds),
		ClampNonNegativeInt(rest, DefaultHIITRestSeconds),
		ClampPositiveInt(rounds, DefaultHIITRounds),
	)
}

// AddHIITExercise adds the HIIT catalog entry at catalogIndex
func (c *UIController) AddHIITExercise(catalogIndex int) {
	options := c.model.Catalog().ByType(ExerciseTypeHIIT)
	if catalogIndex < 0 || catalogIndex >= len(options) {
		c.logger.Printf("Invalid HIIT exercise index: %d", catalogIndex)
		return
	}
	if err := c.workoutManager.AddHIITMovement(options[catalogIndex].HIITMovement()); err != nil {
		c.logger.Printf("Add HIIT move failed: %v", err)
	}
}

// AddCustomHIITMovement adds a movement that is not in the catalog. Cues are separated by ';'.
func (c *UIController) AddCustomHIITMovement(name, cues string) {
	name = strings.TrimSpace(name)
	if name == "" {
		c.logger.Printf("Custom HIIT move needs a name")
		return
	}
	m := HIITMovement{ID: "custom-" + uuid.NewString(), Name: name}
	for _, cue := range strings.Split(cues, ";") {
		if cue = strings.TrimSpace(cue); cue != "" {
			m.Cues = append(m.Cues, cue)
		}
	}
	if err := c.workoutManager.AddHIITMovement(m); err != nil {
		c.logger.Printf("Add HIIT move failed: %v", err)
	}
}

func (c *UIController) RemoveHIITMovement(index int) {
	if err := c.workoutManager.RemoveHIITMovement(index); err != nil {
		c.logger.Printf("Remove HIIT move failed: %v", err)
	}
}

// StartHIIT starts a session, reporting "not ready" through the status line
func (c *UIController) StartHIIT() {
	err := c.workoutManager.StartHIIT()
	if errors.Is(err, ErrNotReady) {
		c.model.SetStatus("Add at least one exercise before starting.")
		return
	}
	c.model.SetStatus("")
}

func (c *UIController) ResetHIIT() {
	c.workoutManager.ResetHIIT()
}

// --- Strength ---

// SubmitStrengthForm saves the builder form. The movement under edit is replaced, otherwise one is appended.
func (c *UIController) SubmitStrengthForm(catalogIndex int, sets, reps, rest string) {
	options := c.model.Catalog().ByType(ExerciseTypeStrength)
	if catalogIndex < 0 || catalogIndex >= len(options) {
		c.logger.Printf("Invalid strength exercise index: %d", catalogIndex)
		return
	}
	m := options[catalogIndex].StrengthMovement(
		ClampPositiveInt(sets, DefaultFormSets),
		ClampPositiveInt(reps, DefaultFormReps),
		ClampNonNegativeInt(rest, DefaultFormRestSeconds),
	)
	if err := c.workoutManager.SaveStrengthMovement(m); err != nil {
		c.logger.Printf("Save strength movement failed: %v", err)
	}
}

// EditStrengthMovement loads a movement into the builder form
func (c *UIController) EditStrengthMovement(index int) (StrengthMovement, bool) {
	m, ok := c.workoutManager.SelectStrengthEdit(index)
	if !ok {
		c.logger.Printf("Invalid strength movement index: %d", index)
	}
	return m, ok
}

func (c *UIController) CancelStrengthEdit() {
	c.workoutManager.ClearStrengthEdit()
}

func (c *UIController) RemoveStrengthMovement(index int) {
	if err := c.workoutManager.RemoveStrengthMovement(index); err != nil {
		c.logger.Printf("Remove strength movement failed: %v", err)
	}
}

func (c *UIController) MoveStrengthMovementUp(index int) {
	if index <= 0 {
		return
	}
	if err := c.workoutManager.MoveStrengthMovement(index, -1); err != nil {
		c.logger.Printf("Move strength movement failed: %v", err)
	}
}

func (c *UIController) MoveStrengthMovementDown(index int) {
	if err := c.workoutManager.MoveStrengthMovement(index, 1); err != nil {
		c.logger.Printf("Move strength movement failed: %v", err)
	}
}

// OnTransitionRestChanged takes raw form text; invalid input keeps the current value
func (c *UIController) OnTransitionRestChanged(value string) {
	current := c.model.GetPlans().TransitionRestSeconds
	c.workoutManager.SetTransitionRest(ClampNonNegativeInt(value, current))
}

func (c *UIController) StartStrength() {
	if err := c.workoutManager.StartStrength(); errors.Is(err, ErrNotReady) {
		c.model.SetStatus("Add movements to build a plan.")
		return
	}
	c.model.SetStatus("")
}

// CompleteSet is ignored unless a set is in progress
func (c *UIController) CompleteSet() {
	c.workoutManager.CompleteSet()
}

func (c *UIController) ResetStrength() {
	c.workoutManager.ResetStrength()
}

// --- Settings ---

// ExportPath is the backup file used when no path is given
func (c *UIController) ExportPath() string {
	return c.exportPath
}

// ExportData writes a backup to path, or to the configured export path when empty
func (c *UIController) ExportData(path string) {
	if c.persistence == nil {
		c.logger.Printf("Export unavailable: no storage configured")
		return
	}
	if strings.TrimSpace(path) == "" {
		path = c.exportPath
	}
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	if err := c.persistence.Export(ctx, path); err != nil {
		c.logger.Printf("Export failed: %v", err)
		c.model.SetStatus("Export failed.")
		return
	}
	c.model.SetStatus("Exported to " + path)
}

// ImportData replaces all data with the backup at path and reloads both plans
func (c *UIController) ImportData(path string) {
	if c.persistence == nil {
		c.logger.Printf("Import unavailable: no storage configured")
		return
	}
	if strings.TrimSpace(path) == "" {
		path = c.exportPath
	}
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	if err := c.persistence.Import(ctx, path); err != nil {
		c.logger.Printf("Import failed: %v", err)
		c.model.SetStatus("Import failed: " + err.Error())
		return
	}
	c.workoutManager.LoadPlans(c.persistence.Load(ctx))
	c.model.SetStatus("Imported " + path)
}

// ClearData deletes everything and reloads the defaults
func (c *UIController) ClearData() {
	if c.persistence == nil {
		c.logger.Printf("Clear unavailable: no storage configured")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	if err := c.persistence.ClearAll(ctx); err != nil {
		c.logger.Printf("Clear failed: %v", err)
		c.model.SetStatus("Clear failed.")
		return
	}
	c.workoutManager.LoadPlans(c.persistence.Defaults())
	c.model.SetStatus("All data cleared.")
}

// Shutdown stops the workout manager
func (c *UIController) Shutdown() {
	c.workoutManager.Shutdown()
}
