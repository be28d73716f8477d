package trainer

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/lowaak/zbf-timer/internal/events"
	"github.com/lowaak/zbf-timer/internal/go_func_utils"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// PlanSnapshot is what the builders show: both plans and their settings
type PlanSnapshot struct {
	HIIT                  []HIITMovement
	HIITSettings          HIITSettings
	Strength              []StrengthMovement
	TransitionRestSeconds int
	EditIndex             int // strength movement in the edit form, -1 for none
}

func (p PlanSnapshot) equal(other PlanSnapshot) bool {
	return p.HIITSettings == other.HIITSettings &&
		p.TransitionRestSeconds == other.TransitionRestSeconds &&
		p.EditIndex == other.EditIndex &&
		slices.EqualFunc(p.HIIT, other.HIIT, func(a, b HIITMovement) bool {
			return a.ID == b.ID && a.Name == b.Name && slices.Equal(a.Cues, b.Cues)
		}) &&
		slices.EqualFunc(p.Strength, other.Strength, func(a, b StrengthMovement) bool {
			return a.ID == b.ID && a.Name == b.Name && a.Sets == b.Sets && a.Reps == b.Reps &&
				a.Rest == b.Rest && slices.Equal(a.Cues, b.Cues)
		})
}

// PlanSink receives plan snapshots after edits. A RenderSink may optionally implement it.
type PlanSink interface {
	PresentPlans(PlanSnapshot)
}

// UIModel is the observable state shared between the WorkoutManager and the views
type UIModel struct {
	logEvent              *events.Event[string]
	closeApplicationEvent *events.Event[struct{}]
	uiState               *events.Value[UIState]
	hiitDisplay           *events.Value[DisplayModel]
	strengthDisplay       *events.Value[DisplayModel]
	plans                 *events.Value[PlanSnapshot]
	status                *events.Value[string]
	catalog               *Catalog
	logLines              []string
	logMu                 sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                *log.Logger
}

const maxLogLines = 1000

func NewUIModel(catalog *Catalog, logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	if catalog == nil {
		catalog = &Catalog{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	equalDisplay := func(a, b DisplayModel) bool { return a.Equal(b) }
	model := &UIModel{
		logEvent:              events.NewEvent[string](false),
		closeApplicationEvent: events.NewEvent[struct{}](true),
		uiState:               events.NewValue(UIState{Mode: UIModeHome}),
		hiitDisplay:           events.NewDedupValue(ProjectHIIT(HIITState{Phase: HIITPhaseReady, ExerciseIndex: -1, Settings: DefaultHIITSettings()}, time.Time{}), equalDisplay),
		strengthDisplay:       events.NewDedupValue(ProjectStrength(StrengthState{Status: StrengthStatusIdle, SetNumber: 1}, time.Time{}), equalDisplay),
		plans:                 events.NewDedupValue(PlanSnapshot{HIITSettings: DefaultHIITSettings(), TransitionRestSeconds: DefaultTransitionRestSeconds, EditIndex: -1}, PlanSnapshot.equal),
		status:                events.NewDedupValue("", func(a, b string) bool { return a == b }),
		catalog:               catalog,
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}

	// Read from the UI log channel and populate logLines
	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// Present implements RenderSink
func (m *UIModel) Present(dm DisplayModel) {
	switch dm.Kind {
	case WorkoutKindHIIT:
		m.hiitDisplay.Set(dm)
	case WorkoutKindStrength:
		m.strengthDisplay.Set(dm)
	default:
		m.logger.Printf("UIModel: Ignoring display model of unknown kind %q", dm.Kind)
	}
}

// PresentPlans implements PlanSink
func (m *UIModel) PresentPlans(snapshot PlanSnapshot) {
	m.plans.Set(snapshot)
}

// Catalog returns the exercise catalog offered by the builders
func (m *UIModel) Catalog() *Catalog {
	return m.catalog
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiState.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	return m.uiState.Get()
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	if m.uiState.Get().Mode == mode {
		return
	}
	m.uiState.Set(UIState{Mode: mode})
}

func (m *UIModel) ListenToHIITDisplay(ch chan<- DisplayModel) func() {
	return m.hiitDisplay.Listen(ch)
}

func (m *UIModel) GetHIITDisplay() DisplayModel {
	return m.hiitDisplay.Get()
}

func (m *UIModel) ListenToStrengthDisplay(ch chan<- DisplayModel) func() {
	return m.strengthDisplay.Listen(ch)
}

func (m *UIModel) GetStrengthDisplay() DisplayModel {
	return m.strengthDisplay.Get()
}

func (m *UIModel) ListenToPlans(ch chan<- PlanSnapshot) func() {
	return m.plans.Listen(ch)
}

func (m *UIModel) GetPlans() PlanSnapshot {
	return m.plans.Get()
}

// ListenToStatus registers a channel for transient status messages (export done, import failed...)
func (m *UIModel) ListenToStatus(ch chan<- string) func() {
	return m.status.Listen(ch)
}

func (m *UIModel) GetStatus() string {
	return m.status.Get()
}

func (m *UIModel) SetStatus(message string) {
	m.status.Set(message)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > len(m.logLines) {
		n = len(m.logLines)
	}
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
