package trainer

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Page names for tview.Pages
const (
	pageHome         = "home"
	pageHIIT         = "hiit"
	pageStrength     = "strength"
	pageSettings     = "settings"
	pageClearConfirm = "clear_confirm"
)

const progressBarWidth = 30

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	model       *UIModel
	currentMode UIMode

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView    *tview.TextView
	statusView *tview.TextView
	mainFlex   *tview.Flex // Main layout: mode content and status on left, logs on right

	// Home mode components
	homeFlex    *tview.Flex
	homeSummary *tview.TextView

	// HIIT mode components
	hiitFlex          *tview.Flex
	hiitTabWidgets    []tview.Primitive
	hiitCatalogList   *tview.List
	hiitPlanList      *tview.List
	hiitSettingsForm  *tview.Form
	hiitWorkField     *tview.InputField
	hiitRestField     *tview.InputField
	hiitRoundsField   *tview.InputField
	hiitCustomForm    *tview.Form
	hiitCustomName    *tview.InputField
	hiitCustomCues    *tview.InputField
	hiitRunnerPanel   *tview.TextView
	hiitCatalogOption []Exercise

	// Strength mode components
	strengthFlex           *tview.Flex
	strengthTabWidgets     []tview.Primitive
	strengthForm           *tview.Form
	strengthExerciseDrop   *tview.DropDown
	strengthSetsField      *tview.InputField
	strengthRepsField      *tview.InputField
	strengthRestField      *tview.InputField
	strengthTransitionForm *tview.Form
	strengthTransField     *tview.InputField
	strengthPlanList       *tview.List
	strengthRunnerPanel    *tview.TextView
	strengthOptions        []Exercise

	// Settings mode components
	settingsFlex       *tview.Flex
	settingsTabWidgets []tview.Primitive
	settingsForm       *tview.Form
	settingsPathField  *tview.InputField
	clearConfirm       *tview.Modal
	confirmOpen        bool

	// Last values received from the model, guarded by mu
	mu              sync.Mutex
	plans           PlanSnapshot
	plansLoaded     bool
	hiitActiveIndex int
	strengthActive  int
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:          logger,
		app:             app,
		model:           model,
		currentMode:     UIModeHome,
		hiitActiveIndex: -1,
		strengthActive:  -1,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// Don't use SetChangedFunc with app.Draw() on the log view; BaseUIView redraws after updates.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.statusView = tview.NewTextView().SetDynamicColors(true)

	ui.pages = tview.NewPages()

	ui.initHomeMode()
	ui.initHIITMode(controller)
	ui.initStrengthMode(controller)
	ui.initSettingsMode(controller)

	ui.pages.AddPage(pageHome, ui.homeFlex, true, true)
	ui.pages.AddPage(pageHIIT, ui.hiitFlex, true, false)
	ui.pages.AddPage(pageStrength, ui.strengthFlex, true, false)
	ui.pages.AddPage(pageSettings, ui.settingsFlex, true, false)
	ui.pages.AddPage(pageClearConfirm, ui.clearConfirm, false, false)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.statusView, 1, 0, false)

	ui.mainFlex = tview.NewFlex().
		AddItem(left, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	ui.setFocusForCurrentMode()
}

func navigationHelp() string {
	parts := make([]string, 0, len(AllUIModes))
	for _, info := range AllUIModes {
		parts = append(parts, fmt.Sprintf("[yellow]%c[white] %s", info.KeyBinding, info.DisplayName))
	}
	return strings.Join(parts, "  |  ") + "  |  [yellow]Esc[white] Quit"
}

func newInstructions(text string) *tview.TextView {
	instructions := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructions.SetText(text + "\n" + navigationHelp())
	return instructions
}

func newIntegerField(label string, value int) *tview.InputField {
	return tview.NewInputField().
		SetLabel(label).
		SetText(strconv.Itoa(value)).
		SetFieldWidth(6).
		SetAcceptanceFunc(tview.InputFieldInteger)
}

// initHomeMode sets up the overview page
func (ui *CursesUIViewImpl) initHomeMode() {
	ui.homeSummary = tview.NewTextView().SetDynamicColors(true)
	ui.homeSummary.SetBorder(true).SetTitle(" Zero Barrier Fitness ")

	ui.homeFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(newInstructions("Build a HIIT circuit or a strength plan, then run it with on-screen timers."), 3, 0, false).
		AddItem(ui.homeSummary, 0, 1, false)
	ui.renderHome(PlanSnapshot{HIITSettings: DefaultHIITSettings(), TransitionRestSeconds: DefaultTransitionRestSeconds, EditIndex: -1})
}

// initHIITMode sets up the HIIT builder and runner
func (ui *CursesUIViewImpl) initHIITMode(controller *UIController) {
	ui.hiitCatalogOption = ui.model.Catalog().ByType(ExerciseTypeHIIT)

	ui.hiitCatalogList = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: HIIT exercise selected: index=%d, text=%s", index, mainText)
			controller.AddHIITExercise(index)
		})
	ui.hiitCatalogList.SetBorder(true).SetTitle(" Exercises (Enter adds) ")
	for _, ex := range ui.hiitCatalogOption {
		ui.hiitCatalogList.AddItem(tview.Escape(ex.Name), "", 0, nil)
	}

	ui.hiitPlanList = tview.NewList().ShowSecondaryText(false)
	ui.hiitPlanList.SetBorder(true).SetTitle(" Circuit ")

	defaults := DefaultHIITSettings()
	ui.hiitWorkField = newIntegerField("Work (s) ", int(defaults.Work/time.Second))
	ui.hiitRestField = newIntegerField("Rest (s) ", int(defaults.Rest/time.Second))
	ui.hiitRoundsField = newIntegerField("Rounds   ", defaults.Rounds)
	ui.hiitSettingsForm = tview.NewForm().
		AddFormItem(ui.hiitWorkField).
		AddFormItem(ui.hiitRestField).
		AddFormItem(ui.hiitRoundsField).
		AddButton("Apply", func() {
			applied := controller.OnHIITSettingsChanged(ui.hiitWorkField.GetText(), ui.hiitRestField.GetText(), ui.hiitRoundsField.GetText())
			ui.setHIITSettingsFields(applied)
		})
	ui.hiitSettingsForm.SetBorder(true).SetTitle(" Timer ")

	ui.hiitCustomName = tview.NewInputField().SetLabel("Name ").SetFieldWidth(20)
	ui.hiitCustomCues = tview.NewInputField().SetLabel("Cues ").SetFieldWidth(30).SetPlaceholder("cue one; cue two")
	ui.hiitCustomForm = tview.NewForm().
		AddFormItem(ui.hiitCustomName).
		AddFormItem(ui.hiitCustomCues).
		AddButton("Add move", func() {
			controller.AddCustomHIITMovement(ui.hiitCustomName.GetText(), ui.hiitCustomCues.GetText())
			ui.hiitCustomName.SetText("")
			ui.hiitCustomCues.SetText("")
		})
	ui.hiitCustomForm.SetBorder(true).SetTitle(" Custom move ")

	ui.hiitRunnerPanel = tview.NewTextView().SetDynamicColors(true)
	ui.hiitRunnerPanel.SetBorder(true).SetTitle(" Runner ")

	builder := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.hiitCatalogList, 0, 1, true).
		AddItem(ui.hiitPlanList, 0, 1, false)
	forms := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.hiitSettingsForm, 11, 0, false).
		AddItem(ui.hiitCustomForm, 0, 1, false)
	body := tview.NewFlex().
		AddItem(builder, 0, 1, true).
		AddItem(forms, 0, 1, false).
		AddItem(ui.hiitRunnerPanel, 0, 1, false)

	ui.hiitFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(newInstructions("[yellow]S[white] Start  |  [yellow]R[white] Reset  |  [yellow]D[white] Remove move  |  [yellow]Ctrl+N[white] Next panel"), 3, 0, false).
		AddItem(body, 0, 1, true)

	ui.hiitTabWidgets = []tview.Primitive{ui.hiitCatalogList, ui.hiitPlanList, ui.hiitSettingsForm, ui.hiitCustomForm}
	ui.UpdateHIITDisplay(ui.model.GetHIITDisplay())
}

// initStrengthMode sets up the strength builder and runner
func (ui *CursesUIViewImpl) initStrengthMode(controller *UIController) {
	ui.strengthOptions = ui.model.Catalog().ByType(ExerciseTypeStrength)
	names := make([]string, 0, len(ui.strengthOptions))
	for _, ex := range ui.strengthOptions {
		names = append(names, ex.Name)
	}

	ui.strengthExerciseDrop = tview.NewDropDown().SetLabel("Exercise ").SetOptions(names, nil)
	if len(names) > 0 {
		ui.strengthExerciseDrop.SetCurrentOption(0)
	}
	ui.strengthSetsField = newIntegerField("Sets     ", DefaultFormSets)
	ui.strengthRepsField = newIntegerField("Reps     ", DefaultFormReps)
	ui.strengthRestField = newIntegerField("Rest (s) ", DefaultFormRestSeconds)
	ui.strengthForm = tview.NewForm().
		AddFormItem(ui.strengthExerciseDrop).
		AddFormItem(ui.strengthSetsField).
		AddFormItem(ui.strengthRepsField).
		AddFormItem(ui.strengthRestField).
		AddButton("Save", func() {
			index, _ := ui.strengthExerciseDrop.GetCurrentOption()
			controller.SubmitStrengthForm(index, ui.strengthSetsField.GetText(), ui.strengthRepsField.GetText(), ui.strengthRestField.GetText())
		}).
		AddButton("Cancel edit", func() {
			controller.CancelStrengthEdit()
		})
	ui.strengthForm.SetBorder(true).SetTitle(" Add movement ")

	ui.strengthTransField = newIntegerField("Transition rest (s) ", DefaultTransitionRestSeconds)
	ui.strengthTransitionForm = tview.NewForm().
		AddFormItem(ui.strengthTransField).
		AddButton("Apply", func() {
			controller.OnTransitionRestChanged(ui.strengthTransField.GetText())
		})
	ui.strengthTransitionForm.SetBorder(true).SetTitle(" Between exercises ")

	ui.strengthPlanList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			controller.EditStrengthMovement(index)
		})
	ui.strengthPlanList.SetBorder(true).SetTitle(" Plan (Enter edits) ")

	ui.strengthRunnerPanel = tview.NewTextView().SetDynamicColors(true)
	ui.strengthRunnerPanel.SetBorder(true).SetTitle(" Runner ")

	forms := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.strengthForm, 13, 0, true).
		AddItem(ui.strengthTransitionForm, 0, 1, false)
	body := tview.NewFlex().
		AddItem(forms, 0, 1, true).
		AddItem(ui.strengthPlanList, 0, 1, false).
		AddItem(ui.strengthRunnerPanel, 0, 1, false)

	ui.strengthFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(newInstructions("[yellow]S[white] Start  |  [yellow]Space[white] Complete set  |  [yellow]R[white] Reset  |  [yellow]D[white] Remove  |  [yellow][[][white]/[yellow]][white] Move  |  [yellow]Ctrl+N[white] Next panel"), 3, 0, false).
		AddItem(body, 0, 1, true)

	ui.strengthTabWidgets = []tview.Primitive{ui.strengthForm, ui.strengthPlanList, ui.strengthTransitionForm}
	ui.UpdateStrengthDisplay(ui.model.GetStrengthDisplay())
}

// initSettingsMode sets up backup, restore and clear
func (ui *CursesUIViewImpl) initSettingsMode(controller *UIController) {
	ui.settingsPathField = tview.NewInputField().
		SetLabel("Backup file ").
		SetText(controller.ExportPath()).
		SetFieldWidth(40)
	ui.settingsForm = tview.NewForm().
		AddFormItem(ui.settingsPathField).
		AddButton("Export", func() {
			controller.ExportData(ui.settingsPathField.GetText())
		}).
		AddButton("Import", func() {
			controller.ImportData(ui.settingsPathField.GetText())
		}).
		AddButton("Clear all data", func() {
			ui.confirmOpen = true
			ui.pages.ShowPage(pageClearConfirm)
			ui.app.SetFocus(ui.clearConfirm)
		})
	ui.settingsForm.SetBorder(true).SetTitle(" Data ")

	ui.clearConfirm = tview.NewModal().
		SetText("Delete every saved plan and setting?").
		AddButtons([]string{"Clear", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "Clear" {
				controller.ClearData()
			}
			ui.confirmOpen = false
			ui.pages.HidePage(pageClearConfirm)
			ui.setFocusForCurrentMode()
		})

	ui.settingsFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(newInstructions("Importing replaces all saved data with the backup file."), 3, 0, false).
		AddItem(ui.settingsForm, 0, 1, true)

	ui.settingsTabWidgets = []tview.Primitive{ui.settingsForm}
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeHome:
		ui.pages.SwitchToPage(pageHome)
	case UIModeHIIT:
		ui.pages.SwitchToPage(pageHIIT)
	case UIModeStrength:
		ui.pages.SwitchToPage(pageStrength)
	case UIModeSettings:
		ui.pages.SwitchToPage(pageSettings)
	}

	ui.setFocusForCurrentMode()
	ui.app.Draw()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

// setFocusForCurrentMode sets focus to the first widget in the current mode
func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	widgets := ui.getTabWidgetsForCurrentMode()
	if len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

// getTabWidgetsForCurrentMode returns the tab widgets for the current mode
func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []tview.Primitive {
	switch ui.currentMode {
	case UIModeHIIT:
		return ui.hiitTabWidgets
	case UIModeStrength:
		return ui.strengthTabWidgets
	case UIModeSettings:
		return ui.settingsTabWidgets
	default:
		return nil
	}
}

// isTyping reports whether keystrokes belong to a text field or an open dropdown
func (ui *CursesUIViewImpl) isTyping() bool {
	switch focused := ui.app.GetFocus().(type) {
	case *tview.InputField:
		return true
	case *tview.DropDown:
		return focused.IsOpen()
	default:
		return false
	}
}

// inForm reports whether a form item has focus; forms use Tab to move between their items
func (ui *CursesUIViewImpl) inForm() bool {
	switch ui.app.GetFocus().(type) {
	case *tview.InputField, *tview.DropDown, *tview.Button:
		return true
	default:
		return false
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if ui.confirmOpen {
			return event
		}

		// Escape to quit
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		// Ctrl+N cycles panels from anywhere, Tab only outside forms
		if event.Key() == tcell.KeyCtrlN || (event.Key() == tcell.KeyTab && !ui.inForm()) {
			ui.focusNextWidget()
			return nil
		}

		if event.Key() != tcell.KeyRune || ui.isTyping() {
			return event
		}

		// Number keys for mode switching
		if mode, ok := GetUIModeByKey(event.Rune()); ok {
			// Delegate to controller - it will update the model, which will notify us
			controller.OnModeChange(mode)
			return nil
		}

		// Mode-specific key handlers
		switch ui.currentMode {
		case UIModeHIIT:
			switch event.Rune() {
			case 's':
				controller.StartHIIT()
				return nil
			case 'r':
				controller.ResetHIIT()
				return nil
			case 'd':
				if ui.hiitPlanList.HasFocus() {
					controller.RemoveHIITMovement(ui.hiitPlanList.GetCurrentItem())
				}
				return nil
			}
		case UIModeStrength:
			switch event.Rune() {
			case 's':
				controller.StartStrength()
				return nil
			case ' ':
				controller.CompleteSet()
				return nil
			case 'r':
				controller.ResetStrength()
				return nil
			case 'd':
				if ui.strengthPlanList.HasFocus() {
					controller.RemoveStrengthMovement(ui.strengthPlanList.GetCurrentItem())
				}
				return nil
			case '[':
				if ui.strengthPlanList.HasFocus() {
					index := ui.strengthPlanList.GetCurrentItem()
					controller.MoveStrengthMovementUp(index)
					ui.strengthPlanList.SetCurrentItem(max(index-1, 0))
				}
				return nil
			case ']':
				if ui.strengthPlanList.HasFocus() {
					index := ui.strengthPlanList.GetCurrentItem()
					controller.MoveStrengthMovementDown(index)
					ui.strengthPlanList.SetCurrentItem(index + 1)
				}
				return nil
			}
		}

		return event
	})
}

func (ui *CursesUIViewImpl) focusNextWidget() {
	widgets := ui.getTabWidgetsForCurrentMode()
	widgetCount := len(widgets)
	if widgetCount == 0 {
		return
	}
	for idx, widget := range widgets {
		if widget.HasFocus() {
			ui.app.SetFocus(widgets[(idx+1)%widgetCount])
			return
		}
	}
	ui.app.SetFocus(widgets[0])
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, line)
	return err
}

// UpdateHIITDisplay redraws the HIIT runner and highlights the active circuit row
func (ui *CursesUIViewImpl) UpdateHIITDisplay(dm DisplayModel) {
	ui.mu.Lock()
	ui.hiitActiveIndex = dm.ActiveIndex
	plans := ui.plans
	ui.mu.Unlock()

	ui.hiitRunnerPanel.SetText(formatRunner(dm))
	ui.renderHIITPlan(plans.HIIT, dm.ActiveIndex)
}

// UpdateStrengthDisplay redraws the strength runner and highlights the active plan row
func (ui *CursesUIViewImpl) UpdateStrengthDisplay(dm DisplayModel) {
	ui.mu.Lock()
	ui.strengthActive = dm.ActiveIndex
	plans := ui.plans
	ui.mu.Unlock()

	ui.strengthRunnerPanel.SetText(formatRunner(dm))
	ui.renderStrengthPlan(plans.Strength, dm.ActiveIndex)
}

// SetPlans refreshes both builders
func (ui *CursesUIViewImpl) SetPlans(plans PlanSnapshot) {
	ui.mu.Lock()
	previous, loaded := ui.plans, ui.plansLoaded
	ui.plans = plans
	ui.plansLoaded = true
	hiitActive, strengthActive := ui.hiitActiveIndex, ui.strengthActive
	ui.mu.Unlock()

	ui.renderHIITPlan(plans.HIIT, hiitActive)
	ui.renderStrengthPlan(plans.Strength, strengthActive)
	ui.renderHome(plans)

	// Only overwrite form fields when the stored value moved, so unsaved typing survives other edits
	if !loaded || previous.HIITSettings != plans.HIITSettings {
		ui.setHIITSettingsFields(plans.HIITSettings)
	}
	if !loaded || previous.TransitionRestSeconds != plans.TransitionRestSeconds {
		ui.strengthTransField.SetText(strconv.Itoa(plans.TransitionRestSeconds))
	}
	if !loaded || previous.EditIndex != plans.EditIndex {
		ui.loadStrengthForm(plans)
	}
}

// SetStatus shows a transient status message under the pages
func (ui *CursesUIViewImpl) SetStatus(message string) {
	if message == "" {
		ui.statusView.SetText("")
		return
	}
	ui.statusView.SetText(" [yellow]" + tview.Escape(message) + "[white]")
}

func (ui *CursesUIViewImpl) setHIITSettingsFields(settings HIITSettings) {
	ui.hiitWorkField.SetText(strconv.Itoa(int(settings.Work / time.Second)))
	ui.hiitRestField.SetText(strconv.Itoa(int(settings.Rest / time.Second)))
	ui.hiitRoundsField.SetText(strconv.Itoa(settings.Rounds))
}

// loadStrengthForm fills the builder with the movement under edit, or resets it to defaults
func (ui *CursesUIViewImpl) loadStrengthForm(plans PlanSnapshot) {
	if plans.EditIndex < 0 || plans.EditIndex >= len(plans.Strength) {
		ui.strengthForm.SetTitle(" Add movement ")
		ui.strengthSetsField.SetText(strconv.Itoa(DefaultFormSets))
		ui.strengthRepsField.SetText(strconv.Itoa(DefaultFormReps))
		ui.strengthRestField.SetText(strconv.Itoa(DefaultFormRestSeconds))
		return
	}
	m := plans.Strength[plans.EditIndex]
	ui.strengthForm.SetTitle(" Edit movement ")
	for i, ex := range ui.strengthOptions {
		if ex.ID == m.ID {
			ui.strengthExerciseDrop.SetCurrentOption(i)
			break
		}
	}
	ui.strengthSetsField.SetText(strconv.Itoa(m.Sets))
	ui.strengthRepsField.SetText(strconv.Itoa(m.Reps))
	ui.strengthRestField.SetText(strconv.Itoa(m.Rest))
}

func (ui *CursesUIViewImpl) renderHIITPlan(plan []HIITMovement, active int) {
	current := ui.hiitPlanList.GetCurrentItem()
	ui.hiitPlanList.Clear()
	if len(plan) == 0 {
		ui.hiitPlanList.AddItem("[gray]No moves yet[white]", "", 0, nil)
		return
	}
	for i, m := range plan {
		ui.hiitPlanList.AddItem(planRow(i, m.Name, i == active), "", 0, nil)
	}
	ui.hiitPlanList.SetCurrentItem(min(current, len(plan)-1))
}

func (ui *CursesUIViewImpl) renderStrengthPlan(plan []StrengthMovement, active int) {
	current := ui.strengthPlanList.GetCurrentItem()
	ui.strengthPlanList.Clear()
	if len(plan) == 0 {
		ui.strengthPlanList.AddItem("[gray]Add movements to build a plan.[white]", "", 0, nil)
		return
	}
	for i, m := range plan {
		detail := fmt.Sprintf("   %d × %d · rest %ds", m.Sets, m.Reps, m.Rest)
		ui.strengthPlanList.AddItem(planRow(i, m.Name, i == active), detail, 0, nil)
	}
	ui.strengthPlanList.SetCurrentItem(min(current, len(plan)-1))
}

func planRow(index int, name string, active bool) string {
	if active {
		return fmt.Sprintf("[green]▶ %d. %s[white]", index+1, tview.Escape(name))
	}
	return fmt.Sprintf("  %d. %s", index+1, tview.Escape(name))
}

func (ui *CursesUIViewImpl) renderHome(plans PlanSnapshot) {
	settings := plans.HIITSettings
	var text strings.Builder
	text.WriteString("\n  [cyan]HIIT circuit[white]\n")
	fmt.Fprintf(&text, "  [gray]Moves:[white]  %d\n", len(plans.HIIT))
	fmt.Fprintf(&text, "  [gray]Timer:[white]  %ds work / %ds rest × %d rounds\n",
		int(settings.Work/time.Second), int(settings.Rest/time.Second), settings.Rounds)
	fmt.Fprintf(&text, "  [gray]Length:[white] %s\n\n", formatDurationMMSS(hiitSessionLength(settings)))

	totalSets := 0
	for _, m := range plans.Strength {
		totalSets += m.Sets
	}
	text.WriteString("  [cyan]Strength plan[white]\n")
	fmt.Fprintf(&text, "  [gray]Movements:[white]       %d\n", len(plans.Strength))
	fmt.Fprintf(&text, "  [gray]Total sets:[white]      %d\n", totalSets)
	fmt.Fprintf(&text, "  [gray]Transition rest:[white] %ds\n", plans.TransitionRestSeconds)
	ui.homeSummary.SetText(text.String())
}

// hiitSessionLength is the wall time from start to done; every round carries its rest
func hiitSessionLength(settings HIITSettings) time.Duration {
	return time.Duration(settings.Rounds) * (settings.Work + settings.Rest)
}

// formatRunner renders a runner panel from its display model
func formatRunner(dm DisplayModel) string {
	var text strings.Builder
	text.WriteString("\n")
	fmt.Fprintf(&text, "  [yellow]%s[white]   %s\n", dm.PhaseLabel, formatDurationMMSS(time.Duration(dm.SecondsLeft)*time.Second))
	fmt.Fprintf(&text, "  %s %3.0f%%\n\n", formatProgressBar(dm.ProgressPercent, progressBarWidth), dm.ProgressPercent)

	if dm.Kind == WorkoutKindHIIT {
		fmt.Fprintf(&text, "  [gray]Round:[white] %s\n", dm.ProgressLabel)
	} else {
		fmt.Fprintf(&text, "  [gray]Set:[white]   %s\n", dm.ProgressLabel)
		fmt.Fprintf(&text, "  [gray]Reps:[white]  %s\n", dm.TargetReps)
	}
	fmt.Fprintf(&text, "  [cyan]%s[white]\n\n", tview.Escape(dm.CurrentLabel))

	if len(dm.UpcomingCues) == 0 {
		fmt.Fprintf(&text, "  [gray]%s[white]\n", tview.Escape(dm.CuePlaceholder))
	}
	for _, cue := range dm.UpcomingCues {
		fmt.Fprintf(&text, "  • %s\n", tview.Escape(cue))
	}

	if dm.RestLabel != "" {
		fmt.Fprintf(&text, "\n  [gray]%s[white]\n", tview.Escape(dm.RestLabel))
	}
	if dm.StatusMessage != "" && dm.StatusMessage != dm.RestLabel {
		fmt.Fprintf(&text, "\n  %s\n", tview.Escape(dm.StatusMessage))
	}

	text.WriteString("\n  [gray]─────────────────────────[white]\n")
	switch {
	case dm.Kind == WorkoutKindStrength && dm.ActionEnabled:
		text.WriteString("  [yellow]Space[white] Complete set  |  [yellow]R[white] Reset\n")
	case dm.StartEnabled:
		text.WriteString("  [yellow]S[white] Start  |  [yellow]R[white] Reset\n")
	default:
		text.WriteString("  [gray]S Start (build a plan first)[white]\n")
	}
	return text.String()
}

// formatProgressBar draws percent (0-100) as a fixed-width bar
func formatProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return "[green]" + strings.Repeat("█", filled) + "[gray]" + strings.Repeat("░", width-filled) + "[white]"
}

// formatDurationMMSS formats a duration as MM:SS
func formatDurationMMSS(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Draw refreshes the display
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the tview application
func (ui *CursesUIViewImpl) Run() error {
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the tview application
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}
