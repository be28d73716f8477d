package trainer

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	SetMode(mode UIMode)
	GetCurrentMode() UIMode

	// --- Log View (shared across modes) ---

	GetLogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// --- Runners ---

	// UpdateHIITDisplay redraws the HIIT runner panel
	UpdateHIITDisplay(dm DisplayModel)

	// UpdateStrengthDisplay redraws the strength runner panel
	UpdateStrengthDisplay(dm DisplayModel)

	// --- Builders ---

	// SetPlans refreshes both plan lists, the HIIT settings form and the edit form
	SetPlans(plans PlanSnapshot)

	// SetStatus shows a transient status message
	SetStatus(message string)
}
