package trainer

import "time"

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeHome     UIMode = iota // Overview of both plans
	UIModeHIIT                   // HIIT builder and runner
	UIModeStrength               // Strength builder and runner
	UIModeSettings               // Backup, restore and clear
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	Route       string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeHome, DisplayName: "Home", Route: "/", KeyBinding: '1'},
	{Mode: UIModeHIIT, DisplayName: "HIIT", Route: "/hiit", KeyBinding: '2'},
	{Mode: UIModeStrength, DisplayName: "Strength", Route: "/strength", KeyBinding: '3'},
	{Mode: UIModeSettings, DisplayName: "Settings", Route: "/settings", KeyBinding: '4'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// GetUIModeByRoute resolves a route path. Unknown routes fall back to Home.
func GetUIModeByRoute(route string) UIMode {
	for _, info := range AllUIModes {
		if info.Route == route {
			return info.Mode
		}
	}
	return UIModeHome
}

// CueName identifies an audio cue emitted on a phase transition
type CueName string

const (
	CueRoundStart      CueName = "round-start"
	CueIntervalEnd     CueName = "interval-end"
	CueSessionComplete CueName = "session-complete"
	CueRestComplete    CueName = "rest-complete"
)

// CueTone pairs a cue with the tone hints passed to the sink
type CueTone struct {
	Name        CueName
	FrequencyHz float64
	Duration    time.Duration
}

var (
	ToneRoundStart      = CueTone{Name: CueRoundStart, FrequencyHz: 880, Duration: 80 * time.Millisecond}
	ToneIntervalEnd     = CueTone{Name: CueIntervalEnd, FrequencyHz: 440, Duration: 60 * time.Millisecond}
	ToneSessionComplete = CueTone{Name: CueSessionComplete, FrequencyHz: 660, Duration: 200 * time.Millisecond}
	ToneRestComplete    = CueTone{Name: CueRestComplete, FrequencyHz: 880, Duration: 80 * time.Millisecond}
)

// HIITPhase is a stage of a HIIT session
type HIITPhase string

const (
	HIITPhaseReady HIITPhase = "ready"
	HIITPhaseWork  HIITPhase = "work"
	HIITPhaseRest  HIITPhase = "rest"
	HIITPhaseDone  HIITPhase = "done"
)

// StrengthStatus is the lifecycle of a strength session
type StrengthStatus string

const (
	StrengthStatusIdle     StrengthStatus = "idle"
	StrengthStatusActive   StrengthStatus = "active"
	StrengthStatusFinished StrengthStatus = "finished"
)

// RestContext says why a strength rest was entered
type RestContext string

const (
	RestContextNone          RestContext = "none"
	RestContextBetweenSets   RestContext = "betweenSets"
	RestContextAfterExercise RestContext = "afterExercise"
)

// HIIT input bounds and defaults, in seconds
const (
	DefaultHIITWorkSeconds = 20
	DefaultHIITRestSeconds = 10
	DefaultHIITRounds      = 8

	MinHIITWorkSeconds = 5
	MaxHIITWorkSeconds = 300
	MinHIITRestSeconds = 0
	MaxHIITRestSeconds = 300
	MinHIITRounds      = 1
	MaxHIITRounds      = 50
)

// Strength defaults
const (
	DefaultTransitionRestSeconds = 60

	DefaultFormSets        = 3
	DefaultFormReps        = 10
	DefaultFormRestSeconds = 60
)

// StorageKey is the key of the persisted document in the store
const StorageKey = "zbf:data"

// DefaultExportFile is the file name used when exporting without a path
const DefaultExportFile = "zbf-backup.json"

// ExerciseType tags catalog entries
type ExerciseType string

const (
	ExerciseTypeHIIT     ExerciseType = "hiit"
	ExerciseTypeStrength ExerciseType = "strength"
)
