package trainer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// HIITMovement is one exercise in a HIIT circuit
type HIITMovement struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Cues []string `json:"cues,omitempty"`
}

// StrengthMovement is one exercise in a strength plan. Rest is in whole seconds.
type StrengthMovement struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Sets int      `json:"sets"`
	Reps int      `json:"reps"`
	Rest int      `json:"rest"`
	Cues []string `json:"cues,omitempty"`
}

// RestDuration returns the between-sets rest as a duration
func (m StrengthMovement) RestDuration() time.Duration {
	return time.Duration(m.Rest) * time.Second
}

// StrengthPlan is the persisted strength plan document
type StrengthPlan struct {
	Movements      []StrengthMovement `json:"movements"`
	TransitionRest int                `json:"transitionRest"`
}

// HIITSettings configures a HIIT session
type HIITSettings struct {
	Work   time.Duration
	Rest   time.Duration
	Rounds int
}

// DefaultHIITSettings returns the 20/10 x 8 default
func DefaultHIITSettings() HIITSettings {
	return HIITSettings{
		Work:   DefaultHIITWorkSeconds * time.Second,
		Rest:   DefaultHIITRestSeconds * time.Second,
		Rounds: DefaultHIITRounds,
	}
}

// HIITPlan is the persisted HIIT document
type HIITPlan struct {
	Movements   []HIITMovement `json:"movements"`
	WorkSeconds int            `json:"work"`
	RestSeconds int            `json:"rest"`
	Rounds      int            `json:"rounds"`
}

// Settings converts the stored seconds into sanitized session settings
func (p HIITPlan) Settings() HIITSettings {
	return SanitizeHIITSettings(p.WorkSeconds, p.RestSeconds, p.Rounds)
}

// SanitizeHIITSettings clamps raw second counts into the accepted bounds.
// Zero or negative work and rounds fall back to defaults.
func SanitizeHIITSettings(workSeconds, restSeconds, rounds int) HIITSettings {
	if workSeconds <= 0 {
		workSeconds = DefaultHIITWorkSeconds
	}
	if restSeconds < 0 {
		restSeconds = DefaultHIITRestSeconds
	}
	if rounds <= 0 {
		rounds = DefaultHIITRounds
	}
	return HIITSettings{
		Work:   time.Duration(clampInt(workSeconds, MinHIITWorkSeconds, MaxHIITWorkSeconds)) * time.Second,
		Rest:   time.Duration(clampInt(restSeconds, MinHIITRestSeconds, MaxHIITRestSeconds)) * time.Second,
		Rounds: clampInt(rounds, MinHIITRounds, MaxHIITRounds),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseLeadingInt mimics lenient integer parsing of user input: "12abc" is 12, "abc" fails.
// Accepts JSON numbers, numeric strings and Go integers.
func parseLeadingInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(math.Trunc(v)), true
	case json.Number:
		return parseLeadingInt(v.String())
	case string:
		s := strings.TrimSpace(v)
		end := 0
		if end < len(s) && (s[end] == '-' || s[end] == '+') {
			end++
		}
		digits := end
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == digits {
			return 0, false
		}
		n, err := strconv.Atoi(s[:end])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// ClampPositiveInt parses value and returns it when greater than zero, else fallback
func ClampPositiveInt(value any, fallback int) int {
	n, ok := parseLeadingInt(value)
	if !ok || n <= 0 {
		return fallback
	}
	return n
}

// ClampNonNegativeInt parses value and returns it when zero or greater, else fallback
func ClampNonNegativeInt(value any, fallback int) int {
	n, ok := parseLeadingInt(value)
	if !ok || n < 0 {
		return fallback
	}
	return n
}

// NormalizeStrengthMovement validates a raw decoded movement at the storage/input boundary.
// The name falls back to the catalog when missing. Returns false when the entry is unusable.
func NormalizeStrengthMovement(raw map[string]any, catalog *Catalog) (StrengthMovement, bool) {
	if raw == nil {
		return StrengthMovement{}, false
	}
	id, _ := raw["id"].(string)
	name, _ := raw["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" && catalog != nil {
		name = catalog.LookupName(id)
	}
	if id == "" || name == "" {
		return StrengthMovement{}, false
	}
	return StrengthMovement{
		ID:   id,
		Name: name,
		Sets: ClampPositiveInt(raw["sets"], 1),
		Reps: ClampPositiveInt(raw["reps"], 1),
		Rest: ClampNonNegativeInt(raw["rest"], 0),
		Cues: stringSlice(raw["cues"]),
	}, true
}

// NormalizeHIITMovement validates a raw decoded HIIT movement
func NormalizeHIITMovement(raw map[string]any, catalog *Catalog) (HIITMovement, bool) {
	if raw == nil {
		return HIITMovement{}, false
	}
	id, _ := raw["id"].(string)
	name, _ := raw["name"].(string)
	name = strings.TrimSpace(name)
	cues := stringSlice(raw["cues"])
	if catalog != nil {
		if ex, ok := catalog.Lookup(id); ok {
			if name == "" {
				name = ex.Name
			}
			if len(cues) == 0 {
				cues = append([]string(nil), ex.Cues...)
			}
		}
	}
	if id == "" || name == "" {
		return HIITMovement{}, false
	}
	return HIITMovement{ID: id, Name: name, Cues: cues}, true
}

// SanitizeStrengthMovement applies the same clamping to an already typed movement
func SanitizeStrengthMovement(m StrengthMovement) (StrengthMovement, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.ID == "" || m.Name == "" {
		return StrengthMovement{}, ErrInvalidMovement
	}
	if m.Sets <= 0 {
		m.Sets = 1
	}
	if m.Reps <= 0 {
		m.Reps = 1
	}
	if m.Rest < 0 {
		m.Rest = 0
	}
	return m, nil
}

func stringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		if typed, ok := value.([]string); ok {
			return append([]string(nil), typed...)
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
