package trainer

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/exercises.json
var embeddedCatalog []byte

// Exercise is a read-only catalog entry
type Exercise struct {
	ID   string       `yaml:"id" json:"id"`
	Name string       `yaml:"name" json:"name"`
	Type ExerciseType `yaml:"type" json:"type"`
	Cues []string     `yaml:"cues" json:"cues"`
}

// FallbackStrengthExercises is used when the catalog has no strength entries
var FallbackStrengthExercises = []Exercise{
	{ID: "air-squat", Name: "Air Squat", Type: ExerciseTypeStrength},
	{ID: "pushup", Name: "Push‑Ups", Type: ExerciseTypeStrength},
	{ID: "goblet-squat", Name: "Goblet Squat", Type: ExerciseTypeStrength},
	{ID: "split-squat", Name: "Split Squat", Type: ExerciseTypeStrength},
	{ID: "row", Name: "Bent‑Over Row", Type: ExerciseTypeStrength},
	{ID: "deadbug", Name: "Dead Bug", Type: ExerciseTypeStrength},
}

// Catalog is the static exercise list
type Catalog struct {
	exercises []Exercise
}

// ParseCatalog decodes a catalog document. JSON is accepted since it is a subset of YAML.
// Entries without an id or name are dropped.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw []Exercise
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{}
	for _, ex := range raw {
		ex.ID = strings.TrimSpace(ex.ID)
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.ID == "" || ex.Name == "" {
			continue
		}
		ex.Type = ExerciseType(strings.ToLower(string(ex.Type)))
		c.exercises = append(c.exercises, ex)
	}
	return c, nil
}

// LoadCatalog reads the catalog at path, or the embedded one when path is empty.
// A missing or unreadable override falls back to the embedded catalog.
func LoadCatalog(path string, logger *log.Logger) *Catalog {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			c, parseErr := ParseCatalog(data)
			if parseErr == nil {
				logger.Printf("Catalog: Loaded %d exercises from %s", len(c.exercises), path)
				return c
			}
			err = parseErr
		}
		logger.Printf("Catalog: Failed to load %s, using built-in catalog: %v", path, err)
	}

	c, err := ParseCatalog(embeddedCatalog)
	if err != nil {
		logger.Printf("Catalog: Built-in catalog unreadable: %v", err)
		return &Catalog{}
	}
	return c
}

// All returns every exercise
func (c *Catalog) All() []Exercise {
	return append([]Exercise(nil), c.exercises...)
}

// ByType returns exercises of one type. Strength falls back to FallbackStrengthExercises.
func (c *Catalog) ByType(t ExerciseType) []Exercise {
	var out []Exercise
	for _, ex := range c.exercises {
		if ex.Type == t {
			out = append(out, ex)
		}
	}
	if len(out) == 0 && t == ExerciseTypeStrength {
		return append([]Exercise(nil), FallbackStrengthExercises...)
	}
	return out
}

// Lookup finds an exercise by id, consulting the strength fallback list last
func (c *Catalog) Lookup(id string) (Exercise, bool) {
	if c != nil {
		for _, ex := range c.exercises {
			if ex.ID == id {
				return ex, true
			}
		}
	}
	for _, ex := range FallbackStrengthExercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}

// LookupName returns the display name for id, or "" when unknown
func (c *Catalog) LookupName(id string) string {
	ex, _ := c.Lookup(id)
	return ex.Name
}

// HIITMovement resolves a catalog entry into a plan movement
func (ex Exercise) HIITMovement() HIITMovement {
	return HIITMovement{ID: ex.ID, Name: ex.Name, Cues: append([]string(nil), ex.Cues...)}
}

// StrengthMovement resolves a catalog entry into a plan movement with the given parameters
func (ex Exercise) StrengthMovement(sets, reps, restSeconds int) StrengthMovement {
	return StrengthMovement{
		ID:   ex.ID,
		Name: ex.Name,
		Sets: sets,
		Reps: reps,
		Rest: restSeconds,
		Cues: append([]string(nil), ex.Cues...),
	}
}
