package trainer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lowaak/zbf-timer/internal/store"
)

const (
	docKeyStrengthPlan = "strengthPlan"
	docKeyHIITPlan     = "hiitPlan"
)

// ErrInvalidBackup is returned by Import for a file that is not a JSON object
var ErrInvalidBackup = errors.New("backup must be a JSON object")

// SavedPlans is the sanitized content of the persisted document
type SavedPlans struct {
	Strength StrengthPlan
	HIIT     HIITPlan
}

// DefaultSavedPlans is what a fresh install starts with
func DefaultSavedPlans() SavedPlans {
	return SavedPlans{
		Strength: StrengthPlan{Movements: []StrengthMovement{}, TransitionRest: DefaultTransitionRestSeconds},
		HIIT: HIITPlan{
			Movements:   []HIITMovement{},
			WorkSeconds: DefaultHIITWorkSeconds,
			RestSeconds: DefaultHIITRestSeconds,
			Rounds:      DefaultHIITRounds,
		},
	}
}

// PlanPersistence reads and writes the single document stored under StorageKey.
// Keys it does not own are carried through untouched on save.
type PlanPersistence struct {
	store    store.Store
	catalog  *Catalog
	defaults SavedPlans
	logger   *log.Logger
}

func NewPlanPersistence(st store.Store, catalog *Catalog, logger *log.Logger) *PlanPersistence {
	if st == nil {
		panic("PlanPersistence: store cannot be nil")
	}
	if logger == nil {
		panic("PlanPersistence: logger cannot be nil")
	}
	return &PlanPersistence{store: st, catalog: catalog, defaults: DefaultSavedPlans(), logger: logger}
}

// SetDefaults replaces what Load falls back to for missing sections and fields.
// Not safe to call concurrently with Load.
func (p *PlanPersistence) SetDefaults(defaults SavedPlans) {
	p.defaults = defaults
}

// Defaults returns a copy of the fresh-install plans
func (p *PlanPersistence) Defaults() SavedPlans {
	d := p.defaults
	d.Strength.Movements = append([]StrengthMovement{}, d.Strength.Movements...)
	d.HIIT.Movements = append([]HIITMovement{}, d.HIIT.Movements...)
	return d
}

// readDoc returns the stored document, or an empty one when missing or corrupt
func (p *PlanPersistence) readDoc(ctx context.Context) map[string]json.RawMessage {
	doc := make(map[string]json.RawMessage)
	raw, err := p.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Printf("PlanPersistence: read %s failed: %v", StorageKey, err)
		}
		return doc
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		p.logger.Printf("PlanPersistence: %s failed to parse, starting empty: %v", StorageKey, err)
		return make(map[string]json.RawMessage)
	}
	return doc
}

func (p *PlanPersistence) writeDoc(ctx context.Context, doc map[string]json.RawMessage) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", StorageKey, err)
	}
	if err := p.store.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	return nil
}

// Load returns the sanitized plans. Invalid entries are dropped and bad numbers defaulted.
func (p *PlanPersistence) Load(ctx context.Context) SavedPlans {
	plans := p.Defaults()
	doc := p.readDoc(ctx)

	if raw, ok := doc[docKeyStrengthPlan]; ok {
		var section map[string]any
		if err := json.Unmarshal(raw, &section); err == nil && section != nil {
			plans.Strength.TransitionRest = ClampNonNegativeInt(section["transitionRest"], p.defaults.Strength.TransitionRest)
			for _, item := range anySlice(section["movements"]) {
				obj, _ := item.(map[string]any)
				if m, ok := NormalizeStrengthMovement(obj, p.catalog); ok {
					plans.Strength.Movements = append(plans.Strength.Movements, m)
				}
			}
		}
	}

	if raw, ok := doc[docKeyHIITPlan]; ok {
		var section map[string]any
		if err := json.Unmarshal(raw, &section); err == nil && section != nil {
			plans.HIIT.WorkSeconds = ClampPositiveInt(section["work"], p.defaults.HIIT.WorkSeconds)
			plans.HIIT.RestSeconds = ClampNonNegativeInt(section["rest"], p.defaults.HIIT.RestSeconds)
			plans.HIIT.Rounds = ClampPositiveInt(section["rounds"], p.defaults.HIIT.Rounds)
			for _, item := range anySlice(section["movements"]) {
				obj, _ := item.(map[string]any)
				if m, ok := NormalizeHIITMovement(obj, p.catalog); ok {
					plans.HIIT.Movements = append(plans.HIIT.Movements, m)
				}
			}
		}
	}

	p.logger.Printf("PlanPersistence: load -> %d strength movements (transition %ds), %d HIIT movements",
		len(plans.Strength.Movements), plans.Strength.TransitionRest, len(plans.HIIT.Movements))
	return plans
}

// SaveStrength stores the strength plan, keeping the rest of the document
func (p *PlanPersistence) SaveStrength(ctx context.Context, plan StrengthPlan) error {
	clean := StrengthPlan{Movements: []StrengthMovement{}, TransitionRest: max(plan.TransitionRest, 0)}
	for _, m := range plan.Movements {
		if s, err := SanitizeStrengthMovement(m); err == nil {
			clean.Movements = append(clean.Movements, s)
		}
	}
	return p.saveSection(ctx, docKeyStrengthPlan, clean)
}

// SaveHIIT stores the HIIT plan and settings, keeping the rest of the document
func (p *PlanPersistence) SaveHIIT(ctx context.Context, plan HIITPlan) error {
	if plan.Movements == nil {
		plan.Movements = []HIITMovement{}
	}
	return p.saveSection(ctx, docKeyHIITPlan, plan)
}

func (p *PlanPersistence) saveSection(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	doc := p.readDoc(ctx)
	doc[key] = raw
	if err := p.writeDoc(ctx, doc); err != nil {
		p.logger.Printf("PlanPersistence: save %s failed: %v", key, err)
		return err
	}
	p.logger.Printf("PlanPersistence: save %s", key)
	return nil
}

// Export writes the stored document to path as indented JSON. An empty store exports "{}".
func (p *PlanPersistence) Export(ctx context.Context, path string) error {
	if path == "" {
		path = DefaultExportFile
	}
	raw, err := json.MarshalIndent(p.readDoc(ctx), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create backup dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	p.logger.Printf("PlanPersistence: exported to %s", path)
	return nil
}

// Import replaces the stored document with the JSON object in path
func (p *PlanPersistence) Import(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	return p.ImportBytes(ctx, raw)
}

// ImportBytes replaces the stored document with raw, which must be a JSON object
func (p *PlanPersistence) ImportBytes(ctx context.Context, raw []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return ErrInvalidBackup
	}
	if err := p.writeDoc(ctx, doc); err != nil {
		return err
	}
	p.logger.Printf("PlanPersistence: imported %d keys", len(doc))
	return nil
}

// ClearAll deletes all stored data
func (p *PlanPersistence) ClearAll(ctx context.Context) error {
	if err := p.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	p.logger.Printf("PlanPersistence: cleared all data")
	return nil
}

func anySlice(value any) []any {
	items, _ := value.([]any)
	return items
}
