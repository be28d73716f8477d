package trainer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/zbf-timer/internal/store"
)

func newTestPersistence(t *testing.T) (*PlanPersistence, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	catalog, err := ParseCatalog(embeddedCatalog)
	require.NoError(t, err)
	return NewPlanPersistence(st, catalog, testLogger()), st
}

func readStoredDoc(t *testing.T, st store.Store) map[string]json.RawMessage {
	t.Helper()
	raw, err := st.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func TestNewPlanPersistence_NilDependenciesPanic(t *testing.T) {
	assert.Panics(t, func() { NewPlanPersistence(nil, nil, testLogger()) })
	assert.Panics(t, func() { NewPlanPersistence(store.NewMemoryStore(), nil, nil) })
}

func TestPlanPersistence_LoadEmptyStoreReturnsDefaults(t *testing.T) {
	p, _ := newTestPersistence(t)
	assert.Equal(t, DefaultSavedPlans(), p.Load(context.Background()))
}

func TestPlanPersistence_LoadCorruptDocReturnsDefaults(t *testing.T) {
	p, st := newTestPersistence(t)
	require.NoError(t, st.Set(context.Background(), StorageKey, []byte("{not json")))
	assert.Equal(t, DefaultSavedPlans(), p.Load(context.Background()))
}

func TestPlanPersistence_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPersistence(t)

	strength := StrengthPlan{
		Movements:      []StrengthMovement{strengthMove("goblet-squat", 4, 10, 75), {ID: "", Name: "dropped"}},
		TransitionRest: 120,
	}
	hiit := HIITPlan{
		Movements:   []HIITMovement{{ID: "custom-1", Name: "Bear Crawl", Cues: []string{"hips low"}}},
		WorkSeconds: 40,
		RestSeconds: 20,
		Rounds:      6,
	}
	require.NoError(t, p.SaveStrength(ctx, strength))
	require.NoError(t, p.SaveHIIT(ctx, hiit))

	loaded := p.Load(ctx)
	assert.Equal(t, StrengthPlan{Movements: []StrengthMovement{strengthMove("goblet-squat", 4, 10, 75)}, TransitionRest: 120}, loaded.Strength)
	assert.Equal(t, hiit, loaded.HIIT)
}

func TestPlanPersistence_LoadSanitizesStoredValues(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPersistence(t)
	doc := `{
		"strengthPlan": {"transitionRest": "-5", "movements": [
			{"id": "row", "sets": "3x", "reps": 0, "rest": "45"},
			{"id": "nobody-knows"},
			"not an object"
		]},
		"hiitPlan": {"work": "abc", "rest": 0, "rounds": 12, "movements": [{"id": "burpees"}]}
	}`
	require.NoError(t, st.Set(ctx, StorageKey, []byte(doc)))

	loaded := p.Load(ctx)

	assert.Equal(t, DefaultTransitionRestSeconds, loaded.Strength.TransitionRest)
	require.Len(t, loaded.Strength.Movements, 1)
	row := loaded.Strength.Movements[0]
	assert.Equal(t, 3, row.Sets)
	assert.Equal(t, 1, row.Reps)
	assert.Equal(t, 45, row.Rest)
	assert.NotEmpty(t, row.Name)

	assert.Equal(t, DefaultHIITWorkSeconds, loaded.HIIT.WorkSeconds)
	assert.Equal(t, 0, loaded.HIIT.RestSeconds)
	assert.Equal(t, 12, loaded.HIIT.Rounds)
	require.Len(t, loaded.HIIT.Movements, 1)
	assert.Equal(t, "Burpees", loaded.HIIT.Movements[0].Name)
}

func TestPlanPersistence_SavePreservesUnknownKeys(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPersistence(t)
	require.NoError(t, st.Set(ctx, StorageKey, []byte(`{"theme":"dark","history":[1,2,3]}`)))

	require.NoError(t, p.SaveStrength(ctx, StrengthPlan{TransitionRest: 30}))
	require.NoError(t, p.SaveHIIT(ctx, HIITPlan{WorkSeconds: 20, RestSeconds: 10, Rounds: 8}))

	doc := readStoredDoc(t, st)
	assert.JSONEq(t, `"dark"`, string(doc["theme"]))
	assert.JSONEq(t, `[1,2,3]`, string(doc["history"]))
	assert.JSONEq(t, `{"movements":[],"transitionRest":30}`, string(doc["strengthPlan"]))
	assert.JSONEq(t, `{"movements":[],"work":20,"rest":10,"rounds":8}`, string(doc["hiitPlan"]))
}

func TestPlanPersistence_Defaults(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPersistence(t)
	custom := DefaultSavedPlans()
	custom.HIIT.WorkSeconds = 45
	custom.Strength.TransitionRest = 90
	p.SetDefaults(custom)

	loaded := p.Load(ctx)
	assert.Equal(t, 45, loaded.HIIT.WorkSeconds)
	assert.Equal(t, 90, loaded.Strength.TransitionRest)

	d := p.Defaults()
	d.HIIT.Movements = append(d.HIIT.Movements, HIITMovement{ID: "x", Name: "x"})
	assert.Empty(t, p.Defaults().HIIT.Movements, "Defaults returns a copy")
}

func TestPlanPersistence_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPersistence(t)
	require.NoError(t, st.Set(ctx, StorageKey, []byte(`{"theme":"dark"}`)))
	require.NoError(t, p.SaveStrength(ctx, StrengthPlan{Movements: []StrengthMovement{strengthMove("row", 3, 8, 60)}, TransitionRest: 60}))

	path := filepath.Join(t.TempDir(), "backups", "zbf.json")
	require.NoError(t, p.Export(ctx, path))

	exported, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(exported), "\n  \"", "backup is indented")

	other, otherStore := newTestPersistence(t)
	require.NoError(t, other.Import(ctx, path))
	assert.Equal(t, p.Load(ctx), other.Load(ctx))
	assert.JSONEq(t, `"dark"`, string(readStoredDoc(t, otherStore)["theme"]))
}

func TestPlanPersistence_ExportEmptyStore(t *testing.T) {
	p, _ := newTestPersistence(t)
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, p.Export(context.Background(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestPlanPersistence_ImportRejectsNonObjects(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPersistence(t)
	require.NoError(t, p.SaveStrength(ctx, StrengthPlan{TransitionRest: 15}))

	for _, raw := range []string{`[1,2]`, `"text"`, `null`, `{broken`, ``} {
		assert.ErrorIs(t, p.ImportBytes(ctx, []byte(raw)), ErrInvalidBackup, "input %q", raw)
	}
	assert.Equal(t, 15, p.Load(ctx).Strength.TransitionRest, "failed imports leave data alone")
	assert.Contains(t, readStoredDoc(t, st), "strengthPlan")

	err := p.Import(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestPlanPersistence_ClearAll(t *testing.T) {
	ctx := context.Background()
	p, st := newTestPersistence(t)
	require.NoError(t, p.SaveHIIT(ctx, HIITPlan{WorkSeconds: 30, RestSeconds: 30, Rounds: 3}))

	require.NoError(t, p.ClearAll(ctx))

	_, err := st.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, DefaultSavedPlans(), p.Load(ctx))
}
