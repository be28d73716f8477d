package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("zbf", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.HIIT.Work)
	assert.Equal(t, 10, cfg.HIIT.Rest)
	assert.Equal(t, 8, cfg.HIIT.Rounds)
	assert.Equal(t, 60, cfg.Strength.TransitionRest)
	assert.Equal(t, 50*time.Millisecond, cfg.Runner.TickInterval)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, "zbf-backup.json", cfg.Export.Path)
	assert.Equal(t, filepath.Join(cfg.Data.Dir, "zbf.db"), cfg.DBPath())
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zbf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hiit:\n  work: 45\n  rounds: 3\nstrength:\n  transition_rest: 90\n"), 0644))
	t.Setenv("ZBF_HIIT_ROUNDS", "12")

	cfg, err := Load(newFlags(t, "--config", path, "--data-dir", dir, "--mute", "--tick", "100ms"))
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.HIIT.Work)
	assert.Equal(t, 12, cfg.HIIT.Rounds, "env overrides the file")
	assert.Equal(t, 90, cfg.Strength.TransitionRest)
	assert.Equal(t, dir, cfg.Data.Dir)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 100*time.Millisecond, cfg.Runner.TickInterval)
	assert.Equal(t, filepath.Join(dir, "zbf.log"), cfg.LogPath())
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestValidate_ClampsWorkoutBounds(t *testing.T) {
	cfg := Config{
		HIIT:     HIITConfig{Work: 1, Rest: 999, Rounds: 0},
		Strength: StrengthConfig{TransitionRest: -4},
		Data:     DataConfig{Dir: "/tmp/zbf", DBFile: "zbf.db"},
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.HIIT.Work)
	assert.Equal(t, 300, cfg.HIIT.Rest)
	assert.Equal(t, 1, cfg.HIIT.Rounds)
	assert.Equal(t, 0, cfg.Strength.TransitionRest)
	assert.Equal(t, 50*time.Millisecond, cfg.Runner.TickInterval)
}

func TestValidate_RejectsEmptyDataDir(t *testing.T) {
	cfg := Config{Data: DataConfig{DBFile: "zbf.db"}}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
