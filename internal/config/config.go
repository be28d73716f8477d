package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps validation failures that cannot be clamped
var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "ZBF"

type HIITConfig struct {
	Work   int `mapstructure:"work"`
	Rest   int `mapstructure:"rest"`
	Rounds int `mapstructure:"rounds"`
}

type StrengthConfig struct {
	TransitionRest int `mapstructure:"transition_rest"`
}

type RunnerConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

type DataConfig struct {
	Dir    string `mapstructure:"dir"`
	DBFile string `mapstructure:"db_file"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ExportConfig struct {
	Path string `mapstructure:"path"`
}

// Config is the fully resolved application configuration
type Config struct {
	HIIT     HIITConfig     `mapstructure:"hiit"`
	Strength StrengthConfig `mapstructure:"strength"`
	Runner   RunnerConfig   `mapstructure:"runner"`
	Data     DataConfig     `mapstructure:"data"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Log      LogConfig      `mapstructure:"log"`
	Export   ExportConfig   `mapstructure:"export"`
}

// DBPath is the SQLite file inside the data dir
func (c Config) DBPath() string {
	return filepath.Join(c.Data.Dir, c.Data.DBFile)
}

// LogPath resolves a relative log file against the data dir
func (c Config) LogPath() string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Data.Dir, c.Log.File)
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".zbf")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hiit.work", 20)
	v.SetDefault("hiit.rest", 10)
	v.SetDefault("hiit.rounds", 8)
	v.SetDefault("strength.transition_rest", 60)
	v.SetDefault("runner.tick_interval", 50*time.Millisecond)
	v.SetDefault("data.dir", defaultDataDir())
	v.SetDefault("data.db_file", "zbf.db")
	v.SetDefault("catalog.path", "")
	v.SetDefault("audio.enabled", true)
	v.SetDefault("log.file", "zbf.log")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("export.path", "zbf-backup.json")
}

// BindFlags registers the command line overrides on fs
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("data-dir", "", "directory holding the database and log")
	fs.String("catalog", "", "exercise catalog file overriding the built-in one")
	fs.Bool("mute", false, "disable audio cues")
	fs.Duration("tick", 0, "runner tick interval")
}

// Load resolves configuration from defaults, an optional YAML file, ZBF_* env vars and fs
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
		bindFlag(v, fs, "data.dir", "data-dir")
		bindFlag(v, fs, "catalog.path", "catalog")
		bindFlag(v, fs, "runner.tick_interval", "tick")
		if fs.Changed("mute") {
			mute, _ := fs.GetBool("mute")
			v.Set("audio.enabled", !mute)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// bindFlag applies a flag only when set so it does not mask env or file values
func bindFlag(v *viper.Viper, fs *pflag.FlagSet, key, flag string) {
	f := fs.Lookup(flag)
	if f == nil || !f.Changed {
		return
	}
	_ = v.BindPFlag(key, f)
}

// Validate clamps workout values into range and rejects unusable paths
func (c *Config) Validate() error {
	c.HIIT.Work = clamp(c.HIIT.Work, 5, 300)
	c.HIIT.Rest = clamp(c.HIIT.Rest, 0, 300)
	c.HIIT.Rounds = clamp(c.HIIT.Rounds, 1, 50)
	if c.Strength.TransitionRest < 0 {
		c.Strength.TransitionRest = 0
	}
	if c.Runner.TickInterval <= 0 {
		c.Runner.TickInterval = 50 * time.Millisecond
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("%w: data.dir is empty", ErrInvalidConfig)
	}
	if c.Data.DBFile == "" {
		return fmt.Errorf("%w: data.db_file is empty", ErrInvalidConfig)
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 5
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
