// Package config defines the configuration schema for contextkeeper and the
// validation layer that runs before any value reaches the core. JSON keys
// use camelCase to match the persisted settings records.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BoundsConfig mirrors the per-mode capacity limits. Every bound must be at
// least 1; Validate enforces that before the core sees the value.
type BoundsConfig struct {
	MaxHistoryItems int `json:"maxHistoryItems" yaml:"maxHistoryItems"`
	MaxPatterns     int `json:"maxPatterns" yaml:"maxPatterns"`
	MaxMistakes     int `json:"maxMistakes" yaml:"maxMistakes"`
}

// MemoryConfig configures the context memory system.
type MemoryConfig struct {
	Enabled      bool                    `json:"enabled" yaml:"enabled"`
	Mode         string                  `json:"mode" yaml:"mode"`
	Fallback     BoundsConfig            `json:"fallback" yaml:"fallback"`
	ModeSettings map[string]BoundsConfig `json:"modeSettings" yaml:"modeSettings"`
}

// RedisConfig holds connection details for the redis storage backend.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db" yaml:"db"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// StorageConfig selects and configures the persistent key-value backend.
type StorageConfig struct {
	Backend   string      `json:"backend" yaml:"backend"` // "file" | "memory" | "redis"
	Dir       string      `json:"dir" yaml:"dir"`
	Rehydrate bool        `json:"rehydrate" yaml:"rehydrate"`
	Redis     RedisConfig `json:"redis" yaml:"redis"`
}

// WatchConfig configures the periodic freshness checks.
type WatchConfig struct {
	Enabled         bool `json:"enabled" yaml:"enabled"`
	IntervalMinutes int  `json:"intervalMinutes" yaml:"intervalMinutes"`
}

// Config is the root configuration object.
type Config struct {
	Memory  MemoryConfig  `json:"memory" yaml:"memory"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Watch   WatchConfig   `json:"watch" yaml:"watch"`
}

// DefaultConfig returns the enabled, file-backed, code-mode configuration.
func DefaultConfig() Config {
	return Config{
		Memory: MemoryConfig{
			Enabled:  true,
			Mode:     "code",
			Fallback: BoundsConfig{MaxHistoryItems: 20, MaxPatterns: 10, MaxMistakes: 10},
			ModeSettings: map[string]BoundsConfig{
				"code": {MaxHistoryItems: 20, MaxPatterns: 10, MaxMistakes: 10},
				"plan": {MaxHistoryItems: 15, MaxPatterns: 8, MaxMistakes: 5},
				"ask":  {MaxHistoryItems: 10, MaxPatterns: 5, MaxMistakes: 5},
			},
		},
		Storage: StorageConfig{
			Backend:   "file",
			Dir:       filepath.Join(DataDir(), "store"),
			Rehydrate: true,
			Redis:     RedisConfig{Addr: "localhost:6379"},
		},
		Watch: WatchConfig{Enabled: false, IntervalMinutes: 5},
	}
}

// ValidationError reports one invalid configuration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// ValidationErrors aggregates every invalid field found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

func checkBounds(errs ValidationErrors, prefix string, b BoundsConfig) ValidationErrors {
	if b.MaxHistoryItems < 1 {
		errs = append(errs, ValidationError{prefix + ".maxHistoryItems", "must be at least 1"})
	}
	if b.MaxPatterns < 1 {
		errs = append(errs, ValidationError{prefix + ".maxPatterns", "must be at least 1"})
	}
	if b.MaxMistakes < 1 {
		errs = append(errs, ValidationError{prefix + ".maxMistakes", "must be at least 1"})
	}
	return errs
}

// Validate checks the whole configuration, returning every violation at
// once. A nil return means the core may consume the value as-is.
func (c Config) Validate() error {
	var errs ValidationErrors

	errs = checkBounds(errs, "memory.fallback", c.Memory.Fallback)
	for mode, b := range c.Memory.ModeSettings {
		errs = checkBounds(errs, "memory.modeSettings."+mode, b)
	}

	switch c.Storage.Backend {
	case "file", "memory", "redis":
	default:
		errs = append(errs, ValidationError{"storage.backend", fmt.Sprintf("unknown backend %q", c.Storage.Backend)})
	}
	if c.Storage.Backend == "file" && c.Storage.Dir == "" {
		errs = append(errs, ValidationError{"storage.dir", "required for the file backend"})
	}
	if c.Storage.Backend == "redis" && c.Storage.Redis.Addr == "" {
		errs = append(errs, ValidationError{"storage.redis.addr", "required for the redis backend"})
	}

	if c.Watch.Enabled && c.Watch.IntervalMinutes < 1 {
		errs = append(errs, ValidationError{"watch.intervalMinutes", "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ConfigPath returns the default configuration file path:
// ~/.contextkeeper/config.json.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".contextkeeper/config.json"
	}
	return filepath.Join(home, ".contextkeeper", "config.json")
}

// DataDir returns the contextkeeper data directory: ~/.contextkeeper.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".contextkeeper"
	}
	return filepath.Join(home, ".contextkeeper")
}
