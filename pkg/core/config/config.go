package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Presenter modes for the halt screen
const (
	PresenterAuto    = "auto"
	PresenterTUI     = "tui"
	PresenterConsole = "console"
	PresenterNone    = "none"
)

// Config holds the complete reporter configuration
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Cascade CascadeConfig `toml:"cascade" yaml:"cascade"`
	Halt    HaltConfig    `toml:"halt" yaml:"halt"`
	Signals SignalsConfig `toml:"signals" yaml:"signals"`
	Journal JournalConfig `toml:"journal" yaml:"journal"`
}

// LogConfig holds the guru log file and diagnostic logger settings
type LogConfig struct {
	Path   string `toml:"path" yaml:"path"`
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// CascadeConfig holds the cascade detector tuning
type CascadeConfig struct {
	Threshold uint          `toml:"threshold" yaml:"threshold"`
	Window    Duration      `toml:"window" yaml:"window"`
	Weights   WeightsConfig `toml:"weights" yaml:"weights"`
}

// WeightsConfig holds the cascade weight per severity
type WeightsConfig struct {
	Warn     uint `toml:"warn" yaml:"warn"`
	Error    uint `toml:"error" yaml:"error"`
	Critical uint `toml:"critical" yaml:"critical"`
}

// HaltConfig holds halt screen settings
type HaltConfig struct {
	DisplayWidth int    `toml:"display_width" yaml:"display_width"`
	Presenter    string `toml:"presenter" yaml:"presenter"`
}

// SignalsConfig holds signal interception settings
type SignalsConfig struct {
	Disabled bool `toml:"disabled" yaml:"disabled"`
}

// JournalConfig holds halt journal settings
type JournalConfig struct {
	Enabled       bool   `toml:"enabled" yaml:"enabled"`
	Path          string `toml:"path" yaml:"path"`
	RetentionDays int    `toml:"retention_days" yaml:"retention_days"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the GURU_CONFIG environment variable
// or the default locations
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("GURU_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./configs/guru.toml",
			"./guru.toml",
			"./guru.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/guru/guru.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, fmt.Errorf("no config file found, set GURU_CONFIG or create configs/guru.toml")
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Log
	if c.Log.Path == "" {
		c.Log.Path = "log.txt"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Cascade
	if c.Cascade.Threshold == 0 {
		c.Cascade.Threshold = 20
	}
	if c.Cascade.Window.Duration == 0 {
		c.Cascade.Window.Duration = 30 * time.Second
	}
	if c.Cascade.Weights.Warn == 0 {
		c.Cascade.Weights.Warn = 1
	}
	if c.Cascade.Weights.Error == 0 {
		c.Cascade.Weights.Error = 2
	}
	if c.Cascade.Weights.Critical == 0 {
		c.Cascade.Weights.Critical = 4
	}

	// Halt
	if c.Halt.DisplayWidth == 0 {
		c.Halt.DisplayWidth = 39
	}
	if c.Halt.Presenter == "" {
		c.Halt.Presenter = PresenterAuto
	}

	// Journal
	if c.Journal.Path == "" {
		c.Journal.Path = "./data/guru.db"
	}
	if c.Journal.RetentionDays == 0 {
		c.Journal.RetentionDays = 30
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Log.Path = os.ExpandEnv(c.Log.Path)
	c.Journal.Path = os.ExpandEnv(c.Journal.Path)
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	switch c.Halt.Presenter {
	case PresenterAuto, PresenterTUI, PresenterConsole, PresenterNone:
	default:
		return fmt.Errorf("invalid halt.presenter %q (auto, tui, console, none)", c.Halt.Presenter)
	}
	if c.Cascade.Window.Duration < 0 {
		return fmt.Errorf("invalid cascade.window %s", c.Cascade.Window.Duration)
	}
	if c.Halt.DisplayWidth < 0 {
		return fmt.Errorf("invalid halt.display_width %d", c.Halt.DisplayWidth)
	}
	return nil
}
