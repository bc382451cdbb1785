package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tagx/internal/tags"
)

//go:embed config.example.toml
var exampleConf []byte

// MaxWorkers bounds [EditorConfig.Workers].
const MaxWorkers = 10

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Locale   LocaleConfig   `toml:"locale"`
	Import   ImportConfig   `toml:"import"`
	Database DatabaseConfig `toml:"database"`
	History  HistoryConfig  `toml:"history"`
	Log      LogConfig      `toml:"log"`
}

// EditorConfig controls how edited files are written back.
type EditorConfig struct {
	Backup       bool    `toml:"backup"`
	BackupSuffix string  `toml:"backup_suffix"`
	Workers      int     `toml:"workers"`
	RateLimit    float64 `toml:"rate_limit"`
}

// LocaleConfig controls how dates are parsed.
type LocaleConfig struct {
	DateOrder string `toml:"date_order"`
	Timezone  string `toml:"timezone"`
}

// ImportConfig controls how import files are read.
type ImportConfig struct {
	Delimiter string `toml:"delimiter"`
	SkipEmpty bool   `toml:"skip_empty"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// HistoryConfig toggles the edit history.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that cannot be caught by decoding alone.
func (c *Config) Validate() error {
	if c.Editor.Workers < 1 || c.Editor.Workers > MaxWorkers {
		return fmt.Errorf("%w: editor.workers must be between 1 and %d, got %d", ErrInvalidConfig, MaxWorkers, c.Editor.Workers)
	}
	if c.Editor.RateLimit <= 0 {
		return fmt.Errorf("%w: editor.rate_limit must be positive", ErrInvalidConfig)
	}
	if c.Editor.Backup && c.Editor.BackupSuffix == "" {
		return fmt.Errorf("%w: editor.backup_suffix is required when backups are enabled", ErrInvalidConfig)
	}
	if _, err := c.Locale.Locale(); err != nil {
		return err
	}
	if _, err := c.Import.DelimiterRune(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Locale converts the locale section to the calendar rules used by the coercer.
func (c LocaleConfig) Locale() (tags.Locale, error) {
	order, err := tags.ParseDateOrder(c.DateOrder)
	if err != nil {
		return tags.Locale{}, fmt.Errorf("%w: locale.date_order: %v", ErrInvalidConfig, err)
	}

	loc := time.UTC
	if c.Timezone != "" {
		if loc, err = time.LoadLocation(c.Timezone); err != nil {
			return tags.Locale{}, fmt.Errorf("%w: locale.timezone: %v", ErrInvalidConfig, err)
		}
	}

	return tags.Locale{DateOrder: order, Location: loc}, nil
}

// DelimiterRune returns the single character configured as the CSV delimiter.
func (c ImportConfig) DelimiterRune() (rune, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("%w: import.delimiter must be a single character, got %q", ErrInvalidConfig, c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%w: import.delimiter cannot be %q", ErrInvalidConfig, r)
	}
	return r, nil
}
