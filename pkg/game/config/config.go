package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// DefaultRevealSeconds is the reveal duration written to new config files
const DefaultRevealSeconds = 6

// ErrInvalidConfig marks a config value that was replaced by its default
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds all user-facing configuration for zoo.
type Config struct {
	Puzzle  PuzzleConfig  `toml:"puzzle"`
	Store   StoreConfig   `toml:"store"`
	Display DisplayConfig `toml:"display"`
}

type PuzzleConfig struct {
	RevealSeconds float64 `toml:"reveal_seconds"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type DisplayConfig struct {
	Language  string `toml:"language"`
	LocaleDir string `toml:"locale_dir"`
	Color     bool   `toml:"color"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Puzzle:  PuzzleConfig{RevealSeconds: DefaultRevealSeconds},
		Store:   StoreConfig{Path: filepath.Join("data", "zoo.db")},
		Display: DisplayConfig{Language: "en", LocaleDir: "locales", Color: true},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrCreate is Load, but writes the defaults to path when the file does
// not exist yet so players have something to edit.
func LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Defaults()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
		return cfg, nil
	}
	return Load(path)
}

// Save writes the config as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Normalize replaces invalid values with their defaults, logging a warning
// for each. It returns the substitutions as ErrInvalidConfig errors.
func (c *Config) Normalize(log logrus.FieldLogger) []error {
	def := Defaults()
	var errs []error

	if c.Puzzle.RevealSeconds <= 0 {
		err := fmt.Errorf("%w: puzzle.reveal_seconds = %v, using %v", ErrInvalidConfig, c.Puzzle.RevealSeconds, def.Puzzle.RevealSeconds)
		c.Puzzle.RevealSeconds = def.Puzzle.RevealSeconds
		errs = append(errs, err)
	}
	if c.Store.Path == "" {
		errs = append(errs, fmt.Errorf("%w: store.path is empty, using %s", ErrInvalidConfig, def.Store.Path))
		c.Store.Path = def.Store.Path
	}
	if c.Display.Language == "" {
		c.Display.Language = def.Display.Language
	}
	if c.Display.LocaleDir == "" {
		c.Display.LocaleDir = def.Display.LocaleDir
	}

	if log != nil {
		for _, err := range errs {
			log.WithError(err).Warn("config value replaced")
		}
	}
	return errs
}

// RevealDuration returns the reveal time as a duration
func (c *Config) RevealDuration() time.Duration {
	return time.Duration(c.Puzzle.RevealSeconds * float64(time.Second))
}
