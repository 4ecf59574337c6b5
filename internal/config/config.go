// Package config loads docquiz settings from a YAML file, the environment
// and an optional .env file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/docquiz/internal/grading"
	"github.com/abhisek/docquiz/internal/quizgen"
)

// Environment variables read by Load.
const (
	EnvConfig = "DOCQUIZ_CONFIG"
	EnvDB     = "DOCQUIZ_DB"
	EnvLog    = "DOCQUIZ_LOG"
)

// Config is the full set of tunables.
type Config struct {
	// DBPath is the SQLite database file. Empty means the store default.
	DBPath string `yaml:"db_path"`

	// LogMode selects the logger: dev, debug or prod.
	LogMode string `yaml:"log"`

	Quiz    quizgen.Config `yaml:"quiz"`
	Grading grading.Config `yaml:"grading"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogMode: "dev",
		Quiz:    quizgen.DefaultConfig(),
		Grading: grading.DefaultConfig(),
	}
}

// ParseError reports a config file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load builds the configuration. Values come from, lowest first: the
// defaults, the YAML file at path (or $DOCQUIZ_CONFIG, or the user config
// dir if a file exists there), then DOCQUIZ_DB and DOCQUIZ_LOG. Keys in
// the file that docquiz does not know are an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = defaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(data, cfg); err != nil {
				return nil, &ParseError{Path: path, Err: err}
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLog); v != "" {
		cfg.LogMode = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// defaultPath returns $XDG_CONFIG_HOME/docquiz/config.yaml, or the
// platform config dir equivalent.
func defaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	return filepath.Join(dir, "docquiz", "config.yaml")
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none
// are given) into the environment. Variables already set are kept and
// missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

var logModes = map[string]bool{"": true, "dev": true, "development": true, "debug": true, "prod": true, "production": true}

// Validate checks every section.
func (c *Config) Validate() error {
	if !logModes[strings.ToLower(strings.TrimSpace(c.LogMode))] {
		return fmt.Errorf("unknown log mode %q", c.LogMode)
	}
	if err := c.Quiz.Validate(); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}
	if err := c.Grading.Validate(); err != nil {
		return fmt.Errorf("grading: %w", err)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
