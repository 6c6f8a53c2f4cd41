// Package config loads ahpgen settings from defaults, an optional YAML file
// and AHP_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "ahpgen.yaml"

type Config struct {
	Render RenderConfig `yaml:"render"`
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Theme  ThemeConfig  `yaml:"theme"`
}

type RenderConfig struct {
	Comparison string `yaml:"comparison" env:"AHP_COMPARISON"`
	Index      string `yaml:"index" env:"AHP_INDEX"`
	Output     string `yaml:"output" env:"AHP_OUTPUT"`
	Choice1    string `yaml:"choice1" env:"AHP_CHOICE1"`
	Choice2    string `yaml:"choice2" env:"AHP_CHOICE2"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"AHP_ADDR"`
	TemplatesDir    string        `yaml:"templates_dir" env:"AHP_TEMPLATES_DIR"`
	StaticDir       string        `yaml:"static_dir" env:"AHP_STATIC_DIR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"AHP_SHUTDOWN_TIMEOUT"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" env:"AHP_STORE_DRIVER"`
	DSN    string `yaml:"dsn" env:"AHP_STORE_DSN"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"AHP_LOG_LEVEL"`
	Format string `yaml:"format" env:"AHP_LOG_FORMAT"`
}

type ThemeConfig struct {
	Name    string            `yaml:"name" env:"AHP_THEME"`
	Variant string            `yaml:"variant" env:"AHP_THEME_VARIANT"`
	Tokens  map[string]string `yaml:"tokens" env:"AHP_THEME_TOKENS"`
}

// Defaults mirrors the fixed paths and labels of the original generator.
func Defaults() Config {
	return Config{
		Render: RenderConfig{
			Comparison: "comparison.html",
			Index:      "index.html",
			Output:     "test/test.html",
			Choice1:    "Cracow University of Technology",
			Choice2:    "Is better",
		},
		Server: ServerConfig{
			Addr:            "0.0.0.0:8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Driver: "memory",
			DSN:    "data/ahpgen.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Configured reports whether any theme setting was given. An unset theme
// leaves {THEME_STYLE} untouched when rendering to a file.
func (t ThemeConfig) Configured() bool {
	return strings.TrimSpace(t.Name) != "" || strings.TrimSpace(t.Variant) != "" || len(t.Tokens) > 0
}

// Load builds a Config from Defaults, the YAML file at path and the
// environment. A missing file is only an error when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	switch strings.ToLower(c.Store.Driver) {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("config: unsupported store driver %q", c.Store.Driver)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config: shutdown timeout must not be negative")
	}
	return nil
}
