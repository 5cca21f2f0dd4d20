// Package config loads the settings of the contentmodel command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidOutput is returned for an unknown output format.
var ErrInvalidOutput = errors.New("config: invalid output format")

// Output formats.
const (
	OutputHTML     = "html"
	OutputMarkdown = "markdown"
	OutputNotion   = "notion"
	OutputJSON     = "json"
)

type Config struct {
	Log    LogConfig    `toml:"log"`
	Paste  PasteConfig  `toml:"paste"`
	Format FormatConfig `toml:"format"`
	Indent IndentConfig `toml:"indent"`
	Output OutputConfig `toml:"output"`
}

type LogConfig struct {
	// Level is a zap level name.
	Level string `toml:"level"`

	// File, when set, receives JSON log lines, rotated at MaxSizeMB.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

type PasteConfig struct {
	// Sanitize runs pasted HTML through the sanitizer policy.
	Sanitize bool `toml:"sanitize"`

	// ConvertSingleImage classifies a lone pasted <img> as an image paste.
	ConvertSingleImage bool `toml:"convert_single_image"`

	AllowCacheElement bool `toml:"allow_cache_element"`
}

// FormatConfig is the default segment format of parsed documents.
type FormatConfig struct {
	DefaultFontFamily string `toml:"default_font_family"`
	DefaultFontSize   string `toml:"default_font_size"`
	DefaultTextColor  string `toml:"default_text_color"`
}

type IndentConfig struct {
	StepPx float64 `toml:"step_px"`
}

type OutputConfig struct {
	// Format is one of html, markdown, notion or json.
	Format string `toml:"format"`
	Minify bool   `toml:"minify"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Paste: PasteConfig{
			Sanitize:           true,
			ConvertSingleImage: true,
		},
		Indent: IndentConfig{StepPx: 40},
		Output: OutputConfig{Format: OutputHTML},
	}
}

// LoadConfig reads the TOML file at path over the defaults, then applies
// the environment overrides. A missing file leaves the defaults. Variables
// from a .env file in the working directory are loaded first without
// replacing the ones already set.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CONTENTMODEL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CONTENTMODEL_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("CONTENTMODEL_OUTPUT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("CONTENTMODEL_MINIFY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: CONTENTMODEL_MINIFY: %w", err)
		}
		cfg.Output.Minify = b
	}
	if v := os.Getenv("CONTENTMODEL_INDENT_PX"); v != "" {
		px, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: CONTENTMODEL_INDENT_PX: %w", err)
		}
		cfg.Indent.StepPx = px
	}
	return nil
}

// Validate checks the output format and the indentation step.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case OutputHTML, OutputMarkdown, OutputNotion, OutputJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output.Format)
	}
	if c.Indent.StepPx <= 0 {
		return fmt.Errorf("config: indent step must be positive, got %v", c.Indent.StepPx)
	}
	return nil
}

// Save writes cfg as TOML to path.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
