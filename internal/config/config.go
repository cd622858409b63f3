// Package config loads athena.toml, the optional settings file of the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"athena/internal/parser"
)

// FileName is the settings file looked up from the working directory upwards.
const FileName = "athena.toml"

// MaxPrecision bounds [eval].precision in bits.
const MaxPrecision = 1 << 16

type Config struct {
	Parser ParserConfig `toml:"parser"`
	Eval   EvalConfig   `toml:"eval"`
	Output OutputConfig `toml:"output"`
	Batch  BatchConfig  `toml:"batch"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type ParserConfig struct {
	MaxErrors uint `toml:"max_errors"`
}

type EvalConfig struct {
	Simplify  bool `toml:"simplify"`
	Approx    bool `toml:"approx"`
	Precision uint `toml:"precision"`
}

type OutputConfig struct {
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

type BatchConfig struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// Default returns the settings used when no athena.toml exists.
func Default() Config {
	return Config{
		Parser: ParserConfig{MaxErrors: parser.DefaultMaxErrors},
		Eval:   EvalConfig{Precision: 64},
		Output: OutputConfig{Color: "auto", Format: "pretty"},
	}
}

// Find walks up from startDir and returns the first athena.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest athena.toml above startDir, or the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults. Keys missing from the file keep their
// default value; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("eval", "precision") && cfg.Eval.Precision == 0 {
		return Config{}, fmt.Errorf("%s: [eval].precision must be positive", path)
	}
	if meta.IsDefined("parser", "max_errors") && cfg.Parser.MaxErrors == 0 {
		return Config{}, fmt.Errorf("%s: [parser].max_errors must be positive", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	switch c.Output.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("[output].format must be pretty or json, got %q", c.Output.Format)
	}
	if c.Eval.Precision > MaxPrecision {
		return fmt.Errorf("[eval].precision must be at most %d", MaxPrecision)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("[batch].jobs must not be negative")
	}
	return nil
}
