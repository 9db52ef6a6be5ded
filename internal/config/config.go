// Package config loads the optional style configuration for a run. A
// malformed configuration file is fatal for the whole invocation, unlike
// every per-file failure kind, so the error type is distinguishable.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultLineLength matches ruff's default line width.
const DefaultLineLength = 88

// Config carries the style settings threaded through every entry point.
type Config struct {
	// LineLength is the target line width handed to the external formatter.
	LineLength int `toml:"line-length" yaml:"line-length" json:"line-length"`

	// RuffCommand overrides the ruff executable. Empty falls back to the
	// RUFF_COMMAND environment variable, then to "ruff" on the search path.
	RuffCommand string `toml:"ruff-command" yaml:"ruff-command" json:"ruff-command"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{LineLength: DefaultLineLength}
}

// BadConfigError reports a malformed configuration file. It aborts the
// entire invocation before any file is processed.
type BadConfigError struct {
	Path string
	Err  error
}

func (e *BadConfigError) Error() string {
	return fmt.Sprintf("bad configuration file %s: %v", e.Path, e.Err)
}

func (e *BadConfigError) Unwrap() error {
	return e.Err
}

// fileNames are the recognized configuration file names, in lookup order.
var fileNames = []string{"ruff-cgx.toml", "ruff-cgx.yaml", "ruff-cgx.yml", "ruff-cgx.json"}

// Load reads the named configuration file. The format follows the file
// extension; JSON may contain comments and trailing commas.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &BadConfigError{Path: path, Err: err}
	}

	cfg := Default()
	switch filepath.Ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(jsonc.ToJSON(data), &cfg)
	default:
		err = fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, &BadConfigError{Path: path, Err: err}
	}

	if cfg.LineLength < 0 {
		return Config{}, &BadConfigError{Path: path, Err: fmt.Errorf("line-length must not be negative, got %d", cfg.LineLength)}
	}
	if cfg.LineLength == 0 {
		cfg.LineLength = DefaultLineLength
	}
	return cfg, nil
}

// Search walks upward from dir looking for a configuration file and loads
// the first one found. Absence is not an error: the default configuration
// is returned.
func Search(dir string) (Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Default(), nil
	}
	for {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
