// Package config loads kucc settings from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/kucode/internal/syntax"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "KUCC_CONFIG"

// DefaultMaxErrors bounds the syntax errors collected with recovery.
const DefaultMaxErrors = 10

// Format is a configuration file format.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Config holds compiler settings.
type Config struct {
	BoolPolicy syntax.BoolPolicy `yaml:"bool_policy" toml:"bool_policy"`
	Recover    bool              `yaml:"recover" toml:"recover"`
	MaxErrors  int               `yaml:"max_errors" toml:"max_errors"`
	Color      bool              `yaml:"color" toml:"color"`

	path string
}

// Default returns the settings used without a config file.
func Default() *Config {
	return &Config{
		BoolPolicy: syntax.Syntactic,
		Recover:    true,
		MaxErrors:  DefaultMaxErrors,
		Color:      true,
	}
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string { return c.path }

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.MaxErrors)
	}
	return nil
}

// Load reads a config file. Keys absent from the file keep their
// default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// LoadFromEnv loads the file named by $KUCC_CONFIG, or else the first of
// kucc.yaml, kucc.yml and kucc.toml found in dir. Without any file it
// returns the defaults.
func LoadFromEnv(dir string) (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(os.ExpandEnv(path))
	}
	for _, name := range []string{"kucc.yaml", "kucc.yml", "kucc.toml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}
	return Default(), nil
}

// Parse decodes config content in the given format over the defaults.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("TOML parse error: unknown keys %s", strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DetectFormat determines the format from a file extension. Files that
// are neither .toml nor .yaml/.yml are read as YAML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}
