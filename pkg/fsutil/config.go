package fsutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings callers usually want to keep out of code.
type Config struct {
	// TempRoot is where temporary directories are created. Empty means
	// os.TempDir().
	TempRoot string `yaml:"temp_root"`
	// TempPrefix is the default name prefix for temporary directories.
	TempPrefix string `yaml:"temp_prefix"`
	// MaxAttempts bounds temp-name collision retries.
	MaxAttempts int `yaml:"max_attempts"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		TempPrefix:  "fsutil-",
		MaxAttempts: DefaultMaxAttempts,
		LogLevel:    "warn",
	}
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return Config{}, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}
	// #nosec G304 -- config paths are provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("strict config parse error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative, got %d", c.MaxAttempts)
	}
	if c.LogLevel != "" {
		if _, err := LogLevelFromString(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
		}
	}
	if c.TempPrefix != "" {
		if err := checkSegment("config", c.TempPrefix); err != nil {
			return err
		}
		if strings.ContainsAny(c.TempPrefix, `/\`) {
			return invalidPath("config", c.TempPrefix, "temp_prefix must not contain a separator")
		}
	}
	if c.TempRoot != "" {
		if err := checkSegment("config", c.TempRoot); err != nil {
			return err
		}
	}
	return nil
}

// TempDirFactory builds a factory from the config, creating and deleting
// through o. A nil o uses the OS filesystem.
func (c Config) TempDirFactory(o *Ops) (*TempDirFactory, error) {
	root := c.TempRoot
	if root == "" {
		root = os.TempDir()
	}
	if o == nil {
		o = std
	}
	return NewTempDirFactory(root, WithOps(o), WithMaxAttempts(c.MaxAttempts))
}
