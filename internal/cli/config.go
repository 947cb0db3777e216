package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Flag defaults. A config file value only replaces a setting that still
// holds its default.
const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
	defaultCacheKind = "json"
	defaultFormat    = "json"
	defaultOutput    = "-"
)

// Config holds the settings shared by all commands. Flags bind into one
// Config and a config file decodes into another; the two are merged before
// a command runs.
type Config struct {
	LogLevel   string `yaml:"log_level" toml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat  string `yaml:"log_format" toml:"log_format" json:"log_format" validate:"omitempty,oneof=text json"`
	CacheKind  string `yaml:"cache" toml:"cache" json:"cache" validate:"omitempty,oneof=json sqlite none"`
	CacheDir   string `yaml:"cache_dir" toml:"cache_dir" json:"cache_dir"`
	Dir        string `yaml:"dir" toml:"dir" json:"dir"`
	FileEnding string `yaml:"fe" toml:"fe" json:"fe"`
	Tag        string `yaml:"tag" toml:"tag" json:"tag"`
	Format     string `yaml:"format" toml:"format" json:"format" validate:"omitempty,oneof=json yaml yml cbor"`
	Output     string `yaml:"output" toml:"output" json:"output"`
}

var validate = validator.New()

// loadConfigFile reads path and decodes it according to its extension.
func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// apply copies file values into c wherever c still holds a default.
func (c *Config) apply(file *Config) {
	if c.LogLevel == defaultLogLevel && file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if c.LogFormat == defaultLogFormat && file.LogFormat != "" {
		c.LogFormat = file.LogFormat
	}
	if c.CacheKind == defaultCacheKind && file.CacheKind != "" {
		c.CacheKind = file.CacheKind
	}
	if c.CacheDir == "" {
		c.CacheDir = file.CacheDir
	}
	if c.Dir == "" {
		c.Dir = file.Dir
	}
	if c.FileEnding == "" {
		c.FileEnding = file.FileEnding
	}
	if c.Tag == "" {
		c.Tag = file.Tag
	}
	if c.Format == defaultFormat && file.Format != "" {
		c.Format = file.Format
	}
	if c.Output == defaultOutput && file.Output != "" {
		c.Output = file.Output
	}
}

// resolve merges the config file, if any, and validates the result.
func (c *Config) resolve(configPath string) error {
	if configPath != "" {
		file, err := loadConfigFile(configPath)
		if err != nil {
			return err
		}
		c.apply(file)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// cacheDir returns the configured cache directory or a per-user default.
func (c *Config) cacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "bdd2doc")
	}
	return filepath.Join(os.TempDir(), "bdd2doc")
}
