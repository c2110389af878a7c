package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	cbz2pdf "github.com/alnah/go-cbz2pdf"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// AppDirName is the directory searched under os.UserConfigDir for named configs.
const AppDirName = "go-cbz2pdf"

// MaxConfigSize limits config input to prevent memory exhaustion (1MB).
const MaxConfigSize = 1 << 20

// MaxWorkers is the converter's upper bound on parallel conversions.
const MaxWorkers = cbz2pdf.MaxWorkers

// Accepted enum values.
var (
	validOrders     = []string{"lexical", "natural"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// Config holds all configuration for a conversion run.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Scratch ScratchConfig `yaml:"scratch"`
	Order   string        `yaml:"order"`   // "lexical" (default) or "natural"
	Workers int           `yaml:"workers"` // 0 = auto, default 1
	Log     LogConfig     `yaml:"log"`
	Share   ShareConfig   `yaml:"share"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = no output dir configured
}

// ScratchConfig defines where archives are extracted.
type ScratchConfig struct {
	Dir string `yaml:"dir"` // Empty = <os.TempDir()>/cbz2pdf
}

// LogConfig defines diagnostic logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn (default), error
	Format string `yaml:"format"` // console (default) or json
}

// ShareConfig defines where converted documents are delivered after a batch.
type ShareConfig struct {
	Dir  string     `yaml:"dir"` // Copy outputs into this directory
	SFTP SFTPConfig `yaml:"sftp"`
}

// SFTPConfig defines an SFTP upload target. Addr empty = disabled.
type SFTPConfig struct {
	Addr       string `yaml:"addr"` // host:port
	User       string `yaml:"user"`
	KeyFile    string `yaml:"keyFile"`
	KnownHosts string `yaml:"knownHosts"` // Empty = ~/.ssh/known_hosts
	RemoteDir  string `yaml:"remoteDir"`
}

// Enabled reports whether an SFTP target is configured.
func (s SFTPConfig) Enabled() bool {
	return s.Addr != ""
}

// HasShareTarget reports whether any share target is configured.
func (c *Config) HasShareTarget() bool {
	return c.Share.Dir != "" || c.Share.SFTP.Enabled()
}

// Validate checks enum values and bounds.
// Called automatically by LoadConfig, but available for callers that build
// a Config from flags or environment.
func (c *Config) Validate() error {
	if err := validateEnum("order", c.Order, validOrders); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidConfig, MaxWorkers, c.Workers)
	}
	if err := validateEnum("log.level", c.Log.Level, validLogLevels); err != nil {
		return err
	}
	if err := validateEnum("log.format", c.Log.Format, validLogFormats); err != nil {
		return err
	}

	if s := c.Share.SFTP; s.Enabled() {
		if s.User == "" {
			return fmt.Errorf("%w: share.sftp.user: required when share.sftp.addr is set", ErrInvalidConfig)
		}
		if s.KeyFile == "" {
			return fmt.Errorf("%w: share.sftp.keyFile: required when share.sftp.addr is set", ErrInvalidConfig)
		}
	}

	return nil
}

// validateEnum accepts empty values and any case-insensitive match of allowed.
func validateEnum(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: invalid value %q (must be %s)", ErrInvalidConfig, field, value, strings.Join(allowed, " or "))
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Order:   "lexical",
		Workers: 1,
		Log:     LogConfig{Level: "warn", Format: "console"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// unmarshalStrict rejects empty or oversized input and unknown fields.
func unmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("empty config file")
	}
	if len(data) > MaxConfigSize {
		return fmt.Errorf("input exceeds maximum size: %d bytes (max %d)", len(data), MaxConfigSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-cbz2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
