package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/alnah/go-cbz2pdf/internal/config"
)

// envPrefix is prepended to every recognized variable name.
const envPrefix = "CBZ2PDF"

// ErrInvalidEnv indicates an environment variable with an unparsable value.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string `envconfig:"CONFIG"`      // CBZ2PDF_CONFIG: config file path
	OutputDir  string `envconfig:"OUTPUT_DIR"`  // CBZ2PDF_OUTPUT_DIR: output directory
	ScratchDir string `envconfig:"SCRATCH_DIR"` // CBZ2PDF_SCRATCH_DIR: scratch root
	Order      string `envconfig:"ORDER"`       // CBZ2PDF_ORDER: lexical, natural
	Workers    *int   `envconfig:"WORKERS"`     // CBZ2PDF_WORKERS: parallel archives (0 = auto)
	LogLevel   string `envconfig:"LOG_LEVEL"`   // CBZ2PDF_LOG_LEVEL: debug, info, warn, error
	ShareDir   string `envconfig:"SHARE_DIR"`   // CBZ2PDF_SHARE_DIR: share directory
}

// knownEnvVars lists valid CBZ2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CBZ2PDF_CONFIG":      true,
	"CBZ2PDF_OUTPUT_DIR":  true,
	"CBZ2PDF_SCRATCH_DIR": true,
	"CBZ2PDF_ORDER":       true,
	"CBZ2PDF_WORKERS":     true,
	"CBZ2PDF_LOG_LEVEL":   true,
	"CBZ2PDF_SHARE_DIR":   true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() (*envConfig, error) {
	var cfg envConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}
	return &cfg, nil
}

// warnUnknownEnvVars prints warnings for unrecognized CBZ2PDF_* variables.
// Helps catch typos like CBZ2PDF_OUTPUTDIR instead of CBZ2PDF_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix+"_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values over the loaded config.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.ScratchDir != "" {
		cfg.Scratch.Dir = env.ScratchDir
	}
	if env.Order != "" {
		cfg.Order = env.Order
	}
	if env.Workers != nil {
		cfg.Workers = *env.Workers
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.ShareDir != "" {
		cfg.Share.Dir = env.ShareDir
	}
}
