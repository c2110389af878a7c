package cbz2pdf

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ScratchDirName is the directory created under the system temporary
// directory to hold per-conversion scratch directories.
const ScratchDirName = "cbz2pdf"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	scratchRoot string
	outputDir   string
	ordering    Ordering
	workers     int
}

// DefaultScratchRoot returns the process-wide scratch root.
func DefaultScratchRoot() string {
	return filepath.Join(os.TempDir(), ScratchDirName)
}

// WithScratchRoot sets the directory under which scratch directories are created.
func WithScratchRoot(dir string) Option {
	return func(c *Converter) {
		c.cfg.scratchRoot = dir
	}
}

// WithOutputDir sets the destination directory of produced documents.
// Empty means the system temporary directory.
func WithOutputDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.outputDir = dir
	}
}

// WithOrdering selects the page ordering strategy.
func WithOrdering(o Ordering) Option {
	return func(c *Converter) {
		c.cfg.ordering = o
	}
}

// WithWorkers sets how many archives are converted at once. 1 (the default)
// processes the batch strictly one archive at a time.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.cfg.workers = n
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// withHandleFunc overrides scratch handle generation (tests).
func withHandleFunc(fn func() string) Option {
	return func(c *Converter) {
		c.newHandle = fn
	}
}
