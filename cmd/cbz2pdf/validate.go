package main

import (
	"errors"
	"fmt"
	"os"

	cbz2pdf "github.com/alnah/go-cbz2pdf"
	"github.com/alnah/go-cbz2pdf/internal/config"
	"github.com/alnah/go-cbz2pdf/internal/fileutil"
)

// archiveExtension is the only accepted input extension, matched case-insensitively.
const archiveExtension = ".cbz"

// Sentinel errors for argument validation.
var (
	ErrNoInput            = errors.New("no archive specified")
	ErrIsDirectory        = errors.New("argument is a directory")
	ErrInvalidExtension   = errors.New("file must have .cbz extension")
	ErrFileNotFound       = errors.New("file not found")
	ErrFileNotReadable    = errors.New("file not readable")
	ErrNoDestination      = errors.New("no output directory or share target")
	ErrInvalidOutputDir   = errors.New("invalid output directory")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// validateArchives checks every argument before any conversion starts.
// The first invalid argument stops validation.
func validateArchives(paths []string) error {
	if len(paths) == 0 {
		return ErrNoInput
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrFileNotFound, p)
			}
			return fmt.Errorf("%w: %s: %v", ErrFileNotReadable, p, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s", ErrIsDirectory, p)
		}
		if !fileutil.HasExtension(p, archiveExtension) {
			return fmt.Errorf("%w: %s", ErrInvalidExtension, p)
		}
		if err := fileutil.IsReadable(p); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFileNotReadable, p, err)
		}
	}
	return nil
}

// validateDestination requires an output directory or a share target.
// A given output directory must already exist and be writable.
func validateDestination(cfg *config.Config) error {
	if cfg.Output.Dir == "" {
		if !cfg.HasShareTarget() {
			return ErrNoDestination
		}
		return nil
	}
	if !fileutil.DirExists(cfg.Output.Dir) {
		return fmt.Errorf("%w: %s: not an existing directory", ErrInvalidOutputDir, cfg.Output.Dir)
	}
	if err := fileutil.IsWritableDir(cfg.Output.Dir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidOutputDir, cfg.Output.Dir, err)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > cbz2pdf.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, cbz2pdf.MaxWorkers)
	}
	return nil
}
