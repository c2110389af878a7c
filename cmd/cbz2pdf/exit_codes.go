package main

import (
	"errors"
	"os"

	cbz2pdf "github.com/alnah/go-cbz2pdf"
	"github.com/alnah/go-cbz2pdf/internal/config"
	"github.com/alnah/go-cbz2pdf/internal/share"
)

// Exit codes for cbz2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every archive converted, or confirmation declined
	ExitGeneral = 1 // Some archives failed, or unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitShare   = 4 // Converted documents could not be shared
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Declined confirmation (exit 0)
	if errors.Is(err, ErrCanceled) {
		return ExitSuccess
	}

	// Share errors (exit 4)
	if errors.Is(err, share.ErrShare) {
		return ExitShare
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrIsDirectory) ||
		errors.Is(err, ErrNoDestination) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrNotInteractive) ||
		errors.Is(err, cbz2pdf.ErrInvalidOrdering) ||
		errors.Is(err, cbz2pdf.ErrInvalidWorkers) ||
		errors.Is(err, share.ErrSFTPConfig) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrFileNotReadable) ||
		errors.Is(err, ErrInvalidOutputDir) {
		return ExitIO
	}

	return ExitGeneral
}
