// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// HasExtension reports whether path ends with extension, ignoring case.
// The extension includes its leading dot (".cbz").
func HasExtension(path, extension string) bool {
	return strings.EqualFold(filepath.Ext(path), extension)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsReadable returns nil if the file can be opened for reading.
func IsReadable(path string) error {
	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return err
	}
	return f.Close()
}

// IsWritableDir returns nil if dir is an existing directory that accepts new files.
func IsWritableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".cbz2pdf-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

// CopyFile copies src into dir, keeping its base name, and returns the destination path.
// The copy is written to a temporary file first and renamed into place,
// so an existing destination is replaced only by a complete file.
func CopyFile(src, dir string) (dst string, err error) {
	in, err := os.Open(src) // #nosec G304 -- path comes from a produced document
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	dst = filepath.Join(dir, filepath.Base(src))
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(src)+"-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, copyErr := io.Copy(tmp, in); copyErr != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("copying %s: %w", src, copyErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		cleanup()
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return "", fmt.Errorf("renaming into place: %w", err)
	}

	return dst, nil
}
