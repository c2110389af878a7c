package cbz2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// archiveExtractor decompresses an archive into a fresh scratch directory.
// The handle identifies the conversion and keys its scratch location.
type archiveExtractor interface {
	Extract(ctx context.Context, archive Archive, handle string) (*ScratchSet, error)
}

// Extraction limits. A comic page is rarely above a few tens of megabytes.
const (
	// MaxEntrySize caps the uncompressed size of a single archive entry.
	MaxEntrySize = 256 << 20

	// MaxArchiveSize caps the total uncompressed size of one archive.
	MaxArchiveSize = 4 << 30
)

// ErrEntryTooLarge is wrapped in ErrExtraction when an entry exceeds a size limit.
var ErrEntryTooLarge = errors.New("entry exceeds size limit")

// zipExtractor extracts zip-compatible archives (.cbz) under root.
type zipExtractor struct {
	root         string
	maxEntrySize int64
	maxTotalSize int64
}

func newZipExtractor(root string) *zipExtractor {
	return &zipExtractor{root: root, maxEntrySize: MaxEntrySize, maxTotalSize: MaxArchiveSize}
}

// scratchDir returns a collision-free scratch path for the archive.
// The base name is kept as a prefix so leftovers can be traced back to their archive.
func (e *zipExtractor) scratchDir(archive Archive, handle string) string {
	return filepath.Join(e.root, archive.BaseName+"-"+handle)
}

// Extract decompresses every entry of the archive into its scratch directory.
// On failure no ScratchSet is returned and partial content may remain on disk.
func (e *zipExtractor) Extract(_ context.Context, archive Archive, handle string) (*ScratchSet, error) {
	dir := e.scratchDir(archive, handle)

	// Extraction always starts from an empty directory
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("%w: removing stale scratch directory: %v", ErrExtraction, err)
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating scratch directory: %v", ErrExtraction, err)
	}

	r, err := zip.OpenReader(archive.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer r.Close()

	var total uint64
	for _, f := range r.File {
		total += f.UncompressedSize64
	}
	if total > uint64(e.maxTotalSize) {
		return nil, fmt.Errorf("%w: %w: archive expands to %d bytes (limit %d)", ErrExtraction, ErrEntryTooLarge, total, e.maxTotalSize)
	}

	for _, f := range r.File {
		if err := extractEntry(f, dir, e.maxEntrySize); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrExtraction, f.Name, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: listing scratch directory: %v", ErrExtraction, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return &ScratchSet{Dir: dir, Handle: handle, Entries: names}, nil
}

// extractEntry writes one zip entry below dir, rejecting paths that escape it
// and entries larger than maxSize.
func extractEntry(f *zip.File, dir string, maxSize int64) error {
	target, err := entryPath(dir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, dirPermissions)
	}
	if f.UncompressedSize64 > uint64(maxSize) {
		return fmt.Errorf("%w: declares %d bytes (limit %d)", ErrEntryTooLarge, f.UncompressedSize64, maxSize)
	}
	if err := os.MkdirAll(filepath.Dir(target), dirPermissions); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePermissions) // #nosec G304 -- path checked by entryPath
	if err != nil {
		return err
	}
	// The header may understate the real size; never write past what it declares
	if err := copyLimited(dst, src, int64(f.UncompressedSize64)); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// copyLimited copies src to dst and fails once more than limit bytes arrive.
func copyLimited(dst io.Writer, src io.Reader, limit int64) error {
	n, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		return err
	}
	if n > limit {
		return fmt.Errorf("%w: more than %d bytes", ErrEntryTooLarge, limit)
	}
	return nil
}

// entryPath resolves an entry name under dir.
func entryPath(dir, name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("invalid entry name %q", name)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", fmt.Errorf("absolute entry path %q", name)
	}
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry path %q escapes scratch directory", name)
	}
	return target, nil
}
