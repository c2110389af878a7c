package cbz2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// outputWriter persists an assembled document under a destination directory.
type outputWriter interface {
	Write(ctx context.Context, doc *Document, dir, baseName string) (string, error)
}

// pdfWriter renders documents to PDF and replaces any prior file at the destination.
type pdfWriter struct {
	renderer documentRenderer
}

func newPDFWriter(renderer documentRenderer) *pdfWriter {
	return &pdfWriter{renderer: renderer}
}

// OutputPath returns the document path for an archive base name.
// An empty dir resolves to the system temporary directory.
func OutputPath(dir, baseName string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, baseName+DocumentExtension)
}

// Write serializes doc and writes it to <dir>/<baseName>.pdf.
// An existing file at that path is removed first, never merged.
func (w *pdfWriter) Write(_ context.Context, doc *Document, dir, baseName string) (string, error) {
	path := OutputPath(dir, baseName)

	data, err := w.renderer.Render(doc)
	if err != nil {
		return "", fmt.Errorf("%w: serializing document: %v", ErrWrite, err)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: removing existing %s: %v", ErrWrite, path, err)
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, nil
}
