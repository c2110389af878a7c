package cbz2pdf

// Notes:
// - Fixtures are generated at test time so no binary files live in the repo.
// - countPDFPages counts page objects rather than parsing the PDF; fpdf writes
//   uncompressed object dictionaries, only content streams are deflated.

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ---------------------------------------------------------------------------
// Image fixtures
// ---------------------------------------------------------------------------

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(w, h)); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(w, h), &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
	return buf.Bytes()
}

func gifBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.Encode(&buf, solidImage(w, h), nil); err != nil {
		t.Fatalf("encoding gif: %v", err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// Archive fixtures
// ---------------------------------------------------------------------------

type archiveEntry struct {
	Name string
	Data []byte
}

// writeArchive creates a zip archive named name in dir with the given entries.
func writeArchive(t *testing.T, dir, name string, entries ...archiveEntry) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			t.Fatalf("writing entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return path
}

// comicArchive creates an archive of n zero-padded JPEG pages, page i being (10+i) pixels wide.
func comicArchive(t *testing.T, dir, name string, n int) string {
	t.Helper()
	entries := make([]archiveEntry, n)
	for i := range entries {
		entries[i] = archiveEntry{
			Name: pageName(i + 1),
			Data: jpegBytes(t, 10+i, 20),
		}
	}
	return writeArchive(t, dir, name, entries...)
}

func pageName(n int) string {
	return fmt.Sprintf("%03d.jpg", n)
}

// corruptArchive writes bytes that are not a zip file.
func corruptArchive(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("this is not a zip archive"), 0o644); err != nil {
		t.Fatalf("writing corrupt archive: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// PDF and filesystem assertions
// ---------------------------------------------------------------------------

var pageObjectPattern = regexp.MustCompile(`/Type /Page\b`)

func countPDFPages(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("%s is not a PDF", path)
	}
	return len(pageObjectPattern.FindAll(data, -1))
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("reading %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func sequentialHandles(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}
