package cbz2pdf

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestZipExtractor_Extract - Scratch directory contents
// ---------------------------------------------------------------------------

func TestZipExtractor_Extract(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	root := t.TempDir()
	path := writeArchive(t, src, "issue-01.cbz",
		archiveEntry{Name: "002.jpg", Data: jpegBytes(t, 4, 4)},
		archiveEntry{Name: "001.jpg", Data: jpegBytes(t, 4, 4)},
		archiveEntry{Name: "notes.txt", Data: []byte("hello")},
	)

	set, err := newZipExtractor(root).Extract(context.Background(), NewArchive(path), "h1")
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	wantDir := filepath.Join(root, "issue-01-h1")
	if set.Dir != wantDir {
		t.Errorf("Dir = %q, want %q", set.Dir, wantDir)
	}
	if set.Handle != "h1" {
		t.Errorf("Handle = %q, want %q", set.Handle, "h1")
	}

	// Entries are listed as found; ordering is a later stage
	want := []string{"001.jpg", "002.jpg", "notes.txt"}
	if diff := cmp.Diff(want, sortedCopy(set.Entries)); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(set.Dir, "notes.txt"))
	if err != nil {
		t.Fatalf("reading extracted entry: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("extracted content = %q, want %q", data, "hello")
	}
}

func TestZipExtractor_Extract_RemovesStaleDirectory(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	root := t.TempDir()
	path := writeArchive(t, src, "issue.cbz", archiveEntry{Name: "001.jpg", Data: jpegBytes(t, 4, 4)})

	stale := filepath.Join(root, "issue-same")
	if err := os.MkdirAll(stale, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stale, "leftover.jpg"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := newZipExtractor(root).Extract(context.Background(), NewArchive(path), "same")
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"001.jpg"}, set.Entries); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestZipExtractor_Extract_DistinctHandles(t *testing.T) {
	t.Parallel()

	srcA := t.TempDir()
	srcB := t.TempDir()
	root := t.TempDir()

	// Same base name from two different directories
	a := writeArchive(t, srcA, "issue.cbz", archiveEntry{Name: "a.jpg", Data: jpegBytes(t, 4, 4)})
	b := writeArchive(t, srcB, "issue.cbz", archiveEntry{Name: "b.jpg", Data: jpegBytes(t, 4, 4)})

	ext := newZipExtractor(root)
	setA, err := ext.Extract(context.Background(), NewArchive(a), "one")
	if err != nil {
		t.Fatalf("Extract(a) unexpected error: %v", err)
	}
	setB, err := ext.Extract(context.Background(), NewArchive(b), "two")
	if err != nil {
		t.Fatalf("Extract(b) unexpected error: %v", err)
	}

	if setA.Dir == setB.Dir {
		t.Fatalf("scratch directories collide: %s", setA.Dir)
	}
	if diff := cmp.Diff([]string{"a.jpg"}, dirEntries(t, setA.Dir)); diff != "" {
		t.Errorf("first scratch mismatch (-want +got):\n%s", diff)
	}
}

func TestZipExtractor_Extract_NestedEntries(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	root := t.TempDir()
	path := writeArchive(t, src, "nested.cbz",
		archiveEntry{Name: "chapter/001.jpg", Data: jpegBytes(t, 4, 4)},
		archiveEntry{Name: "cover.jpg", Data: jpegBytes(t, 4, 4)},
	)

	set, err := newZipExtractor(root).Extract(context.Background(), NewArchive(path), "h")
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	// Only direct children are listed
	if diff := cmp.Diff([]string{"chapter", "cover.jpg"}, sortedCopy(set.Entries)); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestZipExtractor_Extract_EmptyArchive(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	path := writeArchive(t, src, "empty.cbz")

	set, err := newZipExtractor(t.TempDir()).Extract(context.Background(), NewArchive(path), "h")
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if len(set.Entries) != 0 {
		t.Errorf("Entries = %v, want none", set.Entries)
	}
}

// ---------------------------------------------------------------------------
// TestZipExtractor_Extract_Errors - ErrExtraction cases
// ---------------------------------------------------------------------------

func TestZipExtractor_Extract_Errors(t *testing.T) {
	t.Parallel()

	src := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{
			name: "corrupt archive",
			path: corruptArchive(t, src, "corrupt.cbz"),
		},
		{
			name: "missing archive",
			path: filepath.Join(src, "missing.cbz"),
		},
		{
			name: "entry escapes scratch directory",
			path: writeArchive(t, src, "slip.cbz", archiveEntry{Name: "../../evil.jpg", Data: []byte("x")}),
		},
		{
			name: "absolute entry path",
			path: writeArchive(t, src, "abs.cbz", archiveEntry{Name: "/etc/evil.jpg", Data: []byte("x")}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			set, err := newZipExtractor(root).Extract(context.Background(), NewArchive(tt.path), "h")
			if !errors.Is(err, ErrExtraction) {
				t.Errorf("Extract() error = %v, want ErrExtraction", err)
			}
			if set != nil {
				t.Errorf("Extract() returned ScratchSet %+v on failure", set)
			}
			if _, statErr := os.Stat(filepath.Join(filepath.Dir(root), "evil.jpg")); statErr == nil {
				t.Error("entry was written outside the scratch directory")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestZipExtractor_Extract_SizeLimits - Decompression bounds
// ---------------------------------------------------------------------------

func TestZipExtractor_Extract_SizeLimits(t *testing.T) {
	t.Parallel()

	// Zeros compress to almost nothing, so the archive on disk stays tiny
	big := bytes.Repeat([]byte{0}, 64<<10)
	small := []byte("page")

	tests := []struct {
		name     string
		entries  []archiveEntry
		maxEntry int64
		maxTotal int64
		wantErr  bool
	}{
		{"within limits", []archiveEntry{{"001.jpg", small}}, 1 << 10, 1 << 20, false},
		{"entry above limit", []archiveEntry{{"001.jpg", small}, {"002.jpg", big}}, 1 << 10, 1 << 20, true},
		{"entry at limit", []archiveEntry{{"001.jpg", big}}, int64(len(big)), 1 << 20, false},
		{"total above limit", []archiveEntry{{"001.jpg", big}, {"002.jpg", big}}, 1 << 20, int64(len(big)) + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeArchive(t, t.TempDir(), "bomb.cbz", tt.entries...)
			ext := &zipExtractor{root: t.TempDir(), maxEntrySize: tt.maxEntry, maxTotalSize: tt.maxTotal}

			set, err := ext.Extract(context.Background(), NewArchive(path), "h")
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Extract() unexpected error: %v", err)
				}
				if len(set.Entries) != len(tt.entries) {
					t.Errorf("len(Entries) = %d, want %d", len(set.Entries), len(tt.entries))
				}
				return
			}
			if !errors.Is(err, ErrExtraction) || !errors.Is(err, ErrEntryTooLarge) {
				t.Errorf("Extract() error = %v, want ErrExtraction wrapping ErrEntryTooLarge", err)
			}
			if set != nil {
				t.Error("Extract() should not return a ScratchSet on failure")
			}
		})
	}
}

func TestNewZipExtractor_DefaultLimits(t *testing.T) {
	t.Parallel()

	ext := newZipExtractor(t.TempDir())
	if ext.maxEntrySize != MaxEntrySize || ext.maxTotalSize != MaxArchiveSize {
		t.Errorf("limits = %d/%d, want %d/%d", ext.maxEntrySize, ext.maxTotalSize, MaxEntrySize, MaxArchiveSize)
	}
}

func TestCopyLimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		limit   int64
		wantErr bool
	}{
		{"shorter than limit", "abc", 5, false},
		{"exactly the limit", "abcde", 5, false},
		{"longer than declared", "abcdef", 5, true},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var dst bytes.Buffer
			err := copyLimited(&dst, strings.NewReader(tt.input), tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrEntryTooLarge) {
					t.Errorf("copyLimited() error = %v, want ErrEntryTooLarge", err)
				}
				if int64(dst.Len()) > tt.limit+1 {
					t.Errorf("copied %d bytes past a limit of %d", dst.Len(), tt.limit)
				}
				return
			}
			if err != nil {
				t.Fatalf("copyLimited() unexpected error: %v", err)
			}
			if dst.String() != tt.input {
				t.Errorf("copied %q, want %q", dst.String(), tt.input)
			}
		})
	}
}

func TestEntryPath(t *testing.T) {
	t.Parallel()

	dir := filepath.Join("scratch", "issue")

	tests := []struct {
		name    string
		entry   string
		want    string
		wantErr bool
	}{
		{"flat", "001.jpg", filepath.Join(dir, "001.jpg"), false},
		{"nested", "a/b.jpg", filepath.Join(dir, "a", "b.jpg"), false},
		{"dot segments inside", "a/../b.jpg", filepath.Join(dir, "b.jpg"), false},
		{"parent escape", "../b.jpg", "", true},
		{"absolute", "/b.jpg", "", true},
		{"backslash absolute", `\b.jpg`, "", true},
		{"null byte", "b\x00.jpg", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := entryPath(dir, tt.entry)
			if (err != nil) != tt.wantErr {
				t.Fatalf("entryPath(%q) error = %v, wantErr %v", tt.entry, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("entryPath(%q) = %q, want %q", tt.entry, got, tt.want)
			}
		})
	}
}

func sortedCopy(s []string) []string {
	out, _ := OrderLexical.Order(s)
	return []string(out)
}
