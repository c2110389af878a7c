package cbz2pdf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewArchive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Archive
	}{
		{"issue-01.cbz", Archive{Path: "issue-01.cbz", BaseName: "issue-01"}},
		{"/comics/Vol 2.CBZ", Archive{Path: "/comics/Vol 2.CBZ", BaseName: "Vol 2"}},
		{"library/saga.v1.cbz", Archive{Path: "library/saga.v1.cbz", BaseName: "saga.v1"}},
		{"noext", Archive{Path: "noext", BaseName: "noext"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, NewArchive(tt.path)); diff != "" {
				t.Errorf("NewArchive(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestDocument_PageCount(t *testing.T) {
	t.Parallel()

	var nilDoc *Document
	if got := nilDoc.PageCount(); got != 0 {
		t.Errorf("nil PageCount() = %d, want 0", got)
	}
	doc := &Document{Pages: make([]Page, 3)}
	if got := doc.PageCount(); got != 3 {
		t.Errorf("PageCount() = %d, want 3", got)
	}
}

func TestBatchResult(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	result := &BatchResult{Outcomes: []Outcome{
		{Archive: NewArchive("a.cbz"), OutputPath: "/out/a.pdf"},
		{Archive: NewArchive("b.cbz"), Err: boom},
		{Archive: NewArchive("c.cbz"), OutputPath: "/out/c.pdf", CleanupErr: boom},
	}}

	if diff := cmp.Diff([]string{"/out/a.pdf", "/out/c.pdf"}, result.OutputPaths()); diff != "" {
		t.Errorf("OutputPaths() mismatch (-want +got):\n%s", diff)
	}

	failures := result.Failures()
	if len(failures) != 1 || failures[0].Archive.BaseName != "b" {
		t.Errorf("Failures() = %+v, want only b", failures)
	}

	if got := result.Summary(); got != (Summary{Succeeded: 2, Failed: 1}) {
		t.Errorf("Summary() = %+v, want {2 1}", got)
	}
	if result.AllFailed() {
		t.Error("AllFailed() = true, want false")
	}
}

func TestBatchResult_AllFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		outcomes []Outcome
		want     bool
	}{
		{"empty batch", nil, false},
		{"one failure", []Outcome{{Err: ErrExtraction}}, true},
		{"mixed", []Outcome{{Err: ErrExtraction}, {}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &BatchResult{Outcomes: tt.outcomes}
			if got := r.AllFailed(); got != tt.want {
				t.Errorf("AllFailed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConversionError(t *testing.T) {
	t.Parallel()

	err := &ConversionError{Archive: "issue-01", Stage: StageAssemble, Err: ErrUnsupportedImage}
	if got, want := err.Error(), "issue-01: assemble: "+ErrUnsupportedImage.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Error("errors.Is(err, ErrUnsupportedImage) = false")
	}
}
