package cbz2pdf

import (
	"path/filepath"
	"strings"
	"time"
)

// DocumentExtension is the file extension of produced documents.
const DocumentExtension = ".pdf"

// Archive identifies one input archive.
type Archive struct {
	Path     string // source path as given by the caller
	BaseName string // last path segment without its extension
}

// NewArchive derives an Archive from its source path.
func NewArchive(path string) Archive {
	base := filepath.Base(path)
	return Archive{
		Path:     path,
		BaseName: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// ScratchSet is the extracted content of one archive.
// It is owned by a single conversion and removed once output is written.
type ScratchSet struct {
	Dir     string   // scratch directory holding the extracted entries
	Handle  string   // process-unique identifier of this conversion
	Entries []string // names found directly inside Dir
}

// PageSequence is the ordered list of entry names to render, never empty.
type PageSequence []string

// Page is one decoded image ready for embedding.
type Page struct {
	Name   string // source entry name
	Format string // encoding of Data: "jpeg" or "png"
	Width  int    // pixels
	Height int    // pixels
	Data   []byte
}

// Document is the in-memory assembled document.
// Pages are index-aligned with the PageSequence they were built from.
type Document struct {
	Title string
	Pages []Page
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// Outcome is the terminal state of one archive conversion.
// Err is nil when the archive was converted.
type Outcome struct {
	Archive    Archive
	OutputPath string
	Pages      int
	Err        error
	CleanupErr error // scratch removal failure, does not affect success
	Duration   time.Duration
}

// Converted reports whether the archive produced an output document.
func (o Outcome) Converted() bool {
	return o.Err == nil
}

// BatchResult holds one Outcome per input archive, in input order.
type BatchResult struct {
	Outcomes []Outcome
}

// Summary holds the count of converted and failed archives.
type Summary struct {
	Succeeded int
	Failed    int
}

// OutputPaths returns the paths of all produced documents, in input order.
func (r *BatchResult) OutputPaths() []string {
	var paths []string
	for _, o := range r.Outcomes {
		if o.Converted() {
			paths = append(paths, o.OutputPath)
		}
	}
	return paths
}

// Failures returns the failed outcomes, in input order.
func (r *BatchResult) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.Converted() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Summary tallies converted and failed archives.
func (r *BatchResult) Summary() Summary {
	var s Summary
	for _, o := range r.Outcomes {
		if o.Converted() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// AllFailed reports whether no archive in a non-empty batch was converted.
func (r *BatchResult) AllFailed() bool {
	return len(r.Outcomes) > 0 && r.Summary().Succeeded == 0
}
