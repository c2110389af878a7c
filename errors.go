package cbz2pdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for conversion stages.
var (
	ErrExtraction       = errors.New("archive extraction failed")
	ErrEmptyArchive     = errors.New("archive contains no entries")
	ErrUnsupportedImage = errors.New("entry is not a supported image")
	ErrWrite            = errors.New("failed to write document")
)

// Option validation errors.
var (
	ErrInvalidOrdering = errors.New("invalid page ordering")
	ErrInvalidWorkers  = errors.New("invalid worker count")
)

// Stage identifies the pipeline step an archive conversion reached.
type Stage string

// Pipeline stages, in execution order.
const (
	StageExtract  Stage = "extract"
	StageOrder    Stage = "order"
	StageAssemble Stage = "assemble"
	StageWrite    Stage = "write"
	StageClean    Stage = "clean"
)

// ConversionError reports which archive failed and at which stage.
type ConversionError struct {
	Archive string // archive base name
	Stage   Stage
	Err     error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Archive, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
