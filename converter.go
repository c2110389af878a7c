package cbz2pdf

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Compile-time interface implementation checks.
var (
	_ archiveExtractor  = (*zipExtractor)(nil)
	_ pageOrderer       = Ordering("")
	_ documentAssembler = (*imageAssembler)(nil)
	_ documentRenderer  = (*fpdfRenderer)(nil)
	_ outputWriter      = (*pdfWriter)(nil)
	_ scratchCleaner    = dirCleaner{}
)

// pageOrderer turns extracted entry names into a PageSequence.
type pageOrderer interface {
	Order(names []string) (PageSequence, error)
}

// Converter runs the archive-to-document pipeline:
// extract, order, assemble, write, clean.
// Create with NewConverter, then call Convert or ConvertBatch.
type Converter struct {
	cfg       converterConfig
	logger    zerolog.Logger
	newHandle func() string
	extractor archiveExtractor
	orderer   pageOrderer
	assembler documentAssembler
	writer    outputWriter
	cleaner   scratchCleaner
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithOutputDir, WithOrdering).
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			scratchRoot: DefaultScratchRoot(),
			ordering:    OrderLexical,
			workers:     MinWorkers,
		},
		logger:    zerolog.Nop(),
		newHandle: uuid.NewString,
		assembler: &imageAssembler{},
		cleaner:   dirCleaner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	ordering, err := ParseOrdering(string(c.cfg.ordering))
	if err != nil {
		return nil, err
	}
	c.cfg.ordering = ordering

	if c.cfg.workers < MinWorkers || c.cfg.workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidWorkers, c.cfg.workers, MinWorkers, MaxWorkers)
	}
	if c.cfg.scratchRoot == "" {
		c.cfg.scratchRoot = DefaultScratchRoot()
	}

	// Stages not injected by tests
	if c.extractor == nil {
		c.extractor = newZipExtractor(c.cfg.scratchRoot)
	}
	if c.orderer == nil {
		c.orderer = c.cfg.ordering
	}
	if c.writer == nil {
		c.writer = newPDFWriter(newFPDFRenderer())
	}

	return c, nil
}

// OutputDir returns the configured destination directory ("" = system temp).
func (c *Converter) OutputDir() string {
	return c.cfg.outputDir
}

// Convert runs the pipeline for one archive and returns its terminal outcome.
// It never returns early once an archive has started: the result is either a
// written document or a failure naming the stage that stopped it.
func (c *Converter) Convert(ctx context.Context, path string) (outcome Outcome) {
	start := time.Now()
	archive := NewArchive(path)
	outcome = Outcome{Archive: archive}

	log := c.logger.With().Str("archive", archive.BaseName).Logger()

	stage := StageExtract
	fail := func(err error) Outcome {
		outcome.Err = &ConversionError{Archive: archive.BaseName, Stage: stage, Err: err}
		outcome.Duration = time.Since(start)
		log.Debug().Str("stage", string(stage)).Err(err).Msg("conversion failed")
		return outcome
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = fail(fmt.Errorf("internal error: %v", r))
		}
	}()

	set, err := c.extractor.Extract(ctx, archive, c.newHandle())
	if err != nil {
		return fail(err)
	}
	log = log.With().Str("scratch", set.Dir).Logger()
	log.Debug().Int("entries", len(set.Entries)).Msg("extracted")

	stage = StageOrder
	pages, err := c.orderer.Order(set.Entries)
	if err != nil {
		return fail(err)
	}

	stage = StageAssemble
	doc, err := c.assembler.Assemble(ctx, set.Dir, pages)
	if err != nil {
		return fail(err)
	}
	doc.Title = archive.BaseName
	log.Debug().Int("pages", doc.PageCount()).Msg("assembled")

	stage = StageWrite
	outputPath, err := c.writer.Write(ctx, doc, c.cfg.outputDir, archive.BaseName)
	if err != nil {
		return fail(err)
	}
	outcome.OutputPath = outputPath
	outcome.Pages = doc.PageCount()
	log.Debug().Str("output", outputPath).Msg("written")

	// The document is durable at this point; cleanup failure is only reported
	if err := c.cleaner.Clean(set); err != nil {
		outcome.CleanupErr = err
		log.Warn().Str("stage", string(StageClean)).Err(err).Msg("scratch directory left behind")
	}

	outcome.Duration = time.Since(start)
	return outcome
}

// ConvertBatch converts every archive and returns one outcome per input, in input order.
// A failed archive never stops the batch. If ctx is canceled, archives that
// have not started yet fail with the context error.
//
// Archives sharing a base name target the same output file. With several
// workers they still run one after another in input order, so the last one
// wins exactly as in a sequential batch.
func (c *Converter) ConvertBatch(ctx context.Context, paths []string) *BatchResult {
	result := &BatchResult{Outcomes: make([]Outcome, len(paths))}
	if len(paths) == 0 {
		return result
	}

	groups := groupByOutput(paths)
	workers := min(c.cfg.workers, len(groups))

	if workers <= 1 {
		for i, path := range paths {
			result.Outcomes[i] = c.convertOrSkip(ctx, path)
		}
		return result
	}

	var wg sync.WaitGroup
	jobs := make(chan []int, len(groups))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for group := range jobs {
				for _, idx := range group {
					result.Outcomes[idx] = c.convertOrSkip(ctx, paths[idx])
				}
			}
		}()
	}

	for _, group := range groups {
		jobs <- group
	}
	close(jobs)

	wg.Wait()
	return result
}

// groupByOutput returns input indices grouped by output base name, groups
// ordered by first appearance. Case is folded for case-insensitive filesystems.
func groupByOutput(paths []string) [][]int {
	var groups [][]int
	index := make(map[string]int, len(paths))
	for i, path := range paths {
		key := strings.ToLower(NewArchive(path).BaseName)
		g, ok := index[key]
		if !ok {
			g = len(groups)
			index[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// convertOrSkip converts one archive unless ctx is already done.
func (c *Converter) convertOrSkip(ctx context.Context, path string) Outcome {
	if err := ctx.Err(); err != nil {
		archive := NewArchive(path)
		return Outcome{
			Archive: archive,
			Err:     &ConversionError{Archive: archive.BaseName, Stage: StageExtract, Err: err},
		}
	}
	return c.Convert(ctx, path)
}
