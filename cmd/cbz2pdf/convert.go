package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	cbz2pdf "github.com/alnah/go-cbz2pdf"
	"github.com/alnah/go-cbz2pdf/internal/config"
	"github.com/alnah/go-cbz2pdf/internal/hints"
	"github.com/alnah/go-cbz2pdf/internal/share"
)

// ErrConversionFailed indicates at least one archive of the batch failed.
var ErrConversionFailed = errors.New("conversion failed")

// noneConvertedMessage is printed when every archive of a batch failed.
const noneConvertedMessage = "None of your archives were converted."

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if flags.workersSet {
		if err := validateWorkers(flags.workers); err != nil {
			return err
		}
	}

	envCfg, err := loadEnvConfig()
	if err != nil {
		return err
	}
	warnUnknownEnvVars(env.Stderr)

	// Load configuration
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg := config.DefaultConfig()
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := validateArchives(positionalArgs); err != nil {
		return err
	}
	if err := validateDestination(cfg); err != nil {
		return err
	}

	sharer, err := buildSharer(cfg)
	if err != nil {
		return err
	}

	if err := confirmArchives(positionalArgs, flags.yes, flags.common.quiet, env); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, cfg.Log, flags.common.verbose, flags.common.quiet)
	ordering, err := cbz2pdf.ParseOrdering(cfg.Order)
	if err != nil {
		return err
	}

	conv, err := cbz2pdf.NewConverter(
		cbz2pdf.WithOutputDir(cfg.Output.Dir),
		cbz2pdf.WithScratchRoot(cfg.Scratch.Dir),
		cbz2pdf.WithOrdering(ordering),
		cbz2pdf.WithWorkers(cbz2pdf.ResolveWorkers(cfg.Workers)),
		cbz2pdf.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	start := env.Now()
	result := conv.ConvertBatch(ctx, positionalArgs)
	logger.Debug().Dur("elapsed", env.Now().Sub(start)).Msg("batch finished")

	summary := printResultsWithWriter(result, flags.common.quiet, flags.common.verbose, env)
	if result.AllFailed() {
		fmt.Fprintln(env.Stdout, noneConvertedMessage)
	}
	if !flags.common.quiet && summary.Succeeded > 0 {
		fmt.Fprintf(env.Stdout, "Output directory: %s\n", resolvedOutputDir(cfg.Output.Dir))
	}

	var shareErr error
	if sharer != nil && summary.Succeeded > 0 {
		report, err := sharer.Share(ctx, result.OutputPaths())
		printShareReport(report, flags.common.quiet, env)
		shareErr = err
	}

	var convErr error
	if summary.Failed > 0 {
		convErr = fmt.Errorf("%w: %d of %d archive(s)", ErrConversionFailed, summary.Failed, len(result.Outcomes))
	}

	return errors.Join(shareErr, convErr)
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.scratchDir != "" {
		cfg.Scratch.Dir = flags.scratchDir
	}
	if flags.order != "" {
		cfg.Order = flags.order
	}
	if flags.workersSet {
		cfg.Workers = flags.workers
	}

	// Share flags
	if flags.share.dir != "" {
		cfg.Share.Dir = flags.share.dir
	}
	if flags.share.sftpAddr != "" {
		cfg.Share.SFTP.Addr = flags.share.sftpAddr
	}
	if flags.share.sftpUser != "" {
		cfg.Share.SFTP.User = flags.share.sftpUser
	}
	if flags.share.sftpKey != "" {
		cfg.Share.SFTP.KeyFile = flags.share.sftpKey
	}
	if flags.share.sftpKnownHosts != "" {
		cfg.Share.SFTP.KnownHosts = flags.share.sftpKnownHosts
	}
	if flags.share.sftpDir != "" {
		cfg.Share.SFTP.RemoteDir = flags.share.sftpDir
	}
}

// buildSharer returns the configured share targets, or nil when none is set.
func buildSharer(cfg *config.Config) (share.Sharer, error) {
	var sharers share.MultiSharer

	if cfg.Share.Dir != "" {
		sharers = append(sharers, share.NewDirSharer(cfg.Share.Dir))
	}
	if s := cfg.Share.SFTP; s.Enabled() {
		sftpSharer, err := share.NewSFTPSharer(share.SFTPConfig{
			Addr:       s.Addr,
			User:       s.User,
			KeyFile:    s.KeyFile,
			KnownHosts: s.KnownHosts,
			RemoteDir:  s.RemoteDir,
		})
		if err != nil {
			return nil, err
		}
		sharers = append(sharers, sftpSharer)
	}

	if len(sharers) == 0 {
		return nil, nil
	}
	return sharers, nil
}

// resolvedOutputDir returns where documents are written when dir is empty.
func resolvedOutputDir(dir string) string {
	if dir == "" {
		return os.TempDir()
	}
	return dir
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(result *cbz2pdf.BatchResult, quiet, verbose bool, env *Environment) cbz2pdf.Summary {
	summary := result.Summary()

	for _, o := range result.Outcomes {
		if !o.Converted() {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", o.Archive.Path, o.Err, hintFor(o.Err))
			continue
		}

		if o.CleanupErr != nil {
			fmt.Fprintf(env.Stderr, "warning: %s: %v\n", o.Archive.Path, o.CleanupErr)
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", o.Archive.Path, o.OutputPath, o.Pages, o.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", o.OutputPath)
		}
	}

	if !quiet && len(result.Outcomes) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary
}

// printShareReport outputs one line per delivery.
func printShareReport(report *share.Report, quiet bool, env *Environment) {
	if report == nil {
		return
	}
	for _, d := range report.Deliveries {
		if d.Err != nil {
			fmt.Fprintf(env.Stderr, "SHARE FAILED %s (%s): %v\n", d.Source, d.Target, d.Err)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "Shared %s -> %s\n", d.Source, d.Destination)
		}
	}
}

// hintFor returns an actionable hint for known errors, or "".
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, cbz2pdf.ErrExtraction):
		return hints.ForExtraction()
	case errors.Is(err, cbz2pdf.ErrEmptyArchive):
		return hints.ForEmptyArchive()
	case errors.Is(err, cbz2pdf.ErrUnsupportedImage):
		return hints.ForUnsupportedImage(cbz2pdf.SupportedImageFormats)
	case errors.Is(err, cbz2pdf.ErrWrite), errors.Is(err, ErrInvalidOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrNoDestination):
		return hints.ForNoDestination()
	case errors.Is(err, ErrNotInteractive):
		return hints.ForNotInteractive()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, share.ErrShare):
		return hints.ForShare(strings.Contains(err.Error(), "sftp:"))
	}
	return ""
}

// triedPaths extracts the searched locations from a config lookup error.
func triedPaths(err error) []string {
	_, list, found := strings.Cut(err.Error(), "tried ")
	if !found {
		return nil
	}
	return strings.Split(list, ", ")
}
