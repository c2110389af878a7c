package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// shareFlags holds delivery target flags.
type shareFlags struct {
	dir            string
	sftpAddr       string
	sftpUser       string
	sftpKey        string
	sftpKnownHosts string
	sftpDir        string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	scratchDir string
	order      string
	workers    int
	workersSet bool // --workers given explicitly; 0 is a valid value
	yes        bool
	share      shareFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show stage diagnostics and timing")
}

// addShareFlags adds share target flags to a FlagSet.
func addShareFlags(fs *flag.FlagSet, f *shareFlags) {
	fs.StringVar(&f.dir, "share-dir", "", "copy produced PDFs into this directory")
	fs.StringVar(&f.sftpAddr, "sftp-addr", "", "upload produced PDFs to this SFTP server (host:port)")
	fs.StringVar(&f.sftpUser, "sftp-user", "", "SFTP user name")
	fs.StringVar(&f.sftpKey, "sftp-key", "", "SSH private key file")
	fs.StringVar(&f.sftpKnownHosts, "sftp-known-hosts", "", "known_hosts file (default ~/.ssh/known_hosts)")
	fs.StringVar(&f.sftpDir, "sftp-dir", "", "remote directory")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usageOut io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.scratchDir, "scratch-dir", "", "directory for extracted pages")
	fs.StringVar(&f.order, "order", "", "page order: lexical, natural")
	fs.IntVarP(&f.workers, "workers", "w", 1, "archives converted at once (0 = auto)")
	fs.BoolVarP(&f.yes, "yes", "y", false, "convert without asking for confirmation")

	addCommonFlags(fs, &f.common)
	addShareFlags(fs, &f.share)

	fs.Usage = func() { printConvertUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.workersSet = fs.Changed("workers")

	return f, fs.Args(), nil
}
