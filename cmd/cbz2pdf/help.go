package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cbz2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert comic archives (.cbz) to PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cbz2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cbz2pdf convert <archive.cbz>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert comic archives to PDF, one page per image, in file name order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  archive    One or more .cbz files (extension is case-insensitive)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (required unless sharing)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --scratch-dir <dir>   Directory for extracted pages")
	fmt.Fprintln(w, "      --order <s>           Page order: lexical (default), natural")
	fmt.Fprintln(w, "  -w, --workers <n>         Archives converted at once (default 1, 0 = auto)")
	fmt.Fprintln(w, "  -y, --yes                 Convert without asking for confirmation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sharing:")
	fmt.Fprintln(w, "      --share-dir <dir>     Copy produced PDFs into a directory")
	fmt.Fprintln(w, "      --sftp-addr <h:p>     Upload produced PDFs to an SFTP server")
	fmt.Fprintln(w, "      --sftp-user <s>       SFTP user name")
	fmt.Fprintln(w, "      --sftp-key <path>     SSH private key file")
	fmt.Fprintln(w, "      --sftp-known-hosts <path>")
	fmt.Fprintln(w, "                            known_hosts file (default ~/.ssh/known_hosts)")
	fmt.Fprintln(w, "      --sftp-dir <dir>      Remote directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show stage diagnostics and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CBZ2PDF_CONFIG, CBZ2PDF_OUTPUT_DIR, CBZ2PDF_SCRATCH_DIR, CBZ2PDF_ORDER,")
	fmt.Fprintln(w, "  CBZ2PDF_WORKERS, CBZ2PDF_LOG_LEVEL, CBZ2PDF_SHARE_DIR")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cbz2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cbz2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
