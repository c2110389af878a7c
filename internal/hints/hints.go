// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-cbz2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a common CI environment variable is set.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForExtraction returns hints for archive extraction errors.
// In containers the system temp directory is often small, so a scratch
// directory override is suggested there.
func ForExtraction() string {
	hints := []string{"check the file opens in a zip tool (.cbz is a renamed .zip)"}

	if IsInContainer() && os.Getenv("CBZ2PDF_SCRATCH_DIR") == "" {
		hints = append(hints, "set CBZ2PDF_SCRATCH_DIR to a mounted volume")
	}

	return formatHints(hints)
}

// ForUnsupportedImage returns hints for archives holding non-image entries.
func ForUnsupportedImage(formats []string) string {
	hint := "every entry must be an image; remove text files and folders from the archive"
	if len(formats) > 0 {
		hint += " (supported: " + strings.Join(formats, ", ") + ")"
	}
	return format(hint)
}

// ForEmptyArchive returns a hint for archives with no entries.
func ForEmptyArchive() string {
	return format("the archive has no pages; check it was not truncated")
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check the directory exists and is writable")
}

// ForNoDestination returns hints when neither an output directory nor a share target is set.
func ForNoDestination() string {
	return format("use --output <dir>, --share-dir <dir> or --sftp-addr <host:port>")
}

// ForNotInteractive returns hints for confirmation without a terminal.
func ForNotInteractive() string {
	if inCI() {
		return format("CI detected; pass --yes to convert without confirmation")
	}
	return format("pass --yes to convert without confirmation")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-cbz2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-cbz2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForShare returns hints for share failures.
func ForShare(sftp bool) string {
	if !sftp {
		return format("check the share directory exists and is writable")
	}
	return formatHints([]string{
		"check --sftp-addr is reachable",
		"the host key must be in known_hosts (ssh-keyscan <host> >> ~/.ssh/known_hosts)",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
