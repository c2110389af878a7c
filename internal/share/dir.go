package share

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-cbz2pdf/internal/fileutil"
)

// DirSharer copies documents into a local directory, such as a synced folder.
type DirSharer struct {
	Dir string
}

// NewDirSharer returns a DirSharer targeting dir.
func NewDirSharer(dir string) *DirSharer {
	return &DirSharer{Dir: dir}
}

func (s *DirSharer) target() string {
	return "dir:" + s.Dir
}

// Share copies each path into the target directory, creating it if needed.
func (s *DirSharer) Share(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{}

	if err := os.MkdirAll(s.Dir, 0o750); err != nil {
		return report, fmt.Errorf("%w: creating %s: %v", ErrShare, s.Dir, err)
	}

	for _, path := range paths {
		d := Delivery{Target: s.target(), Source: path}
		if err := ctx.Err(); err != nil {
			d.Err = err
		} else {
			d.Destination, d.Err = fileutil.CopyFile(path, s.Dir)
		}
		report.Deliveries = append(report.Deliveries, d)
	}

	return report, report.err()
}
