package cbz2pdf

import (
	"fmt"
	"os"
)

// scratchCleaner removes a scratch directory after its output was written.
type scratchCleaner interface {
	Clean(set *ScratchSet) error
}

type dirCleaner struct{}

// Clean recursively removes the scratch directory. A missing directory is not an error.
func (dirCleaner) Clean(set *ScratchSet) error {
	if set == nil || set.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(set.Dir); err != nil {
		return fmt.Errorf("removing scratch directory %s: %w", set.Dir, err)
	}
	return nil
}
