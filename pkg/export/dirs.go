package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/g3zod/adifexport/internal/output"
)

// DirectoryError reports an output directory that could not be deleted or
// created.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("exports directory %q: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// resetTree deletes root and recreates it with one directory per format.
func resetTree(root string, formats []output.Format) error {
	if root == "" {
		return &DirectoryError{Path: root, Err: errors.New("no exports directory given")}
	}
	clean := filepath.Clean(root)
	if clean == string(filepath.Separator) || clean == "." {
		return &DirectoryError{Path: root, Err: errors.New("refusing to replace this directory")}
	}

	if err := os.RemoveAll(clean); err != nil {
		return &DirectoryError{Path: clean, Err: err}
	}
	for _, f := range formats {
		dir := filepath.Join(clean, string(f))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &DirectoryError{Path: dir, Err: err}
		}
	}
	return nil
}
