package fileutil

import (
	"fmt"
	"os"
)

// FS is the local file system.
type FS struct{}

// Exists reports whether path names an existing regular file.
func (FS) Exists(path string) bool { return Exists(path) }

// Rename moves oldPath to newPath, replacing newPath.
func (FS) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("renaming %q: %w", oldPath, err)
	}
	return nil
}
