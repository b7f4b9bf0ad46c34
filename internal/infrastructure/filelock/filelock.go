// Package filelock detects lock markers that office applications and the
// novelibre editor leave next to documents they hold open.
//
// The check is advisory: a marker may be stale, and an application may open
// a file without leaving one. A negative result means "probably not locked".
package filelock

import (
	"os"
	"path/filepath"
)

// Marker prefixes placed in the document's directory.
const (
	// OfficePrefix is used by LibreOffice and OpenOffice: ".~lock.NAME#".
	OfficePrefix = ".~lock."
	// ProjectPrefix is used for novx projects open in the editor: ".LOCK.NAME#".
	ProjectPrefix = ".LOCK."
	markerSuffix  = "#"
)

// Checker implements the lock predicate on the local file system.
type Checker struct{}

// New returns a Checker.
func New() *Checker { return &Checker{} }

// IsLocked reports whether a lock marker exists for path.
func (c *Checker) IsLocked(path string) bool {
	for _, marker := range Markers(path) {
		if _, err := os.Lstat(marker); err == nil {
			return true
		}
	}
	return false
}

// Markers returns the marker paths checked for path.
func Markers(path string) []string {
	dir, name := filepath.Split(path)
	return []string{
		filepath.Join(dir, OfficePrefix+name+markerSuffix),
		filepath.Join(dir, ProjectPrefix+name+markerSuffix),
	}
}
