// Package ports defines the collaborators the domain services depend on.
package ports

// UI is the user-facing side of an operation.
type UI interface {
	// Ask poses a yes/no question and reports the answer.
	Ask(question string) bool

	// SetStatus reports a status line. Lines starting with "!" are errors,
	// lines starting with "#" are notifications.
	SetStatus(message string)
}

// LockChecker detects files held open by another application. A false
// result means "probably not locked".
type LockChecker interface {
	IsLocked(path string) bool
}

// Files is the file system as seen by the converter.
type Files interface {
	Exists(path string) bool
	Rename(oldPath, newPath string) error
}
