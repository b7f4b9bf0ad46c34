// Package errs defines the error taxonomy shared by the codec, bridge and
// orchestration layers.
package errs

import (
	"errors"
	"fmt"
)

// Status prefixes distinguish the severity of a status message.
const (
	// ErrorPrefix marks a hard error.
	ErrorPrefix = "!"
	// NotificationPrefix marks a cancellation or other non-error notice.
	NotificationPrefix = "#"
)

var (
	// ErrCancelled is returned when the user declines a confirmation prompt.
	ErrCancelled = errors.New("action canceled by user")
	// ErrLocked is returned when a file is held open by another application.
	ErrLocked = errors.New("file is locked")
	// ErrNotFound is returned when a referenced file or element does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidValue is returned by entity setters rejecting a value.
	ErrInvalidValue = errors.New("invalid value")
	// ErrExists is returned when an operation refuses to overwrite a file.
	ErrExists = errors.New("file already exists")
)

// FormatError reports a malformed or incompatible document.
type FormatError struct {
	Path    string
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Message, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Message, e.Path)
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error { return e.Err }

// NewFormatError creates a path-qualified format error.
func NewFormatError(path, message string, err error) *FormatError {
	return &FormatError{Path: path, Message: message, Err: err}
}

// Locked returns an ErrLocked-wrapping error naming the path.
func Locked(path string) error {
	return fmt.Errorf("%w: %q (close the document and try again)", ErrLocked, path)
}

// Status converts err into a single status line. Cancellation becomes a
// notification, everything else a hard error.
func Status(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrCancelled) {
		return NotificationPrefix + err.Error()
	}
	return ErrorPrefix + err.Error()
}

// IsNotification reports whether the status line is a notification.
func IsNotification(status string) bool {
	return len(status) > 0 && status[:1] == NotificationPrefix
}

// IsError reports whether the status line is a hard error.
func IsError(status string) bool {
	return len(status) > 0 && status[:1] == ErrorPrefix
}
