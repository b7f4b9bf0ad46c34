package entities

import "github.com/peter88213/novelibre-sub001/internal/domain/errs"

var (
	// ErrInvalidValue is returned by setters that reject a value.
	ErrInvalidValue = errs.ErrInvalidValue
	// ErrNotFound is returned when a referenced element does not exist.
	ErrNotFound = errs.ErrNotFound
)
