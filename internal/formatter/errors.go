package formatter

import (
	"errors"
	"fmt"

	"github.com/clineup/clineup/internal/placeholder"
)

var (
	// ErrUnknownPlaceholder marks an alternative naming no registered field.
	ErrUnknownPlaceholder = errors.New("unknown placeholder")

	// ErrMissingCoordinates is returned for location fields of files
	// without a GPS position.
	ErrMissingCoordinates = errors.New("missing GPS coordinates")

	// ErrLookupFailed wraps a geocoder failure. Like a missing field it
	// leaves the location fields unresolved for that file only.
	ErrLookupFailed = errors.New("location lookup failed")

	// ErrNoGeocoder is returned for location fields when no Locator is set.
	ErrNoGeocoder = errors.New("no geocoder configured")
)

// ProviderError records that the provider for a whole category could not
// be built for a file.
type ProviderError struct {
	Category placeholder.Category
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Category, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FileError is returned by Format when a file cannot be rendered.
type FileError struct {
	Path  string
	Group string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("format %s: group %q: %v", e.Path, e.Group, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
