package formatter

import (
	"context"
	"errors"
	"fmt"

	"github.com/clineup/clineup/internal/geocode"
	"github.com/clineup/clineup/internal/media"
	"github.com/clineup/clineup/internal/placeholder"
)

// lazy memoizes the first result of a constructor, error included.
type lazy[T any] struct {
	done bool
	val  T
	err  error
}

func (l *lazy[T]) get(build func() (T, error)) (T, error) {
	if !l.done {
		l.val, l.err = build()
		l.done = true
	}
	return l.val, l.err
}

// fileContext holds the providers of one file. It lives for a single
// Format call and is not shared between goroutines.
type fileContext struct {
	ctx  context.Context
	path string
	f    *Formatter

	meta  lazy[media.Metadata]
	times lazy[media.FileTimes]
	place lazy[geocode.Location]
}

func (c *fileContext) metadata() (media.Metadata, error) {
	return c.meta.get(func() (media.Metadata, error) {
		m, err := c.f.opener.Open(c.path)
		if err != nil {
			return nil, &ProviderError{Category: placeholder.CategoryMetadata, Err: err}
		}
		return m, nil
	})
}

func (c *fileContext) fileTimes() (media.FileTimes, error) {
	return c.times.get(func() (media.FileTimes, error) {
		t, err := c.f.stat(c.path)
		if err != nil {
			return media.FileTimes{}, &ProviderError{Category: placeholder.CategoryFilesystem, Err: err}
		}
		return t, nil
	})
}

// location reverse geocodes the file's GPS position. A file without a
// position, or one the geocoder fails on, has missing location fields.
// Only a formatter without a Locator is a provider failure.
func (c *fileContext) location() (geocode.Location, error) {
	return c.place.get(func() (geocode.Location, error) {
		if c.f.locator == nil {
			return geocode.Location{}, &ProviderError{Category: placeholder.CategoryLocation, Err: ErrNoGeocoder}
		}
		m, err := c.metadata()
		if err != nil {
			return geocode.Location{}, err
		}
		lat, err := m.Latitude()
		if err != nil {
			return geocode.Location{}, fmt.Errorf("%w: %w", ErrMissingCoordinates, err)
		}
		lon, err := m.Longitude()
		if err != nil {
			return geocode.Location{}, fmt.Errorf("%w: %w", ErrMissingCoordinates, err)
		}
		loc, err := c.f.locator.Resolve(c.ctx, lat, lon)
		if errors.Is(err, geocode.ErrNoAddress) {
			return geocode.Location{}, err
		}
		if err != nil {
			return geocode.Location{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
		}
		return loc, nil
	})
}
