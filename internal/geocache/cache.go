package geocache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/clineup/clineup/internal/geocode"
	"github.com/clineup/clineup/internal/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultPrecision rounds coordinates to about 1 km.
const DefaultPrecision = 2

// WholeDegrees asks for no decimals at all, since a zero Precision selects
// DefaultPrecision.
const WholeDegrees = -1

// PrecisionFor maps a number of decimals onto Options.Precision.
func PrecisionFor(decimals int) int {
	if decimals <= 0 {
		return WholeDegrees
	}
	return decimals
}

// Options configures a Cache.
type Options struct {
	// Precision is the number of decimals kept when rounding. Zero means
	// DefaultPrecision and WholeDegrees means none.
	Precision int

	// Disabled turns off rounding and memoization. Every lookup reaches the
	// geocoder with the exact coordinates, still throttled.
	Disabled bool

	// MinInterval is the minimum gap between geocoder calls.
	MinInterval time.Duration

	// Store holds results; defaults to a MemoryStore.
	Store Store

	// Clock drives the throttle; defaults to the system clock.
	Clock Clock

	Logger logrus.FieldLogger
}

// Stats counts cache activity.
type Stats struct {
	Hits   int64
	Misses int64
	Calls  int64
	Errors int64
}

// Cache resolves coordinates through a Reverser, memoizing by rounded Key.
type Cache struct {
	reverser  geocode.Reverser
	store     Store
	precision int
	disabled  bool
	throttle  *Throttle
	group     singleflight.Group
	log       logrus.FieldLogger

	hits, misses, calls, errors atomic.Int64
}

// New creates a Cache in front of r.
func New(r geocode.Reverser, opts Options) *Cache {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	switch {
	case opts.Precision == 0:
		opts.Precision = DefaultPrecision
	case opts.Precision < 0:
		opts.Precision = 0
	}
	log := logging.OrDiscard(opts.Logger)
	return &Cache{
		reverser:  r,
		store:     opts.Store,
		precision: opts.Precision,
		disabled:  opts.Disabled,
		throttle:  NewThrottle(opts.MinInterval, opts.Clock),
		log:       log.WithField("component", "geocache"),
	}
}

// Resolve returns the Location for lat/lon.
//
// A cached Key returns immediately without waiting. A miss waits for the
// throttle, calls the geocoder with the rounded coordinates and caches the
// result on success. Failures are never cached.
func (c *Cache) Resolve(ctx context.Context, lat, lon float64) (geocode.Location, error) {
	if c.disabled {
		c.misses.Add(1)
		return c.call(ctx, lat, lon)
	}

	key := NewKey(lat, lon, c.precision)
	if loc, ok, err := c.store.Get(key); err != nil {
		c.log.WithError(err).WithField("key", key.String()).Warn("cache read failed")
	} else if ok {
		c.hits.Add(1)
		return loc, nil
	}

	v, err, shared := c.group.Do(key.String(), func() (any, error) {
		// Another caller may have filled the key while we waited for the group.
		if loc, ok, err := c.store.Get(key); err == nil && ok {
			return loc, nil
		}
		c.misses.Add(1)

		rlat, rlon := key.Coordinates()
		loc, err := c.call(ctx, rlat, rlon)
		if err != nil {
			return geocode.Location{}, err
		}
		if err := c.store.Put(key, loc); err != nil {
			c.log.WithError(err).WithField("key", key.String()).Warn("cache write failed")
		}
		return loc, nil
	})
	if shared {
		c.log.WithField("key", key.String()).Debug("shared in-flight lookup")
	}
	if err != nil {
		return geocode.Location{}, err
	}
	return v.(geocode.Location), nil
}

func (c *Cache) call(ctx context.Context, lat, lon float64) (geocode.Location, error) {
	var loc geocode.Location
	err := c.throttle.Do(ctx, func() error {
		c.calls.Add(1)
		var err error
		loc, err = c.reverser.Reverse(ctx, lat, lon)
		return err
	})
	if err != nil {
		c.errors.Add(1)
		return geocode.Location{}, fmt.Errorf("reverse geocode %v,%v: %w", lat, lon, err)
	}
	c.log.WithFields(logrus.Fields{"lat": lat, "lon": lon}).Debug("geocoded")
	return loc, nil
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Calls:  c.calls.Load(),
		Errors: c.errors.Load(),
	}
}
