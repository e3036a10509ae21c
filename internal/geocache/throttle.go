package geocache

import (
	"context"
	"sync"
	"time"
)

// Clock abstracts time for the throttle.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Throttle serializes calls and keeps a minimum gap between the end of one
// call and the start of the next.
type Throttle struct {
	interval time.Duration
	clock    Clock

	mu       sync.Mutex
	lastCall time.Time
}

// NewThrottle creates a throttle with the given minimum interval. A nil
// clock uses the system clock.
func NewThrottle(interval time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = realClock{}
	}
	return &Throttle{interval: interval, clock: clock}
}

// Do waits for the interval to elapse since the previous call completed,
// then runs fn. The completion time is recorded whatever fn returns.
//
// Do returns ctx.Err() without calling fn if ctx ends while waiting.
func (t *Throttle) Do(ctx context.Context, fn func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.lastCall.IsZero() && t.interval > 0 {
		if wait := t.interval - t.clock.Now().Sub(t.lastCall); wait > 0 {
			select {
			case <-t.clock.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	err := fn()
	t.lastCall = t.clock.Now()
	return err
}
