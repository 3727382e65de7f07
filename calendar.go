package diem

import (
	"slices"
	"sync"
	"time"
)

// Option configures a Calendar.
type Option func(*Calendar)

// WithClock sets the function a Calendar reads the current instant from.
// The default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation fixes the zone a Calendar reads calendar days in. By default
// each instant is read in the zone it carries.
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) {
		c.loc = loc
	}
}

// Calendar turns instants into calendar days and keeps a set of closed
// (non-working) days. Create one with [New]. All methods are safe for
// concurrent use.
type Calendar struct {
	now func() time.Time
	loc *time.Location

	mu     sync.RWMutex
	closed map[Diem]struct{}
}

// New creates a Calendar reading the host clock, with no closed days.
func New(opts ...Option) *Calendar {
	c := &Calendar{
		now:    time.Now,
		closed: make(map[Diem]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultCal is the package-level calendar used by top-level functions.
var defaultCal = New()

// Location returns the zone c reads calendar days in, or nil when each
// instant's own zone is used.
func (c *Calendar) Location() *time.Location { return c.loc }

// Today returns the current calendar day according to c's clock.
func (c *Calendar) Today() Diem {
	return c.FromTime(c.now())
}

// FromTime returns the calendar day that t falls on. The time of day is
// discarded; the day is the one a wall clock in c's zone, or in t's own
// zone when c has none, shows at t.
func (c *Calendar) FromTime(t time.Time) Diem {
	return Diem{t: coerceUTC(t, c.loc)}
}

// FromUnixMilli returns the calendar day of a Unix timestamp in
// milliseconds. Without a fixed zone the host's local zone is used.
func (c *Calendar) FromUnixMilli(ms int64) Diem {
	return c.FromTime(time.UnixMilli(ms))
}

// DiffTime returns d.Diff of the calendar day t falls on.
func (c *Calendar) DiffTime(d Diem, t time.Time) int {
	return d.Diff(c.FromTime(t))
}

// AddClosedDay marks d as a non-working day.
func (c *Calendar) AddClosedDay(d Diem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed[d] = struct{}{}
}

// RemoveClosedDay removes d from the closed days. Has no effect if d was
// not closed.
func (c *Calendar) RemoveClosedDay(d Diem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.closed, d)
}

// IsClosed reports whether d was marked with AddClosedDay.
func (c *Calendar) IsClosed(d Diem) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.closed[d]
	return ok
}

// ClosedDays returns all closed days, sorted.
func (c *Calendar) ClosedDays() []Diem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Diem, 0, len(c.closed))
	for d := range c.closed {
		result = append(result, d)
	}
	slices.SortFunc(result, Diem.Compare)
	return result
}

// --- Package-level convenience functions ---

// Today returns the current calendar day in the host's local zone.
func Today() Diem { return defaultCal.Today() }

// FromTime returns the calendar day t falls on in its own zone.
func FromTime(t time.Time) Diem { return defaultCal.FromTime(t) }

// FromUnixMilli returns the calendar day of a Unix millisecond timestamp in
// the host's local zone.
func FromUnixMilli(ms int64) Diem { return defaultCal.FromUnixMilli(ms) }

// AddClosedDay marks d as closed on the default calendar.
func AddClosedDay(d Diem) { defaultCal.AddClosedDay(d) }

// RemoveClosedDay removes a closed day from the default calendar.
func RemoveClosedDay(d Diem) { defaultCal.RemoveClosedDay(d) }
