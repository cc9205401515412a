package calendar

import (
	"fmt"
	"time"

	appLog "gzctime/internal/log"
	"gzctime/internal/zone"
)

// Engine converts between linear time and calendars, consulting a
// platform for the local zone. An Engine is immutable and safe for
// concurrent use.
type Engine struct {
	platform zone.Platform
	mode     Mode
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithMode selects the epoch mode.
func WithMode(m Mode) Option {
	return func(e *Engine) { e.mode = m }
}

// WithClock replaces the source of "now" used for the local-zone fallback.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an Engine backed by p. A nil p selects the system's
// local zone.
func NewEngine(p zone.Platform, opts ...Option) *Engine {
	if p == nil {
		p = zone.System{}
	}
	e := &Engine{platform: p, mode: Wide, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the engine's epoch mode.
func (e *Engine) Mode() Mode { return e.mode }

// Platform returns the engine's local-time facility.
func (e *Engine) Platform() zone.Platform { return e.platform }

// LocalZone returns the local zone in effect at unix.
//
// When the platform cannot answer for that instant it is asked about the
// current moment instead; when that fails too, UTC is returned. The
// fallback is always a relative zone, so the returned calendar stays
// convertible back to the same instant.
func (e *Engine) LocalZone(unix int64) zone.Zone {
	z, err := e.platform.Zone(unix)
	if err == nil {
		return z
	}
	now := e.now().Unix()
	if cur, nerr := e.platform.Zone(now); nerr == nil {
		appLog.Warn("local zone unavailable for instant; using current offset", "unix", unix, "err", err)
		return cur.AsRelative()
	}
	appLog.Warn("local zone unavailable; using UTC", "unix", unix, "err", err)
	return zone.UTC
}

// ToCalendar returns the calendar view of unix for the request r.
//
// Only a geographic request without DST status fails, with
// zone.ErrUnsupportedTranslation.
func (e *Engine) ToCalendar(unix int64, r zone.Request) (Calendar, error) {
	z, err := e.resolve(unix, r)
	if err != nil {
		return Calendar{}, err
	}
	return Decompose(unix, z, e.mode), nil
}

// FromCalendar returns the unix time of c. c must be valid.
func (e *Engine) FromCalendar(c Calendar) int64 {
	return Compose(c, e.mode)
}

// Translate returns c expressed for the request r. The instant is
// preserved; every field of the result, including weekday, day of year and
// calendar week, is recomputed.
//
// Translating into a geographic zone needs its DST status; a geographic
// request without it fails with zone.ErrUnsupportedTranslation unless c
// already carries that geographic zone.
func (e *Engine) Translate(c Calendar, r zone.Request) (Calendar, error) {
	if off, ok := r.GeographicOffset(); ok {
		if c.Zone.IsGeographic() && c.Zone.Offset() == off {
			return Decompose(e.FromCalendar(c), c.Zone, e.mode), nil
		}
		return Calendar{}, fmt.Errorf("%w: from %s to geographic %s", zone.ErrUnsupportedTranslation, c.Zone, off)
	}
	return e.ToCalendar(e.FromCalendar(c), r)
}

// resolve maps a request onto a concrete zone for the instant unix.
func (e *Engine) resolve(unix int64, r zone.Request) (zone.Zone, error) {
	switch {
	case r.IsLocal():
		return e.LocalZone(unix), nil
	case r.IsAsUTC():
		return e.LocalZone(unix).AsRelative(), nil
	}
	z, _, err := r.Target()
	return z, err
}
