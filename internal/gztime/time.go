// Package gztime provides the linear time value: a signed count of seconds
// since 1970-01-01T00:00:00 UTC. The same value type serves as an instant
// and as a span, so that adding or subtracting two values needs no
// conversions. Calendar views and text encodings are derived on demand.
package gztime

import (
	"time"

	"gzctime/internal/calendar"
	"gzctime/internal/codec"
	"gzctime/internal/duration"
	"gzctime/internal/zone"
)

// Time is an immutable linear time value. The zero value is the unix epoch.
type Time struct {
	sec int64
}

// Now returns the current instant, truncated to whole seconds.
func Now() Time { return Time{sec: time.Now().Unix()} }

// Unix returns the value for sec seconds.
func Unix(sec int64) Time { return Time{sec: sec} }

// FromDuration returns the signed length of d as a value.
func FromDuration(d duration.Duration) Time { return Time{sec: d.Total()} }

// FromCalendar returns the instant of cal using the default converter.
func FromCalendar(cal calendar.Calendar) (Time, error) { return Default.FromCalendar(cal) }

// Date returns the instant of a wall clock in zone z.
func Date(year int64, month, day, hour, minute, second int, z zone.Zone) (Time, error) {
	return Default.Date(year, month, day, hour, minute, second, z)
}

// DateLocal returns the instant of a local wall clock.
func DateLocal(year int64, month, day, hour, minute, second int) (Time, error) {
	return Default.DateLocal(year, month, day, hour, minute, second)
}

// Parse decodes a GZC calendar or duration string.
func Parse(text string) (Time, error) { return Default.Parse(text) }

// ParseFormat reads free-form text with a strptime format.
func ParseFormat(text, format string) (Time, error) { return Default.ParseFormat(text, format) }

// Unix returns t in seconds.
func (t Time) Unix() int64 { return t.sec }

// Std returns t as a time.Time in UTC.
func (t Time) Std() time.Time { return time.Unix(t.sec, 0).UTC() }

// Calendar returns the calendar view of t for the request r.
func (t Time) Calendar(r zone.Request) (calendar.Calendar, error) {
	return Default.Calendar(t, r)
}

// UTC returns the calendar view of t in UTC.
func (t Time) UTC() calendar.Calendar {
	return calendar.Decompose(t.sec, zone.UTC, Default.engine.Mode())
}

// Duration returns t read as a span.
func (t Time) Duration() duration.Duration { return duration.FromSeconds(t.sec) }

// DurationString returns the GZC duration string of t.
func (t Time) DurationString() string { return codec.EncodeDuration(t.Duration()) }

// String returns the GZC calendar string of t in local time.
func (t Time) String() string { return Default.String(t) }

// Format renders t for r with a strftime format, or as a GZC string when
// format is empty.
func (t Time) Format(format string, r zone.Request) (string, error) {
	return Default.Format(t, format, r)
}

// Add returns t+u. Overflow wraps.
func (t Time) Add(u Time) Time { return Time{sec: t.sec + u.sec} }

// AddDuration returns t shifted by d.
func (t Time) AddDuration(d duration.Duration) Time { return t.Add(FromDuration(d)) }

// Sub returns t-u.
func (t Time) Sub(u Time) Time { return Time{sec: t.sec - u.sec} }

// Compare returns -1, 0 or +1 as t is before, equal to or after u.
func (t Time) Compare(u Time) int {
	switch {
	case t.sec < u.sec:
		return -1
	case t.sec > u.sec:
		return 1
	}
	return 0
}

func (t Time) Equal(u Time) bool  { return t.sec == u.sec }
func (t Time) Before(u Time) bool { return t.sec < u.sec }
func (t Time) After(u Time) bool  { return t.sec > u.sec }

// MarshalText encodes t as a GZC calendar string in UTC.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(codec.EncodeCalendar(t.UTC())), nil
}

// UnmarshalText accepts any GZC calendar or duration string.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
