// Package duration models an absolute elapsed span of seconds split into
// days, hours, minutes and seconds. It has no calendar semantics: years and
// months are not units because their length is not fixed.
package duration

import (
	"fmt"
	"math"

	"gzctime/internal/calendar"
)

// Duration is the magnitude of a span broken into fixed-length units, plus
// a sign. Sign is +1 or -1; the zero value behaves as positive.
type Duration struct {
	Days    uint64
	Hours   uint64
	Minutes uint64
	Seconds uint64
	Sign    int8
}

// FromSeconds decomposes a signed second count. Zero is positive.
func FromSeconds(sec int64) Duration {
	d := Duration{Sign: 1}
	var mag uint64
	switch {
	case sec == math.MinInt64:
		d.Sign = -1
		mag = uint64(math.MaxInt64) + 1
	case sec < 0:
		d.Sign = -1
		mag = uint64(-sec)
	default:
		mag = uint64(sec)
	}
	d.Days, mag = mag/calendar.SecondsPerDay, mag%calendar.SecondsPerDay
	d.Hours, mag = mag/calendar.SecondsPerHour, mag%calendar.SecondsPerHour
	d.Minutes, d.Seconds = mag/calendar.SecondsPerMinute, mag%calendar.SecondsPerMinute
	return d
}

// New returns a duration from its parts. sign < 0 selects a negative span.
func New(sign int, days, hours, minutes, seconds uint64) Duration {
	d := Duration{Days: days, Hours: hours, Minutes: minutes, Seconds: seconds, Sign: 1}
	if sign < 0 {
		d.Sign = -1
	}
	return d
}

// Negative reports whether d is a negative span.
func (d Duration) Negative() bool { return d.Sign < 0 }

// Magnitude returns the unsigned length of d in seconds. Overflow wraps.
func (d Duration) Magnitude() uint64 {
	return d.Days*calendar.SecondsPerDay +
		d.Hours*calendar.SecondsPerHour +
		d.Minutes*calendar.SecondsPerMinute +
		d.Seconds
}

// Total returns the signed length of d in seconds.
func (d Duration) Total() int64 {
	m := d.Magnitude()
	if d.Negative() {
		return -int64(m)
	}
	return int64(m)
}

// Normalize carries oversize fields into the larger units, so that hours,
// minutes and seconds are within their clock ranges. A zero span becomes
// positive.
func (d Duration) Normalize() Duration {
	return FromSeconds(d.Total())
}

// Neg returns d with the opposite sign.
func (d Duration) Neg() Duration {
	if d.Negative() {
		d.Sign = 1
	} else {
		d.Sign = -1
	}
	return d
}

func (d Duration) String() string {
	sign := ""
	if d.Negative() {
		sign = "-"
	}
	return fmt.Sprintf("%s%dd%02dh%02dm%02ds", sign, d.Days, d.Hours, d.Minutes, d.Seconds)
}
