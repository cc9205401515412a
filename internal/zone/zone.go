// Package zone models geographic time zones, daylight saving status and
// UTC-relative offsets as distinct concepts.
//
// A geographic zone is a region's standard-time offset from UTC and does not
// change across DST transitions. A relative zone is the actual wall-clock
// deviation from UTC, i.e. the geographic offset plus one hour while DST is
// active. The two are never stored in the same field without a tag: Zone is
// either Relative (DST unspecified) or Geographic (DST inactive or active).
package zone

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedTranslation is returned when a value would have to be
	// moved into a geographic zone whose DST status for that date is unknown.
	ErrUnsupportedTranslation = errors.New("zone: translation to a geographic zone requires DST information")

	// ErrPlatformUnavailable is returned by a Platform that cannot determine
	// the local zone.
	ErrPlatformUnavailable = errors.New("zone: local time zone unavailable")
)

// DST is the daylight saving status of a wall-clock reading.
type DST int8

const (
	// Unspecified means the offset is already UTC-relative and DST does not apply.
	Unspecified DST = iota
	// Inactive means standard time.
	Inactive
	// Active means daylight saving time (wall clock one hour ahead).
	Active
)

// Token returns the GZC status token for d: UTC, STD or DST.
func (d DST) Token() string {
	switch d {
	case Inactive:
		return "STD"
	case Active:
		return "DST"
	default:
		return "UTC"
	}
}

func (d DST) String() string {
	switch d {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	default:
		return "unspecified"
	}
}

// Offset is a UTC offset in minutes east of Greenwich.
type Offset int32

// Hour is a one-hour offset.
const Hour Offset = 60

// Hours returns an offset of h whole hours.
func Hours(h int) Offset {
	return Offset(h) * Hour
}

// HoursMinutes returns an offset of h hours and m minutes. The sign of h
// applies to the minutes as well, so HoursMinutes(-3, 30) is -03:30.
// Offsets west of UTC by less than an hour need SignedOffset.
func HoursMinutes(h, m int) Offset {
	if h < 0 {
		return Offset(h)*Hour - Offset(m)
	}
	return Offset(h)*Hour + Offset(m)
}

// SignedOffset returns the offset ±hh:mm from unsigned hours and minutes.
// A negative sign selects west of UTC; SignedOffset(-1, 0, 30) is -00:30.
func SignedOffset(sign, hours, minutes int) Offset {
	o := Offset(hours)*Hour + Offset(minutes)
	if sign < 0 {
		return -o
	}
	return o
}

// Seconds returns o in seconds.
func (o Offset) Seconds() int64 {
	return int64(o) * 60
}

// Split returns the sign (+1 or -1) and the absolute hours and minutes of o.
func (o Offset) Split() (sign, hours, minutes int) {
	sign = 1
	v := int(o)
	if v < 0 {
		sign = -1
		v = -v
	}
	return sign, v / 60, v % 60
}

// String renders o as ±hh:mm.
func (o Offset) String() string {
	sign, h, m := o.Split()
	c := '+'
	if sign < 0 {
		c = '-'
	}
	return fmt.Sprintf("%c%02d:%02d", c, h, m)
}

// Kind tags the meaning of a Zone's offset.
type Kind uint8

const (
	// KindRelative offsets are the actual wall-clock deviation from UTC.
	KindRelative Kind = iota
	// KindGeographic offsets are the standard-time offset of a region.
	KindGeographic
)

// Zone is either a relative (UTC-deviation) offset or a geographic offset
// together with its DST status. The zero value is UTC.
type Zone struct {
	kind   Kind
	offset Offset
	dst    DST
}

// UTC is the zero relative offset.
var UTC = Zone{}

// Relative returns a UTC-relative zone. Its DST status is Unspecified.
func Relative(o Offset) Zone {
	return Zone{kind: KindRelative, offset: o}
}

// Geographic returns a geographic zone with the given DST status. Passing
// Unspecified yields a relative zone, because a geographic offset without
// DST status cannot be mapped back to UTC.
func Geographic(o Offset, dst DST) Zone {
	if dst != Inactive && dst != Active {
		return Relative(o)
	}
	return Zone{kind: KindGeographic, offset: o, dst: dst}
}

// Kind reports whether z is relative or geographic.
func (z Zone) Kind() Kind { return z.kind }

// Offset returns the stored offset: the geographic offset for geographic
// zones, the UTC deviation for relative ones.
func (z Zone) Offset() Offset { return z.offset }

// DST returns the DST status, Unspecified for relative zones.
func (z Zone) DST() DST {
	if z.kind == KindRelative {
		return Unspecified
	}
	return z.dst
}

// IsGeographic reports whether z is a geographic zone.
func (z Zone) IsGeographic() bool { return z.kind == KindGeographic }

// UTCOffset returns the wall-clock deviation from UTC.
func (z Zone) UTCOffset() Offset {
	if z.kind == KindGeographic && z.dst == Active {
		return z.offset + Hour
	}
	return z.offset
}

// AsRelative reclassifies z as a relative zone with the same wall clock.
func (z Zone) AsRelative() Zone {
	return Relative(z.UTCOffset())
}

// String renders z as its GZC status token and offset, e.g. DST#+01:00.
func (z Zone) String() string {
	return z.DST().Token() + "#" + z.offset.String()
}
