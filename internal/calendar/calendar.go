// Package calendar converts between linear time (unix seconds) and a
// calendar view with year, month, day, wall clock, weekday, day of year and
// calendar week, using 400/100/4/1-year block decomposition anchored at
// 2001-01-01.
package calendar

import (
	"errors"
	"fmt"

	"gzctime/internal/zone"
)

// ErrInvalidField is returned by Validate for out-of-range calendar fields.
var ErrInvalidField = errors.New("calendar: invalid field")

// Calendar is a derived, human-readable view of an instant in a zone.
//
// Year, Month, Day, Hour, Minute, Second and Zone identify the instant.
// DayInWeek, DayInYear and CalendarWeek are derived and ignored by Compose.
type Calendar struct {
	Year   int64
	Month  int // 1..12
	Day    int // 1..31
	Hour   int // 0..23
	Minute int // 0..59
	Second int // 0..59

	Zone zone.Zone

	DayInWeek    int // 1 = Monday .. 7 = Sunday
	DayInYear    int // 1-based
	CalendarWeek int // ISO week, 0 = last week of the previous year

	// Reserved, never computed.
	LeapSecond  bool
	Picoseconds uint32
}

// DST returns the DST status carried by the calendar's zone.
func (c Calendar) DST() zone.DST { return c.Zone.DST() }

// Validate checks the identifying fields against their ranges.
func (c Calendar) Validate() error {
	switch {
	case c.Month < 1 || c.Month > 12:
		return fmt.Errorf("%w: month %d", ErrInvalidField, c.Month)
	case c.Day < 1 || c.Day > DaysIn(c.Year, c.Month):
		return fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidField, c.Day, c.Year, c.Month)
	case c.Hour < 0 || c.Hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidField, c.Hour)
	case c.Minute < 0 || c.Minute > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidField, c.Minute)
	case c.Second < 0 || c.Second > 59:
		return fmt.Errorf("%w: second %d", ErrInvalidField, c.Second)
	}
	return nil
}

// SameWallClock reports whether c and o show the same date, clock and zone.
func (c Calendar) SameWallClock(o Calendar) bool {
	return c.Year == o.Year && c.Month == o.Month && c.Day == o.Day &&
		c.Hour == o.Hour && c.Minute == o.Minute && c.Second == o.Second &&
		c.Zone == o.Zone
}

func (c Calendar) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d %s", c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, c.Zone)
}
