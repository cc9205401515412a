// Package codec implements the GZC text encodings:
//
//	calendar  YYYY-MM-DD#hh:mm:ss#{UTC|STD|DST}#±hh:mm
//	duration  D<days>#hh:mm:ss
//
// Decoding is strict. Field widths, separators and ranges must match the
// canonical form exactly, so that a decoded value always re-encodes to the
// input text.
package codec

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gzctime/internal/calendar"
	"gzctime/internal/duration"
	"gzctime/internal/zone"
)

// ErrMalformedText is wrapped by every decoding failure.
var ErrMalformedText = errors.New("codec: malformed text")

// SyntaxError describes why a text could not be decoded.
type SyntaxError struct {
	Input  string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("codec: malformed text %q: %s", e.Input, e.Reason)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedText }

func syntaxErr(input, format string, args ...any) error {
	return &SyntaxError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// DurationPrefix marks an encoded duration.
const DurationPrefix = "D"

// Years carry at least four digits after an optional minus sign, so year
// -1 is -0001 rather than the shorter -001.
var (
	calendarPattern = regexp.MustCompile(`^(-?[0-9]{4,})-([0-9]{2})-([0-9]{2})#([0-9]{2}):([0-9]{2}):([0-9]{2})#(UTC|STD|DST)#([+-])([0-9]{2}):([0-9]{2})$`)
	durationPattern = regexp.MustCompile(`^D(-?)([0-9]+)#([0-9]{2}):([0-9]{2}):([0-9]{2})$`)
)

// IsDuration reports whether s is in duration form. A leading D is the
// only thing that tells the two encodings apart.
func IsDuration(s string) bool {
	return strings.HasPrefix(s, DurationPrefix)
}

// EncodeCalendar renders the identifying fields of c. The zone token is
// UTC for relative zones and STD or DST for geographic ones, followed by
// the stored offset.
func EncodeCalendar(c calendar.Calendar) string {
	return fmt.Sprintf("%s-%02d-%02d#%02d:%02d:%02d#%s#%s",
		encodeYear(c.Year), c.Month, c.Day, c.Hour, c.Minute, c.Second,
		c.Zone.DST().Token(), c.Zone.Offset())
}

// encodeYear pads to four digits after the sign.
func encodeYear(y int64) string {
	if y < 0 {
		return fmt.Sprintf("%05d", y)
	}
	return fmt.Sprintf("%04d", y)
}

// DecodeCalendar parses a canonical calendar string. Weekday, day of year
// and calendar week of the result are derived from the decoded instant.
func DecodeCalendar(s string) (calendar.Calendar, error) {
	m := calendarPattern.FindStringSubmatch(s)
	if m == nil {
		if IsDuration(s) {
			return calendar.Calendar{}, syntaxErr(s, "duration where a calendar was expected")
		}
		return calendar.Calendar{}, syntaxErr(s, "does not match YYYY-MM-DD#hh:mm:ss#{UTC|STD|DST}#±hh:mm")
	}

	year, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return calendar.Calendar{}, syntaxErr(s, "year out of range")
	}
	if encodeYear(year) != m[1] {
		return calendar.Calendar{}, syntaxErr(s, "year %q is not in canonical width", m[1])
	}

	c := calendar.Calendar{
		Year:   year,
		Month:  atoi(m[2]),
		Day:    atoi(m[3]),
		Hour:   atoi(m[4]),
		Minute: atoi(m[5]),
		Second: atoi(m[6]),
	}
	if err := c.Validate(); err != nil {
		return calendar.Calendar{}, &SyntaxError{Input: s, Reason: err.Error()}
	}

	oh, om := atoi(m[9]), atoi(m[10])
	if oh > 14 || om > 59 {
		return calendar.Calendar{}, syntaxErr(s, "zone offset %s%s:%s out of range", m[8], m[9], m[10])
	}
	off := zone.Offset(oh)*zone.Hour + zone.Offset(om)
	if m[8] == "-" {
		off = -off
	}
	switch m[7] {
	case "STD":
		c.Zone = zone.Geographic(off, zone.Inactive)
	case "DST":
		c.Zone = zone.Geographic(off, zone.Active)
	default:
		c.Zone = zone.Relative(off)
	}

	// Fill in the derived fields. Years too large for a 64-bit second
	// count do not survive the round trip.
	full := calendar.Decompose(calendar.Compose(c, calendar.Wide), c.Zone, calendar.Wide)
	if !full.SameWallClock(c) {
		return calendar.Calendar{}, syntaxErr(s, "year %d out of range", year)
	}
	return full, nil
}

// EncodeDuration renders d as D<days>#hh:mm:ss. Only the day field carries
// the sign; a negative span shorter than a day is written D-0#hh:mm:ss.
// Oversize fields are carried first.
func EncodeDuration(d duration.Duration) string {
	n := d.Normalize()
	sign := ""
	if n.Negative() {
		sign = "-"
	}
	return fmt.Sprintf("D%s%d#%02d:%02d:%02d", sign, n.Days, n.Hours, n.Minutes, n.Seconds)
}

// DecodeDuration parses a canonical duration string.
func DecodeDuration(s string) (duration.Duration, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return duration.Duration{}, syntaxErr(s, "does not match D<days>#hh:mm:ss")
	}
	if len(m[2]) > 1 && m[2][0] == '0' {
		return duration.Duration{}, syntaxErr(s, "leading zero in day count")
	}
	days, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil || days > maxDays {
		return duration.Duration{}, syntaxErr(s, "day count out of range")
	}
	h, mi, sec := atoi(m[3]), atoi(m[4]), atoi(m[5])
	switch {
	case h > 23:
		return duration.Duration{}, syntaxErr(s, "hour %d out of range", h)
	case mi > 59:
		return duration.Duration{}, syntaxErr(s, "minute %d out of range", mi)
	case sec > 59:
		return duration.Duration{}, syntaxErr(s, "second %d out of range", sec)
	}

	sign := 1
	if m[1] == "-" {
		sign = -1
	}
	d := duration.New(sign, days, uint64(h), uint64(mi), uint64(sec))
	if d.Magnitude() > maxMagnitude(d.Negative()) {
		return duration.Duration{}, syntaxErr(s, "span does not fit into a 64-bit second count")
	}
	return d, nil
}

// maxDays bounds the day field to what a signed 64-bit second count holds.
const maxDays = (1<<63)/calendar.SecondsPerDay + 1

func maxMagnitude(negative bool) uint64 {
	if negative {
		return 1 << 63
	}
	return 1<<63 - 1
}

// atoi converts a run of ASCII digits already matched by a pattern.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
