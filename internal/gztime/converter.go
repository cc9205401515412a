package gztime

import (
	"fmt"

	"gzctime/internal/calendar"
	"gzctime/internal/codec"
	"gzctime/internal/textfmt"
	"gzctime/internal/zone"
)

// Converter ties time values to an engine, i.e. to a local-zone platform and
// an epoch mode. It is safe for concurrent use.
type Converter struct {
	engine *calendar.Engine
}

// NewConverter returns a converter for e. A nil e uses the system local zone
// in wide mode.
func NewConverter(e *calendar.Engine) *Converter {
	if e == nil {
		e = calendar.NewEngine(nil)
	}
	return &Converter{engine: e}
}

// Default converts with the system local zone in wide mode. The Time
// methods that need a zone use it.
var Default = NewConverter(nil)

// Engine returns the underlying engine.
func (c *Converter) Engine() *calendar.Engine { return c.engine }

// Calendar returns the calendar view of t for the request r.
func (c *Converter) Calendar(t Time, r zone.Request) (calendar.Calendar, error) {
	return c.engine.ToCalendar(t.sec, r)
}

// FromCalendar returns the instant of cal. Invalid fields are rejected.
func (c *Converter) FromCalendar(cal calendar.Calendar) (Time, error) {
	if err := cal.Validate(); err != nil {
		return Time{}, err
	}
	return Time{sec: c.engine.FromCalendar(cal)}, nil
}

// Date returns the instant of the given wall clock in zone z.
func (c *Converter) Date(year int64, month, day, hour, minute, second int, z zone.Zone) (Time, error) {
	return c.FromCalendar(calendar.Calendar{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
		Zone: z,
	})
}

// DateLocal returns the instant of the given local wall clock; the
// platform decides whether DST is in effect. Wall clocks skipped by a
// forward transition resolve to the instant the platform settles on.
func (c *Converter) DateLocal(year int64, month, day, hour, minute, second int) (Time, error) {
	cal := calendar.Calendar{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
	}
	if err := cal.Validate(); err != nil {
		return Time{}, err
	}

	// Guess with the wall clock read as UTC, then settle on the zone in
	// effect at the resulting instant.
	unix := c.engine.FromCalendar(cal)
	for i := 0; i < 3; i++ {
		z := c.engine.LocalZone(unix)
		if i > 0 && z == cal.Zone {
			break
		}
		cal.Zone = z
		unix = c.engine.FromCalendar(cal)
	}
	return Time{sec: unix}, nil
}

// Parse decodes a GZC string. Text starting with D is a duration, anything
// else a calendar.
func (c *Converter) Parse(text string) (Time, error) {
	if codec.IsDuration(text) {
		d, err := codec.DecodeDuration(text)
		if err != nil {
			return Time{}, err
		}
		return FromDuration(d), nil
	}
	cal, err := codec.DecodeCalendar(text)
	if err != nil {
		return Time{}, err
	}
	return Time{sec: c.engine.FromCalendar(cal)}, nil
}

// ParseFormat reads free-form text with a strptime format. Text without a
// numeric zone is taken as local time. An empty format means the GZC
// encoding.
func (c *Converter) ParseFormat(text, format string) (Time, error) {
	if format == "" {
		return c.Parse(text)
	}
	f, err := textfmt.Parse(text, format)
	if err != nil {
		return Time{}, err
	}
	if f.HasZone {
		return c.FromCalendar(f.Calendar(f.Zone))
	}
	return c.DateLocal(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second)
}

// String returns the GZC string of t in local time.
func (c *Converter) String(t Time) string {
	cal, err := c.Calendar(t, zone.Local())
	if err != nil {
		// Local requests do not fail.
		return fmt.Sprintf("gztime.Time(%d)", t.sec)
	}
	return codec.EncodeCalendar(cal)
}

// Format renders t for the request r with a strftime format. An empty
// format means the GZC encoding.
func (c *Converter) Format(t Time, format string, r zone.Request) (string, error) {
	cal, err := c.Calendar(t, r)
	if err != nil {
		return "", err
	}
	if format == "" {
		return codec.EncodeCalendar(cal), nil
	}
	return textfmt.Format(cal, format), nil
}
