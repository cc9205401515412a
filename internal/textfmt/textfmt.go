// Package textfmt is the free-form text collaborator: strptime/strftime
// style parsing and formatting of wall-clock fields. It is not used by the
// GZC codec, which is strict; callers that accept loose input parse here
// and build a calendar from the result.
package textfmt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
	"golang.org/x/text/unicode/norm"

	"gzctime/internal/calendar"
	"gzctime/internal/zone"
)

// ErrParse is wrapped when text does not match its format.
var ErrParse = errors.New("textfmt: text does not match format")

// Fields are the wall-clock values read from a text.
type Fields struct {
	Year   int64
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int

	// Zone is set only when the format contains a numeric zone (%z or %:z).
	// It is always relative.
	Zone    zone.Zone
	HasZone bool
}

// Calendar returns the fields as a calendar in zone z.
func (f Fields) Calendar(z zone.Zone) calendar.Calendar {
	return calendar.Calendar{
		Year: f.Year, Month: f.Month, Day: f.Day,
		Hour: f.Hour, Minute: f.Minute, Second: f.Second,
		Zone: z,
	}
}

// Parse reads text according to a strptime format. The text is NFKC
// normalized first, so full-width digits and separators are accepted.
func Parse(text, format string) (Fields, error) {
	src := norm.NFKC.String(strings.TrimSpace(text))
	t, err := timefmt.Parse(src, format)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: %q with %q: %v", ErrParse, text, format, err)
	}

	f := Fields{
		Year:   int64(t.Year()),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
	if hasNumericZone(format) {
		_, off := t.Zone()
		if off%60 != 0 {
			return Fields{}, fmt.Errorf("%w: zone offset of %q is not whole minutes", ErrParse, text)
		}
		f.Zone = zone.Relative(zone.Offset(off / 60))
		f.HasZone = true
	}
	return f, nil
}

// Format renders c with a strftime format. %Z prints the GZC status token
// (UTC, STD or DST) and %z the UTC offset in effect.
func Format(c calendar.Calendar, format string) string {
	loc := time.FixedZone(c.Zone.DST().Token(), int(c.Zone.UTCOffset().Seconds()))
	t := time.Date(int(c.Year), time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, 0, loc)
	return timefmt.Format(t, format)
}

func hasNumericZone(format string) bool {
	return strings.Contains(format, "%z") || strings.Contains(format, "%:z")
}
