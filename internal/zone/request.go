package zone

import (
	"fmt"
	"strconv"
	"strings"
)

type requestKind uint8

const (
	requestLocal requestKind = iota
	requestAsUTC
	requestRelative
	requestGeographic
)

// Request selects the zone a calendar view should be expressed in.
// The zero value is Local.
type Request struct {
	kind   requestKind
	offset Offset
	dst    DST
}

// Local requests the platform's local zone in effect at the instant.
func Local() Request { return Request{kind: requestLocal} }

// AsUTC requests the local wall clock, labelled as a relative offset.
func AsUTC() Request { return Request{kind: requestAsUTC} }

// ToUTC requests offset zero.
func ToUTC() Request { return RelativeTo(0) }

// RelativeTo requests the wall clock at a UTC-relative offset.
func RelativeTo(o Offset) Request { return Request{kind: requestRelative, offset: o} }

// GeographicTo requests the wall clock of a geographic zone. The caller must
// supply the DST status; with Unspecified the request can only be honoured
// for values already carrying that geographic zone.
func GeographicTo(o Offset, dst DST) Request {
	return Request{kind: requestGeographic, offset: o, dst: dst}
}

// For returns the request that reproduces z.
func For(z Zone) Request {
	if z.IsGeographic() {
		return GeographicTo(z.Offset(), z.DST())
	}
	return RelativeTo(z.Offset())
}

// IsLocal reports whether r defers to the platform's local zone.
func (r Request) IsLocal() bool { return r.kind == requestLocal }

// IsAsUTC reports whether r asks for the local wall clock as a relative zone.
func (r Request) IsAsUTC() bool { return r.kind == requestAsUTC }

// Target returns the explicit zone r asks for. ok is false for Local and
// AsUTC requests, which depend on the platform, and err is
// ErrUnsupportedTranslation for a geographic request without DST status.
func (r Request) Target() (z Zone, ok bool, err error) {
	switch r.kind {
	case requestRelative:
		return Relative(r.offset), true, nil
	case requestGeographic:
		if r.dst == Unspecified {
			return Zone{}, true, fmt.Errorf("%w: target %s", ErrUnsupportedTranslation, r.offset)
		}
		return Geographic(r.offset, r.dst), true, nil
	default:
		return Zone{}, false, nil
	}
}

// GeographicOffset returns the offset of a geographic request whose DST
// status is unspecified.
func (r Request) GeographicOffset() (Offset, bool) {
	if r.kind == requestGeographic && r.dst == Unspecified {
		return r.offset, true
	}
	return 0, false
}

func (r Request) String() string {
	switch r.kind {
	case requestAsUTC:
		return "asutc"
	case requestRelative:
		return r.offset.String()
	case requestGeographic:
		switch r.dst {
		case Active:
			return "DST" + r.offset.String()
		case Inactive:
			return "STD" + r.offset.String()
		default:
			return "GEO" + r.offset.String()
		}
	default:
		return "local"
	}
}

// ParseRequest parses the textual request forms accepted on the command
// line and over HTTP:
//
//	local | "" | utc | asutc | ±hh[:mm] | STD±hh[:mm] | DST±hh[:mm] | GEO±hh[:mm]
func ParseRequest(s string) (Request, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "local":
		return Local(), nil
	case "utc", "z":
		return ToUTC(), nil
	case "asutc":
		return AsUTC(), nil
	}

	if len(s) > 3 {
		prefix := strings.ToUpper(s[:3])
		var dst DST
		geographic := true
		switch prefix {
		case "STD":
			dst = Inactive
		case "DST":
			dst = Active
		case "GEO":
			dst = Unspecified
		default:
			geographic = false
		}
		if geographic {
			o, err := ParseOffset(s[3:])
			if err != nil {
				return Request{}, err
			}
			return GeographicTo(o, dst), nil
		}
	}

	o, err := ParseOffset(s)
	if err != nil {
		return Request{}, err
	}
	return RelativeTo(o), nil
}

// ParseOffset parses ±hh or ±hh:mm. Hours must not exceed 14.
func ParseOffset(s string) (Offset, error) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("zone: invalid offset %q", s)
	}
	neg := s[0] == '-'
	hs, ms, hasMinutes := strings.Cut(s[1:], ":")
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 14 || len(hs) > 2 {
		return 0, fmt.Errorf("zone: invalid offset hours %q", s)
	}
	m := 0
	if hasMinutes {
		m, err = strconv.Atoi(ms)
		if err != nil || m < 0 || m > 59 || len(ms) != 2 {
			return 0, fmt.Errorf("zone: invalid offset minutes %q", s)
		}
	}
	sign := 1
	if neg {
		sign = -1
	}
	return SignedOffset(sign, h, m), nil
}
