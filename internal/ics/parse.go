package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"gzctime/internal/codec"
	"gzctime/internal/gztime"
	appLog "gzctime/internal/log"
	"gzctime/internal/model"
	"gzctime/internal/zone"
)

// PropertyGZCStart carries the GZC string of DTSTART in exported events.
// When present on import it is authoritative for the start and its zone.
const PropertyGZCStart = ical.ComponentProperty("X-GZC-START")

// Import parses an ICS payload into entries.
//
//   - DTSTART in UTC (trailing Z) yields a UTC entry.
//   - DTSTART with TZID yields a geographic zone with the DST status the
//     location has at that instant.
//   - Floating DTSTART is read as local wall clock through conv.
//   - X-GZC-START, when present, overrides all of the above.
//
// Events that cannot be read are logged and skipped.
func Import(src Source, body []byte, conv *gztime.Converter) ([]model.Entry, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}
	if conv == nil {
		conv = gztime.Default
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "id", src.ID, "url", redactURL(src.URL))
		return nil, err
	}

	entries := make([]model.Entry, 0)
	for _, ve := range cal.Events() {
		e, perr := parseVEvent(src, ve, conv)
		if perr != nil {
			// Log and skip this event, but keep parsing others.
			appLog.Error("ics vevent parse failed", perr, "id", src.ID, "url", redactURL(src.URL))
			continue
		}
		entries = append(entries, e)
	}

	appLog.Info("ics parse completed", "id", src.ID, "url", redactURL(src.URL), "entry_count", len(entries))
	return entries, nil
}

func parseVEvent(src Source, ve *ical.VEvent, conv *gztime.Converter) (model.Entry, error) {
	out := model.Entry{SourceID: src.ID}

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("uid %s: missing DTSTART", out.UID)
	}
	out.AllDay = isDateValue(dtStart)
	out.TZID = param(dtStart, "TZID")

	if p := ve.GetProperty(PropertyGZCStart); p != nil && p.Value != "" {
		c, err := codec.DecodeCalendar(p.Value)
		if err != nil {
			return out, fmt.Errorf("uid %s: %w", out.UID, err)
		}
		out.Start, err = conv.FromCalendar(c)
		if err != nil {
			return out, fmt.Errorf("uid %s: %w", out.UID, err)
		}
		out.Zone = c.Zone
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return out, fmt.Errorf("uid %s: DTSTART: %w", out.UID, err)
		}
		out.Start, out.Zone, err = readInstant(dtStart.Value, out.TZID, start, conv)
		if err != nil {
			return out, fmt.Errorf("uid %s: DTSTART: %w", out.UID, err)
		}
	}

	out.End = out.Start
	if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
		if end, err := ve.GetEndAt(); err == nil {
			if t, _, err := readInstant(dtEnd.Value, param(dtEnd, "TZID"), end, conv); err == nil {
				out.End = t
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.Rule = p.Value
	}

	// EXDATE can appear multiple times, each with a list of values.
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		tzid := param(p, "TZID")
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, tzid, conv); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	if rid := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); rid != nil {
		if t, err := parseICSTime(rid.Value, param(rid, "TZID"), conv); err == nil {
			out.Recurrence = &t
		}
	}

	return out, nil
}

// readInstant turns a DTSTART/DTEND value into an instant and the zone it
// was written in. parsed is the library's reading of the same value.
func readInstant(raw, tzid string, parsed time.Time, conv *gztime.Converter) (gztime.Time, zone.Zone, error) {
	switch {
	case strings.HasSuffix(raw, "Z"):
		return gztime.Unix(parsed.Unix()), zone.UTC, nil
	case tzid != "":
		p, err := zone.Location(tzid)
		if err != nil {
			return gztime.Time{}, zone.Zone{}, err
		}
		z, err := p.Zone(parsed.Unix())
		if err != nil {
			return gztime.Time{}, zone.Zone{}, err
		}
		return gztime.Unix(parsed.Unix()), z, nil
	}

	// Floating: the wall clock is local to whoever reads it.
	t, err := conv.DateLocal(int64(parsed.Year()), int(parsed.Month()), parsed.Day(), parsed.Hour(), parsed.Minute(), parsed.Second())
	if err != nil {
		return gztime.Time{}, zone.Zone{}, err
	}
	return t, conv.Engine().LocalZone(t.Unix()), nil
}

// parseICSTime parses a bare DATE or DATE-TIME value as used by EXDATE and
// RECURRENCE-ID.
func parseICSTime(v, tzid string, conv *gztime.Converter) (gztime.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return gztime.Time{}, errors.New("empty time value")
	}

	layout := "20060102"
	if strings.Contains(v, "T") {
		layout = "20060102T150405"
	}
	if strings.HasSuffix(v, "Z") {
		t, err := time.Parse("20060102T150405Z", v)
		if err != nil {
			return gztime.Time{}, err
		}
		return gztime.Unix(t.Unix()), nil
	}

	if tzid != "" {
		loc, err := time.LoadLocation(tzid)
		if err != nil {
			return gztime.Time{}, fmt.Errorf("%w: %v", zone.ErrPlatformUnavailable, err)
		}
		t, err := time.ParseInLocation(layout, v, loc)
		if err != nil {
			return gztime.Time{}, err
		}
		return gztime.Unix(t.Unix()), nil
	}

	t, err := time.Parse(layout, v)
	if err != nil {
		return gztime.Time{}, err
	}
	return conv.DateLocal(int64(t.Year()), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func isDateValue(p *ical.IANAProperty) bool {
	return strings.EqualFold(param(p, "VALUE"), "DATE") || !strings.Contains(p.Value, "T")
}

func param(p *ical.IANAProperty, name string) string {
	if p == nil || p.ICalParameters == nil {
		return ""
	}
	if vs, ok := p.ICalParameters[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}
