package ics

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"gzctime/internal/calendar"
	"gzctime/internal/codec"
	"gzctime/internal/gztime"
	appLog "gzctime/internal/log"
	"gzctime/internal/model"
	"gzctime/internal/zone"
)

const (
	defaultMaxOccurrencesPerEntry = 5000
)

// ErrRange is returned when the expansion window ends before it starts.
var ErrRange = errors.New("expand: range end is before range start")

// ExpandConfig controls how recurrence expansion is performed.
type ExpandConfig struct {
	// From / To define the inclusive window for occurrence starts.
	From gztime.Time
	To   gztime.Time

	// MaxOccurrencesPerEntry is a safety cap against unbounded rules. If
	// zero, defaultMaxOccurrencesPerEntry is used.
	MaxOccurrencesPerEntry int

	// Mode is the epoch mode used for the occurrence calendars.
	Mode calendar.Mode
}

// ExpandResult wraps the expanded occurrences and the UIDs that hit the cap.
type ExpandResult struct {
	Occurrences []model.Occurrence
	Truncated   []string
}

// ExpandAll expands entries into occurrences within the window. It handles
// single entries, RRULE recurrence, EXDATE exclusions and RECURRENCE-ID
// overrides. Occurrences are ordered by start, then UID.
func ExpandAll(entries []model.Entry, cfg ExpandConfig) (ExpandResult, error) {
	var result ExpandResult

	if cfg.To.Before(cfg.From) {
		return result, ErrRange
	}
	if cfg.MaxOccurrencesPerEntry <= 0 {
		cfg.MaxOccurrencesPerEntry = defaultMaxOccurrencesPerEntry
	}

	// Group base entries and overrides by UID.
	baseByUID := make(map[string][]model.Entry)
	overridesByUID := make(map[string][]model.Entry)
	uids := make([]string, 0)
	for _, e := range entries {
		if e.IsOverride() {
			overridesByUID[e.UID] = append(overridesByUID[e.UID], e)
			continue
		}
		if _, seen := baseByUID[e.UID]; !seen {
			uids = append(uids, e.UID)
		}
		baseByUID[e.UID] = append(baseByUID[e.UID], e)
	}

	for _, uid := range uids {
		ov := overridesByUID[uid]
		truncated := false
		for _, e := range baseByUID[uid] {
			occ, hitCap, err := expandEntry(e, ov, cfg)
			if err != nil {
				appLog.Error("expand: failed to parse RRULE", err, "uid", e.UID, "rrule", e.Rule)
				continue
			}
			truncated = truncated || hitCap
			result.Occurrences = append(result.Occurrences, occ...)
		}
		if truncated {
			result.Truncated = append(result.Truncated, uid)
			appLog.Warn("expand: truncated occurrences for UID due to cap",
				"uid", uid,
				"cap", cfg.MaxOccurrencesPerEntry,
			)
		}
	}

	slices.SortStableFunc(result.Occurrences, func(a, b model.Occurrence) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		switch {
		case a.UID < b.UID:
			return -1
		case a.UID > b.UID:
			return 1
		}
		return 0
	})
	return result, nil
}

// Expand returns the starts of e within [from, to], at most max of them, and
// whether the cap cut the list short.
func Expand(e model.Entry, from, to gztime.Time, max int) ([]gztime.Time, bool, error) {
	if e.Rule != "" {
		if _, err := rrule.StrToRRule(e.Rule); err != nil {
			return nil, false, fmt.Errorf("expand: %w", err)
		}
	}
	res, err := ExpandAll([]model.Entry{e}, ExpandConfig{From: from, To: to, MaxOccurrencesPerEntry: max})
	if err != nil {
		return nil, false, err
	}
	starts := make([]gztime.Time, len(res.Occurrences))
	for i, o := range res.Occurrences {
		starts[i] = o.Start
	}
	return starts, len(res.Truncated) > 0, nil
}

func expandEntry(e model.Entry, overrides []model.Entry, cfg ExpandConfig) ([]model.Occurrence, bool, error) {
	if e.Rule == "" {
		if e.End.Before(cfg.From) || cfg.To.Before(e.Start) {
			return nil, false, nil
		}
		return []model.Occurrence{occurrenceFor(e, overrides, e.Start, cfg.Mode)}, false, nil
	}

	r, err := rrule.StrToRRule(e.Rule)
	if err != nil {
		return nil, false, err
	}

	// The rule recurs on the wall clock of the entry's location, so DST
	// transitions move the UTC instant but not the local time.
	loc := location(e)
	r.DTStart(e.Start.Std().In(loc))

	var set rrule.Set
	set.RRule(r)
	for _, ex := range e.ExDates {
		set.ExDate(ex.Std().In(loc))
	}

	// Stop one past the cap so truncation is detectable without expanding
	// the whole window.
	out := make([]model.Occurrence, 0)
	hitCap := false
	iter := set.Iterator()
	for {
		t, ok := iter()
		if !ok || t.After(cfg.To.Std()) {
			break
		}
		if t.Before(cfg.From.Std()) {
			continue
		}
		if len(out) == cfg.MaxOccurrencesPerEntry {
			hitCap = true
			break
		}
		out = append(out, occurrenceFor(e, overrides, gztime.Unix(t.Unix()), cfg.Mode))
	}
	return out, hitCap, nil
}

// occurrenceFor builds the occurrence starting at start, applying an
// override whose RECURRENCE-ID matches it.
func occurrenceFor(e model.Entry, overrides []model.Entry, start gztime.Time, mode calendar.Mode) model.Occurrence {
	length := e.End.Sub(e.Start)
	src := e
	for _, ov := range overrides {
		if ov.Recurrence != nil && ov.Recurrence.Equal(start) {
			src = ov
			start = ov.Start
			length = ov.End.Sub(ov.Start)
			break
		}
	}

	z := src.Zone
	if z.IsGeographic() && !start.Equal(src.Start) {
		z = zoneAt(src, start)
	}

	return model.Occurrence{
		SourceID:    src.SourceID,
		UID:         src.UID,
		InstanceKey: codec.EncodeCalendar(calendar.Decompose(start.Unix(), zone.UTC, mode)),
		Summary:     src.Summary,
		AllDay:      src.AllDay,
		Start:       start,
		End:         start.Add(length),
		Calendar:    calendar.Decompose(start.Unix(), z, mode),
	}
}

// zoneAt returns the zone of e at another instant. Without a location the
// DST status of another date is unknown, so the zone becomes relative.
func zoneAt(e model.Entry, at gztime.Time) zone.Zone {
	if e.TZID != "" {
		if p, err := zone.Location(e.TZID); err == nil {
			if z, err := p.Zone(at.Unix()); err == nil {
				return z
			}
		}
	}
	return e.Zone.AsRelative()
}

// location returns the location whose wall clock the rule of e follows.
func location(e model.Entry) *time.Location {
	if e.TZID != "" {
		if loc, err := time.LoadLocation(e.TZID); err == nil {
			return loc
		}
	}
	off := e.Zone.UTCOffset()
	return time.FixedZone(off.String(), int(off.Seconds()))
}
