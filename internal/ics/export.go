package ics

import (
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"

	"gzctime/internal/codec"
	"gzctime/internal/gztime"
	"gzctime/internal/model"
	"gzctime/internal/zone"
)

// ExportOptions controls the generated VCALENDAR.
type ExportOptions struct {
	// ProductID is written as PRODID.
	ProductID string
	// Now stamps DTSTAMP; zero means the current time.
	Now time.Time
	// Converter computes the calendar written to X-GZC-START; nil uses
	// gztime.Default.
	Converter *gztime.Converter
}

// Export renders entries as a VCALENDAR with one VEVENT each. DTSTART and
// DTEND are written in UTC; X-GZC-START keeps the start in the entry's
// own zone so that Import restores it exactly.
func Export(entries []model.Entry, opts ExportOptions) (string, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	conv := opts.Converter
	if conv == nil {
		conv = gztime.Default
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	if opts.ProductID != "" {
		cal.SetProductId(opts.ProductID)
	}

	for _, e := range entries {
		if e.UID == "" {
			return "", errors.New("ics export: entry without UID")
		}
		c, err := conv.Engine().ToCalendar(e.Start.Unix(), zone.For(e.Zone))
		if err != nil {
			return "", err
		}

		ev := cal.AddEvent(e.UID)
		ev.SetDtStampTime(opts.Now)
		ev.SetStartAt(e.Start.Std())
		end := e.End
		if end.Before(e.Start) {
			end = e.Start
		}
		ev.SetEndAt(end.Std())
		if e.Summary != "" {
			ev.SetSummary(e.Summary)
		}
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		ev.SetProperty(PropertyGZCStart, codec.EncodeCalendar(c))
		if e.Rule != "" {
			ev.AddProperty(ical.ComponentPropertyRrule, e.Rule)
		}
	}

	return cal.Serialize(), nil
}
