package model

import (
	"gzctime/internal/calendar"
	"gzctime/internal/gztime"
	"gzctime/internal/zone"
)

// Entry is a named instant as exchanged through iCalendar: a start, an
// optional end and the zone the start was written in. Recurrence is kept
// unexpanded.
type Entry struct {
	SourceID string // feed ID for imported entries
	UID      string // iCalendar UID

	Summary     string
	Description string

	Start gztime.Time
	End   gztime.Time // equal to Start for point-in-time entries

	// Zone is the zone the start was written in. Geographic zones carry
	// the DST status in effect at Start.
	Zone zone.Zone
	// TZID is the IANA location name, if the entry came with one.
	TZID string

	AllDay bool

	Rule       string        // raw RRULE value
	ExDates    []gztime.Time // excluded starts
	Recurrence *gztime.Time  // RECURRENCE-ID of an overriding entry
}

// IsOverride reports whether e replaces one instance of a recurring entry.
func (e Entry) IsOverride() bool { return e.Recurrence != nil }

// Occurrence is one concrete instance of an entry after recurrence
// expansion.
type Occurrence struct {
	SourceID string
	UID      string

	// InstanceKey identifies the occurrence; it is the GZC string of the
	// start in UTC.
	InstanceKey string

	Summary string
	AllDay  bool

	Start gztime.Time
	End   gztime.Time

	// Calendar is the start as a calendar in the entry's zone.
	Calendar calendar.Calendar
}
