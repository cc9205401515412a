package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"gzctime/internal/calendar"
	"gzctime/internal/clock"
	"gzctime/internal/codec"
	"gzctime/internal/gztime"
	"gzctime/internal/ics"
	appLog "gzctime/internal/log"
	"gzctime/internal/model"
	"gzctime/internal/textfmt"
	"gzctime/internal/zone"
)

const (
	maxNextCount  = 100
	maxUploadSize = 8 << 20
)

// calendarDTO is a JSON-friendly view of a calendar.
type calendarDTO struct {
	Year         int64  `json:"year"`
	Month        int    `json:"month"`
	Day          int    `json:"day"`
	Hour         int    `json:"hour"`
	Minute       int    `json:"minute"`
	Second       int    `json:"second"`
	DST          string `json:"dst"`
	Zone         string `json:"zone"`
	Geographic   bool   `json:"geographic"`
	DayInWeek    int    `json:"day_in_week"`
	DayInYear    int    `json:"day_in_year"`
	CalendarWeek int    `json:"calendar_week"`
}

// timeDTO is the response shape for a single instant.
type timeDTO struct {
	Unix      int64       `json:"unix"`
	GZC       string      `json:"gzc"`
	Formatted string      `json:"formatted,omitempty"`
	Calendar  calendarDTO `json:"calendar"`
}

// durationDTO is the response shape for /api/diff.
type durationDTO struct {
	Seconds  int64  `json:"seconds"`
	GZC      string `json:"gzc"`
	Negative bool   `json:"negative"`
	Days     uint64 `json:"days"`
	Hours    uint64 `json:"hours"`
	Minutes  uint64 `json:"minutes"`
	Secs     uint64 `json:"secs"`
}

type entryDTO struct {
	UID     string  `json:"uid"`
	Summary string  `json:"summary,omitempty"`
	TZID    string  `json:"tzid,omitempty"`
	Rule    string  `json:"rule,omitempty"`
	Start   timeDTO `json:"start"`
}

type occurrenceDTO struct {
	UID         string  `json:"uid"`
	InstanceKey string  `json:"instance_key"`
	Summary     string  `json:"summary,omitempty"`
	Start       timeDTO `json:"start"`
}

type importResponse struct {
	Entries     []entryDTO      `json:"entries"`
	Occurrences []occurrenceDTO `json:"occurrences,omitempty"`
	Truncated   []string        `json:"truncated_uids,omitempty"`
}

func toCalendarDTO(c calendar.Calendar) calendarDTO {
	return calendarDTO{
		Year: c.Year, Month: c.Month, Day: c.Day,
		Hour: c.Hour, Minute: c.Minute, Second: c.Second,
		DST:          c.DST().String(),
		Zone:         c.Zone.Offset().String(),
		Geographic:   c.Zone.IsGeographic(),
		DayInWeek:    c.DayInWeek,
		DayInYear:    c.DayInYear,
		CalendarWeek: c.CalendarWeek,
	}
}

func toTimeDTO(t gztime.Time, c calendar.Calendar) timeDTO {
	return timeDTO{Unix: t.Unix(), GZC: codec.EncodeCalendar(c), Calendar: toCalendarDTO(c)}
}

// errStatus maps library errors onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, codec.ErrMalformedText),
		errors.Is(err, textfmt.ErrParse),
		errors.Is(err, calendar.ErrInvalidField),
		errors.Is(err, clock.ErrSchedule),
		errors.Is(err, errBadParam):
		return http.StatusBadRequest
	case errors.Is(err, zone.ErrUnsupportedTranslation):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

var errBadParam = errors.New("bad parameter")

// request returns the zone request named by the zone query parameter.
func (s *Server) request(r *http.Request) (zone.Request, error) {
	v := r.URL.Query().Get("zone")
	if v == "" {
		return s.defaultZone, nil
	}
	req, err := zone.ParseRequest(v)
	if err != nil {
		return zone.Request{}, fmt.Errorf("%w: zone: %v", errBadParam, err)
	}
	return req, nil
}

// value reads an instant from a query parameter: plain seconds or any GZC
// string. An empty parameter is def.
func (s *Server) value(r *http.Request, name string, def gztime.Time) (gztime.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return gztime.Unix(n), nil
	}
	return s.conv.Parse(v)
}

// location is the wall clock that cron schedules follow.
func (s *Server) location() *time.Location {
	if sys, ok := s.conv.Engine().Platform().(zone.System); ok && sys.Location != nil {
		return sys.Location
	}
	return time.Local
}

// render converts t for the request and applies the optional format
// parameter.
func (s *Server) render(r *http.Request, t gztime.Time) (timeDTO, error) {
	req, err := s.request(r)
	if err != nil {
		return timeDTO{}, err
	}
	c, err := s.conv.Calendar(t, req)
	if err != nil {
		return timeDTO{}, err
	}
	dto := toTimeDTO(t, c)
	if f := r.URL.Query().Get("format"); f != "" {
		dto.Formatted = textfmt.Format(c, f)
	}
	return dto, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		appLog.Error("api request failed", err, "path", r.URL.Path)
	} else {
		appLog.Debug("api request rejected", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, err.Error())
}

// handleNow returns the current instant.
//
// GET /api/now?zone=DST+01:00&format=%25H:%25M
func (s *Server) handleNow(w http.ResponseWriter, r *http.Request) {
	dto, err := s.render(r, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// handleConvert re-expresses an instant in another zone.
//
// GET /api/convert?value=1078880523&zone=+05:30
// GET /api/convert?value=2004-03-10%2301:02:03%23UTC%23%2B00:00&zone=local
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("value") == "" {
		writeError(w, http.StatusBadRequest, "missing value")
		return
	}
	t, err := s.value(r, "value", gztime.Time{})
	if err == nil {
		var dto timeDTO
		if dto, err = s.render(r, t); err == nil {
			writeJSON(w, http.StatusOK, dto)
			return
		}
	}
	s.fail(w, r, err)
}

// handleParse reads free-form text with a strptime format; without a
// format the text must be a GZC string.
//
// GET /api/parse?text=10.03.2004&parse_format=%25d.%25m.%25Y
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, err := s.conv.ParseFormat(q.Get("text"), q.Get("parse_format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dto, err := s.render(r, t)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// handleDiff returns to-from as a duration. A missing from or to is now.
//
// GET /api/diff?from=0&to=1078880523
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	from, err := s.value(r, "from", now)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	to, err := s.value(r, "to", now)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	span := to.Sub(from)
	d := span.Duration()
	writeJSON(w, http.StatusOK, durationDTO{
		Seconds:  span.Unix(),
		GZC:      span.DurationString(),
		Negative: d.Negative(),
		Days:     d.Days,
		Hours:    d.Hours,
		Minutes:  d.Minutes,
		Secs:     d.Seconds,
	})
}

// handleNext lists upcoming activations of a cron schedule.
//
// GET /api/next?cron=0%209%20*%20*%20MON-FRI&count=3&from=0
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := q.Get("cron")
	if spec == "" {
		spec = s.cfg.ClockCron
	}
	count := parseIntDefault(q.Get("count"), 5)
	if count <= 0 || count > maxNextCount {
		count = 5
	}
	from, err := s.value(r, "from", s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	times, err := clock.Next(spec, from, count, s.location())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]timeDTO, 0, len(times))
	for _, t := range times {
		dto, err := s.render(r, t)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		out = append(out, dto)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleICSExport renders one instant as a VCALENDAR.
//
// GET /api/ics?value=...&zone=DST+01:00&summary=launch&rule=FREQ=DAILY;COUNT=3
func (s *Server) handleICSExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t, err := s.value(r, "value", s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req, err := s.request(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.conv.Calendar(t, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	uid := q.Get("uid")
	if uid == "" {
		uid = fmt.Sprintf("gzc-%d@gzctime", t.Unix())
	}
	entry := model.Entry{
		UID:     uid,
		Summary: q.Get("summary"),
		Start:   t,
		End:     t,
		Zone:    c.Zone,
		Rule:    q.Get("rule"),
	}
	body, err := ics.Export([]model.Entry{entry}, ics.ExportOptions{
		ProductID: s.cfg.ICS.ProductID,
		Converter: s.conv,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

// handleICSImport reads an uploaded ICS body. With a to parameter the
// entries are also expanded between from (default now) and to.
//
// POST /api/ics?to=1735689600
func (s *Server) handleICSImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "ics body too large")
		return
	}
	entries, err := ics.Import(ics.Source{ID: "upload"}, body, s.conv)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ics: "+err.Error())
		return
	}

	var resp importResponse
	resp.Entries = make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		c, err := s.conv.Calendar(e.Start, zone.For(e.Zone))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp.Entries = append(resp.Entries, entryDTO{
			UID: e.UID, Summary: e.Summary, TZID: e.TZID, Rule: e.Rule,
			Start: toTimeDTO(e.Start, c),
		})
	}

	if r.URL.Query().Get("to") != "" {
		from, err := s.value(r, "from", s.now())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		to, err := s.value(r, "to", s.now())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		res, err := ics.ExpandAll(entries, ics.ExpandConfig{
			From:                   from,
			To:                     to,
			MaxOccurrencesPerEntry: s.cfg.ICS.MaxOccurrences,
			Mode:                   s.conv.Engine().Mode(),
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Occurrences = make([]occurrenceDTO, 0, len(res.Occurrences))
		for _, o := range res.Occurrences {
			resp.Occurrences = append(resp.Occurrences, occurrenceDTO{
				UID: o.UID, InstanceKey: o.InstanceKey, Summary: o.Summary,
				Start: toTimeDTO(o.Start, o.Calendar),
			})
		}
		resp.Truncated = res.Truncated
	}

	writeJSON(w, http.StatusOK, resp)
}
