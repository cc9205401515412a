package gztime

import (
	"encoding/json"
	"errors"
	"testing"

	"gzctime/internal/calendar"
	"gzctime/internal/codec"
	"gzctime/internal/duration"
	"gzctime/internal/zone"
)

func cetConverter() *Converter {
	return NewConverter(calendar.NewEngine(zone.Fixed{Value: zone.Geographic(zone.Hours(1), zone.Inactive)}))
}

func TestParseDispatch(t *testing.T) {
	c := cetConverter()
	testCases := []struct {
		text string
		want int64
	}{
		{"2004-03-10#01:02:03#UTC#+00:00", 1078880523},
		{"2004-03-10#02:02:03#STD#+01:00", 1078880523},
		{"2004-03-10#03:02:03#DST#+01:00", 1078880523},
		{"2004-03-10#06:32:03#UTC#+05:30", 1078880523},
		{"D95#00:42:22", 95*86400 + 42*60 + 22},
		{"D-1#01:01:01", -90061},
		{"D-0#00:00:01", -1},
	}
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := c.Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got.Unix() != tc.want {
				t.Errorf("Parse(%q) = %d, want %d", tc.text, got.Unix(), tc.want)
			}
		})
	}

	if _, err := c.Parse("2023-13-40#99:99:99#XXX#+99:00"); !errors.Is(err, codec.ErrMalformedText) {
		t.Errorf("Parse(malformed) error = %v", err)
	}
	if _, err := c.Parse("D1#25:00:00"); !errors.Is(err, codec.ErrMalformedText) {
		t.Errorf("Parse(malformed duration) error = %v", err)
	}
}

func TestDifference(t *testing.T) {
	a, err := Date(2023, 1, 1, 0, 0, 0, zone.UTC)
	if err != nil {
		t.Fatal(err)
	}
	b := a.AddDuration(duration.New(1, 95, 0, 42, 22))
	if got := b.Sub(a).DurationString(); got != "D95#00:42:22" {
		t.Errorf("b-a = %q, want D95#00:42:22", got)
	}
	if got := a.Sub(b).DurationString(); got != "D-95#00:42:22" {
		t.Errorf("a-b = %q, want D-95#00:42:22", got)
	}
	if got := Unix(-90061).DurationString(); got != "D-1#01:01:01" {
		t.Errorf("DurationString() = %q", got)
	}
	if !a.Add(b.Sub(a)).Equal(b) {
		t.Error("a + (b-a) != b")
	}
}

func TestCompare(t *testing.T) {
	a, b := Unix(1), Unix(2)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Error("Compare ordering is wrong")
	}
	if !a.Before(b) || !b.After(a) || a.After(b) || !a.Equal(Unix(1)) {
		t.Error("Before/After/Equal are wrong")
	}
}

func TestConverterCalendar(t *testing.T) {
	c := cetConverter()
	tm := Unix(1078880523)

	local, err := c.Calendar(tm, zone.Local())
	if err != nil {
		t.Fatal(err)
	}
	if got := codec.EncodeCalendar(local); got != "2004-03-10#02:02:03#STD#+01:00" {
		t.Errorf("local = %q", got)
	}
	if got := c.String(tm); got != "2004-03-10#02:02:03#STD#+01:00" {
		t.Errorf("String() = %q", got)
	}
	if got := codec.EncodeCalendar(tm.UTC()); got != "2004-03-10#01:02:03#UTC#+00:00" {
		t.Errorf("UTC() = %q", got)
	}

	s, err := c.Format(tm, "%A %d %B %Y, %H:%M %Z", zone.Local())
	if err != nil {
		t.Fatal(err)
	}
	if s != "Wednesday 10 March 2004, 02:02 STD" {
		t.Errorf("Format() = %q", s)
	}
	s, err = c.Format(tm, "", zone.RelativeTo(zone.Hours(-3)))
	if err != nil || s != "2004-03-09#22:02:03#UTC#-03:00" {
		t.Errorf("Format(canonical) = %q, %v", s, err)
	}
	if _, err := c.Format(tm, "", zone.GeographicTo(zone.Hours(5), zone.Unspecified)); !errors.Is(err, zone.ErrUnsupportedTranslation) {
		t.Errorf("Format(geographic without DST) error = %v", err)
	}
}

func TestFromCalendarValidates(t *testing.T) {
	_, err := Date(2023, 2, 29, 0, 0, 0, zone.UTC)
	if !errors.Is(err, calendar.ErrInvalidField) {
		t.Errorf("Date(2023-02-29) error = %v, want ErrInvalidField", err)
	}
}

func TestDateLocal(t *testing.T) {
	c := cetConverter()
	tm, err := c.DateLocal(2004, 3, 10, 2, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if tm.Unix() != 1078880523 {
		t.Errorf("DateLocal() = %d, want 1078880523", tm.Unix())
	}

	p, err := zone.Location("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	berlin := NewConverter(calendar.NewEngine(p))
	summer, err := berlin.DateLocal(2023, 7, 1, 12, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if summer.Unix() != 1688205600 {
		t.Errorf("Berlin summer noon = %d, want 1688205600", summer.Unix())
	}
	cal, _ := berlin.Calendar(summer, zone.Local())
	if cal.DST() != zone.Active || cal.Hour != 12 {
		t.Errorf("Berlin summer calendar = %v", cal)
	}
	winter, _ := berlin.DateLocal(2023, 1, 15, 12, 0, 0)
	if winter.Unix() != 1673780400 {
		t.Errorf("Berlin winter noon = %d, want 1673780400", winter.Unix())
	}
}

func TestParseFormat(t *testing.T) {
	c := cetConverter()
	tm, err := c.ParseFormat("10.03.2004 02:02:03", "%d.%m.%Y %H:%M:%S")
	if err != nil {
		t.Fatal(err)
	}
	if tm.Unix() != 1078880523 {
		t.Errorf("ParseFormat(local) = %d", tm.Unix())
	}
	tm, err = c.ParseFormat("2004-03-10 01:02:03 +0000", "%Y-%m-%d %H:%M:%S %z")
	if err != nil || tm.Unix() != 1078880523 {
		t.Errorf("ParseFormat(zoned) = %d, %v", tm.Unix(), err)
	}
	tm, err = c.ParseFormat("D-1#01:01:01", "")
	if err != nil || tm.Unix() != -90061 {
		t.Errorf("ParseFormat(canonical) = %d, %v", tm.Unix(), err)
	}
}

func TestTextMarshaling(t *testing.T) {
	type event struct {
		At Time `json:"at"`
	}
	b, err := json.Marshal(event{At: Unix(1078880523)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"at":"2004-03-10#01:02:03#UTC#+00:00"}` {
		t.Errorf("Marshal() = %s", b)
	}
	var e event
	if err := json.Unmarshal([]byte(`{"at":"D1#00:00:00"}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.At.Unix() != 86400 {
		t.Errorf("Unmarshal() = %d", e.At.Unix())
	}
	if err := json.Unmarshal([]byte(`{"at":"tomorrow"}`), &e); !errors.Is(err, codec.ErrMalformedText) {
		t.Errorf("Unmarshal(malformed) error = %v", err)
	}
}
