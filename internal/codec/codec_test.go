package codec

import (
	"errors"
	"testing"

	"gzctime/internal/calendar"
	"gzctime/internal/duration"
	"gzctime/internal/zone"
)

func TestEncodeCalendar(t *testing.T) {
	testCases := []struct {
		name string
		cal  calendar.Calendar
		want string
	}{
		{
			"utc",
			calendar.Decompose(1078880523, zone.UTC, calendar.Wide),
			"2004-03-10#01:02:03#UTC#+00:00",
		},
		{
			"summer time",
			calendar.Decompose(1686000000, zone.Geographic(zone.Hours(1), zone.Active), calendar.Wide),
			"2023-06-05#23:20:00#DST#+01:00",
		},
		{
			"standard time west",
			calendar.Decompose(0, zone.Geographic(zone.Hours(-5), zone.Inactive), calendar.Wide),
			"1969-12-31#19:00:00#STD#-05:00",
		},
		{
			"fractional relative",
			calendar.Decompose(0, zone.Relative(zone.HoursMinutes(5, 30)), calendar.Wide),
			"1970-01-01#05:30:00#UTC#+05:30",
		},
		{
			"negative fractional",
			calendar.Decompose(0, zone.Relative(zone.SignedOffset(-1, 0, 30)), calendar.Wide),
			"1969-12-31#23:30:00#UTC#-00:30",
		},
		{
			"negative year",
			calendar.Calendar{Year: -44, Month: 3, Day: 15, Hour: 12},
			"-0044-03-15#12:00:00#UTC#+00:00",
		},
		{
			"year minus one",
			calendar.Calendar{Year: -1, Month: 1, Day: 1},
			"-0001-01-01#00:00:00#UTC#+00:00",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeCalendar(tc.cal)
			if got != tc.want {
				t.Fatalf("EncodeCalendar() = %q, want %q", got, tc.want)
			}
			back, err := DecodeCalendar(got)
			if err != nil {
				t.Fatalf("DecodeCalendar(%q) error: %v", got, err)
			}
			if !back.SameWallClock(tc.cal) {
				t.Errorf("DecodeCalendar(%q) = %v, want %v", got, back, tc.cal)
			}
		})
	}
}

func TestDecodeCalendarDerivedFields(t *testing.T) {
	c, err := DecodeCalendar("2004-03-10#01:02:03#UTC#+00:00")
	if err != nil {
		t.Fatal(err)
	}
	if c.DayInWeek != 3 || c.DayInYear != 70 || c.CalendarWeek != 11 {
		t.Errorf("derived fields = %d/%d/%d, want 3/70/11", c.DayInWeek, c.DayInYear, c.CalendarWeek)
	}
	if got := calendar.Compose(c, calendar.Wide); got != 1078880523 {
		t.Errorf("Compose() = %d", got)
	}
}

func TestDecodeCalendarMalformed(t *testing.T) {
	inputs := []string{
		"2023-13-40#99:99:99#XXX#+99:00",
		"2023-13-01#00:00:00#UTC#+00:00",
		"2023-02-29#00:00:00#UTC#+00:00",
		"2023-01-01#24:00:00#UTC#+00:00",
		"2023-01-01#00:60:00#UTC#+00:00",
		"2023-01-01#00:00:60#UTC#+00:00",
		"2023-01-01#00:00:00#XXX#+00:00",
		"2023-01-01#00:00:00#UTC#+15:00",
		"2023-01-01#00:00:00#UTC#+01:60",
		"2023-01-01#00:00:00#UTC#01:00",
		"2023-01-01#00:00:00#UTC#+1:00",
		"2023-1-01#00:00:00#UTC#+00:00",
		"023-01-01#00:00:00#UTC#+00:00",
		"02023-01-01#00:00:00#UTC#+00:00",
		"-044-01-01#00:00:00#UTC#+00:00",
		"-001-01-01#00:00:00#UTC#+00:00",
		"2023-01-01T00:00:00#UTC#+00:00",
		"2023-01-01#00:00:00#utc#+00:00",
		"2023-01-01#00:00:00#UTC#+00:00 ",
		"9999999999999-01-01#00:00:00#UTC#+00:00",
		"D1#00:00:00",
		"",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := DecodeCalendar(in)
			if !errors.Is(err, ErrMalformedText) {
				t.Fatalf("DecodeCalendar(%q) error = %v, want ErrMalformedText", in, err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) || se.Input != in {
				t.Errorf("error %v does not carry the input", err)
			}
		})
	}
}

func TestEncodeDuration(t *testing.T) {
	testCases := []struct {
		name string
		d    duration.Duration
		want string
	}{
		{"95 days", duration.FromSeconds(95*86400 + 42*60 + 22), "D95#00:42:22"},
		{"negative", duration.FromSeconds(-90061), "D-1#01:01:01"},
		{"negative under a day", duration.FromSeconds(-61), "D-0#00:01:01"},
		{"zero", duration.FromSeconds(0), "D0#00:00:00"},
		{"oversize parts", duration.New(1, 0, 25, 0, 0), "D1#01:00:00"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeDuration(tc.d)
			if got != tc.want {
				t.Fatalf("EncodeDuration() = %q, want %q", got, tc.want)
			}
			back, err := DecodeDuration(got)
			if err != nil {
				t.Fatalf("DecodeDuration(%q) error: %v", got, err)
			}
			if back.Total() != tc.d.Total() {
				t.Errorf("DecodeDuration(%q).Total() = %d, want %d", got, back.Total(), tc.d.Total())
			}
		})
	}
}

func TestDecodeDurationMalformed(t *testing.T) {
	inputs := []string{
		"D1#24:00:00",
		"D1#00:60:00",
		"D1#00:00:60",
		"D01#00:00:00",
		"D+1#00:00:00",
		"D1#0:00:00",
		"D#00:00:00",
		"d1#00:00:00",
		"D1:00:00:00",
		"D106751991167301#00:00:00",
		"D99999999999999999999#00:00:00",
		"2023-01-01#00:00:00#UTC#+00:00",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := DecodeDuration(in); !errors.Is(err, ErrMalformedText) {
				t.Errorf("DecodeDuration(%q) error = %v, want ErrMalformedText", in, err)
			}
		})
	}

	// The most negative second count is representable.
	d, err := DecodeDuration("D-106751991167300#15:30:08")
	if err != nil {
		t.Fatalf("DecodeDuration(min) error: %v", err)
	}
	if d.Total() != -9223372036854775808 {
		t.Errorf("Total() = %d", d.Total())
	}
}

func TestIsDuration(t *testing.T) {
	if !IsDuration("D1#00:00:00") || IsDuration("2023-01-01#00:00:00#UTC#+00:00") || IsDuration("") {
		t.Error("IsDuration dispatch is wrong")
	}
}
