package zone

import (
	"errors"
	"testing"
	"time"
)

func TestZoneUTCOffset(t *testing.T) {
	testCases := []struct {
		name   string
		zone   Zone
		dst    DST
		offset Offset
		utc    Offset
	}{
		{"utc", UTC, Unspecified, 0, 0},
		{"relative", Relative(Hours(5)), Unspecified, Hours(5), Hours(5)},
		{"geographic standard", Geographic(Hours(1), Inactive), Inactive, Hours(1), Hours(1)},
		{"geographic daylight", Geographic(Hours(1), Active), Active, Hours(1), Hours(2)},
		{"geographic unspecified", Geographic(Hours(3), Unspecified), Unspecified, Hours(3), Hours(3)},
		{"fractional", Geographic(HoursMinutes(5, 30), Inactive), Inactive, 330, 330},
		{"negative fractional", Relative(HoursMinutes(-3, 30)), Unspecified, -210, -210},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.zone.DST(); got != tc.dst {
				t.Errorf("DST() = %v, want %v", got, tc.dst)
			}
			if got := tc.zone.Offset(); got != tc.offset {
				t.Errorf("Offset() = %d, want %d", got, tc.offset)
			}
			if got := tc.zone.UTCOffset(); got != tc.utc {
				t.Errorf("UTCOffset() = %d, want %d", got, tc.utc)
			}
		})
	}
}

func TestAsRelative(t *testing.T) {
	z := Geographic(Hours(1), Active).AsRelative()
	if z.IsGeographic() || z.Offset() != Hours(2) || z.DST() != Unspecified {
		t.Errorf("AsRelative() = %v, want UTC#+02:00", z)
	}
}

func TestOffsetString(t *testing.T) {
	testCases := []struct {
		offset Offset
		want   string
	}{
		{0, "+00:00"},
		{Hours(1), "+01:00"},
		{Hours(-5), "-05:00"},
		{HoursMinutes(5, 45), "+05:45"},
		{HoursMinutes(-9, 30), "-09:30"},
		{-30, "-00:30"},
		{SignedOffset(-1, 0, 30), "-00:30"},
		{SignedOffset(-1, 9, 30), "-09:30"},
		{SignedOffset(1, 5, 45), "+05:45"},
	}
	for _, tc := range testCases {
		if got := tc.offset.String(); got != tc.want {
			t.Errorf("Offset(%d).String() = %q, want %q", tc.offset, got, tc.want)
		}
	}
}

func TestZoneString(t *testing.T) {
	if got := Geographic(Hours(1), Active).String(); got != "DST#+01:00" {
		t.Errorf("String() = %q", got)
	}
	if got := Geographic(Hours(1), Inactive).String(); got != "STD#+01:00" {
		t.Errorf("String() = %q", got)
	}
	if got := Relative(Hours(-4)).String(); got != "UTC#-04:00" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseRequest(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "local", false},
		{"local", "local", false},
		{"UTC", "+00:00", false},
		{"-00:30", "-00:30", false},
		{"asutc", "asutc", false},
		{"+05:00", "+05:00", false},
		{"-03:30", "-03:30", false},
		{"+2", "+02:00", false},
		{"DST+01:00", "DST+01:00", false},
		{"std-05:00", "STD-05:00", false},
		{"GEO+05:00", "GEO+05:00", false},
		{"+15:00", "", true},
		{"05:00", "", true},
		{"+05:7", "", true},
		{"XYZ+01:00", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			r, err := ParseRequest(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseRequest(%q) expected error, got %v", tc.input, r)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest(%q) unexpected error: %v", tc.input, err)
			}
			if got := r.String(); got != tc.want {
				t.Errorf("ParseRequest(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRequestTarget(t *testing.T) {
	if _, ok, _ := Local().Target(); ok {
		t.Error("Local().Target() should not be explicit")
	}
	z, ok, err := ToUTC().Target()
	if !ok || err != nil || z != UTC {
		t.Errorf("ToUTC().Target() = %v, %v, %v", z, ok, err)
	}
	z, ok, err = RelativeTo(Hours(5)).Target()
	if !ok || err != nil || z != Relative(Hours(5)) {
		t.Errorf("RelativeTo(+5).Target() = %v, %v, %v", z, ok, err)
	}
	z, ok, err = GeographicTo(Hours(1), Active).Target()
	if !ok || err != nil || z != Geographic(Hours(1), Active) {
		t.Errorf("GeographicTo(+1, active).Target() = %v, %v, %v", z, ok, err)
	}
	_, _, err = GeographicTo(Hours(5), Unspecified).Target()
	if !errors.Is(err, ErrUnsupportedTranslation) {
		t.Errorf("GeographicTo(+5, unspecified).Target() error = %v", err)
	}
}

func TestSystemPlatform(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	p := System{Location: berlin}

	// 2023-07-01T12:00:00Z, summer.
	z, err := p.Zone(1688212800)
	if err != nil {
		t.Fatalf("Zone() error: %v", err)
	}
	if z != Geographic(Hours(1), Active) {
		t.Errorf("summer zone = %v, want DST#+01:00", z)
	}

	// 2023-01-15T12:00:00Z, winter.
	z, err = p.Zone(1673784000)
	if err != nil {
		t.Fatalf("Zone() error: %v", err)
	}
	if z != Geographic(Hours(1), Inactive) {
		t.Errorf("winter zone = %v, want STD#+01:00", z)
	}

	utc := System{Location: time.UTC}
	z, err = utc.Zone(0)
	if err != nil || z != Geographic(0, Inactive) {
		t.Errorf("UTC location zone = %v, %v", z, err)
	}
}

func TestLocation(t *testing.T) {
	if _, err := Location("Not/AZone"); !errors.Is(err, ErrPlatformUnavailable) {
		t.Errorf("Location(invalid) error = %v", err)
	}
	p, err := Location("")
	if err != nil {
		t.Fatalf("Location(\"\") error: %v", err)
	}
	if _, ok := p.(System); !ok {
		t.Errorf("Location(\"\") = %T, want System", p)
	}
}

func TestFixedAndUnavailable(t *testing.T) {
	want := Geographic(Hours(2), Inactive)
	if z, err := (Fixed{Value: want}).Zone(123); err != nil || z != want {
		t.Errorf("Fixed.Zone() = %v, %v", z, err)
	}
	if _, err := (Unavailable{}).Zone(0); !errors.Is(err, ErrPlatformUnavailable) {
		t.Errorf("Unavailable.Zone() error = %v", err)
	}
}
