package duration

import (
	"math"
	"testing"
)

func TestFromSeconds(t *testing.T) {
	testCases := []struct {
		name string
		in   int64
		want Duration
	}{
		{"zero", 0, Duration{Sign: 1}},
		{"95 days", 95*86400 + 42*60 + 22, Duration{Days: 95, Minutes: 42, Seconds: 22, Sign: 1}},
		{"negative", -90061, Duration{Days: 1, Hours: 1, Minutes: 1, Seconds: 1, Sign: -1}},
		{"under a day", -3599, Duration{Minutes: 59, Seconds: 59, Sign: -1}},
		{"min int64", math.MinInt64, Duration{Days: 106751991167300, Hours: 15, Minutes: 30, Seconds: 8, Sign: -1}},
		{"max int64", math.MaxInt64, Duration{Days: 106751991167300, Hours: 15, Minutes: 30, Seconds: 7, Sign: 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromSeconds(tc.in); got != tc.want {
				t.Errorf("FromSeconds(%d) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTotalRoundTrip(t *testing.T) {
	for _, sec := range []int64{0, 1, -1, 59, 3600, -86400, 8223372036, -90061, math.MaxInt64} {
		if got := FromSeconds(sec).Total(); got != sec {
			t.Errorf("FromSeconds(%d).Total() = %d", sec, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		in   Duration
		want Duration
	}{
		{"every field oversize", New(-1, 1, 25, 61, 3601), Duration{Days: 2, Hours: 3, Minutes: 1, Seconds: 1, Sign: -1}},
		{"seconds into minutes", New(1, 0, 0, 0, 125), Duration{Minutes: 2, Seconds: 5, Sign: 1}},
		{"seconds into days", New(1, 0, 0, 0, 90061), Duration{Days: 1, Hours: 1, Minutes: 1, Seconds: 1, Sign: 1}},
		{"minutes into hours", New(-1, 0, 0, 59, 60), Duration{Hours: 1, Sign: -1}},
		{"already normal", New(1, 3, 23, 59, 59), Duration{Days: 3, Hours: 23, Minutes: 59, Seconds: 59, Sign: 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); got != tc.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tc.want)
			}
		})
	}
	if z := New(-1, 0, 0, 0, 0).Normalize(); z.Negative() {
		t.Errorf("zero span normalized to negative: %+v", z)
	}
}

func TestNeg(t *testing.T) {
	d := FromSeconds(90)
	if n := d.Neg(); n.Total() != -90 {
		t.Errorf("Neg().Total() = %d", n.Total())
	}
	if (Duration{}).Negative() {
		t.Error("zero value should be positive")
	}
	if s := FromSeconds(-90061).String(); s != "-1d01h01m01s" {
		t.Errorf("String() = %q", s)
	}
}
