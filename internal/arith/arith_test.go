package arith

import (
	"math"
	"testing"
)

func TestFloorMod(t *testing.T) {
	testCases := []struct {
		name    string
		value   int64
		modulus uint64
		div     int64
		rem     uint64
	}{
		{"positive", 17, 5, 3, 2},
		{"positive exact", 15, 5, 3, 0},
		{"zero", 0, 7, 0, 0},
		{"negative", -17, 5, -4, 3},
		{"negative exact", -15, 5, -3, 0},
		{"minus one", -1, 86400, -1, 86399},
		{"small negative", -3, 5, -1, 2},
		{"zero modulus", 42, 0, 1, 0},
		{"negative zero modulus", -42, 0, 1, 0},
		{"min int64", math.MinInt64, 10, -922337203685477581, 2},
		{"modulus above int64", -5, math.MaxUint64, -1, math.MaxUint64 - 5},
		{"modulus above int64 positive", 5, math.MaxUint64, 0, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			div, rem := FloorMod(tc.value, tc.modulus)
			if div != tc.div || rem != tc.rem {
				t.Errorf("FloorMod(%d, %d) = (%d, %d), want (%d, %d)", tc.value, tc.modulus, div, rem, tc.div, tc.rem)
			}
		})
	}
}

func TestFloorModInvariant(t *testing.T) {
	moduli := []uint64{1, 2, 3, 7, 60, 3600, 86400, 604800, 31536000}
	for _, m := range moduli {
		for v := int64(-2000); v <= 2000; v += 13 {
			value := v * 977
			div, rem := FloorMod(value, m)
			if rem >= m {
				t.Fatalf("FloorMod(%d, %d): remainder %d out of range", value, m, rem)
			}
			if div*int64(m)+int64(rem) != value {
				t.Fatalf("FloorMod(%d, %d) = (%d, %d) does not recombine", value, m, div, rem)
			}
		}
	}
}

func TestFloorModNarrowTypes(t *testing.T) {
	div8, rem8 := FloorMod(int8(-5), uint8(200))
	if div8 != -1 || rem8 != 195 {
		t.Errorf("FloorMod(int8(-5), 200) = (%d, %d), want (-1, 195)", div8, rem8)
	}

	div8, rem8 = FloorMod(int8(-128), uint8(255))
	if div8 != -1 || rem8 != 127 {
		t.Errorf("FloorMod(int8(-128), 255) = (%d, %d), want (-1, 127)", div8, rem8)
	}

	div16, rem16 := FloorMod(int16(-7), uint16(4))
	if div16 != -2 || rem16 != 1 {
		t.Errorf("FloorMod(int16(-7), 4) = (%d, %d), want (-2, 1)", div16, rem16)
	}

	div32, rem32 := FloorMod(int32(100), uint32(7))
	if div32 != 14 || rem32 != 2 {
		t.Errorf("FloorMod(int32(100), 7) = (%d, %d), want (14, 2)", div32, rem32)
	}

	div, rem := FloorMod(-1, uint(12))
	if div != -1 || rem != 11 {
		t.Errorf("FloorMod(-1, 12) = (%d, %d), want (-1, 11)", div, rem)
	}
}

func TestFloor(t *testing.T) {
	if got := Floor(int64(-1), uint64(400)); got != -1 {
		t.Errorf("Floor(-1, 400) = %d, want -1", got)
	}
	if got := Floor(int64(399), uint64(400)); got != 0 {
		t.Errorf("Floor(399, 400) = %d, want 0", got)
	}
}
