// Package arith provides floor division of signed values by unsigned moduli.
package arith

import "unsafe"

// Signed is any signed integer type.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// FloorMod splits value into divisor and remainder such that
//
//	value == divisor*modulus + remainder
//	0 <= remainder < modulus
//
// The divisor is rounded toward negative infinity, unlike Go's / and %
// operators which truncate toward zero and yield negative remainders for
// negative dividends.
//
// A zero modulus has no valid answer; FloorMod returns (1, 0) in that case.
func FloorMod[T Signed, U Unsigned](value T, modulus U) (divisor T, remainder U) {
	if modulus == 0 {
		return 1, 0
	}

	// The modulus is larger than any value of T, so |value| < modulus.
	if uint64(modulus) > maxOf[T]() {
		if value >= 0 {
			return 0, U(value)
		}
		return -1, modulus - U(uint64(-(value+1))) - 1
	}

	m := T(modulus)
	divisor = value / m
	rem := value % m
	if rem < 0 {
		rem += m
		divisor--
	}
	return divisor, U(rem)
}

// Floor is FloorMod without the remainder.
func Floor[T Signed, U Unsigned](value T, modulus U) T {
	d, _ := FloorMod(value, modulus)
	return d
}

// maxOf returns the largest value representable by T.
func maxOf[T Signed]() uint64 {
	var zero T
	bits := unsafe.Sizeof(zero) * 8
	return uint64(1)<<(bits-1) - 1
}
