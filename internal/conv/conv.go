// Package conv provides checked integer conversions and zero-copy string
// views for the engine.
//
// The integer conversions panic on overflow: a value out of range here means a
// program or subject far larger than the engine supports, which is a
// programming error rather than bad input.
package conv

import (
	"math"
	"unsafe"
)

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct on 32-bit platforms
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// StringBytes returns the bytes of s without copying.
// The result aliases the string's memory and must not be modified.
func StringBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
