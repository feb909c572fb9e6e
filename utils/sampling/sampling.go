// Package sampling implements deterministic sampling of bytes and floating point values.
package sampling

import (
	"encoding/binary"
)

// Float64 reads 8 bytes from prng and maps them to a float in [min, max).
// It panics if prng fails.
func Float64(prng PRNG, min, max float64) float64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		panic(err)
	}
	// 53 bits so that f < 1 holds exactly.
	f := float64(binary.LittleEndian.Uint64(b)>>11) / (1 << 53)
	return min + f*(max-min)
}

// Float64Slice fills v with values sampled uniformly in [min, max).
func Float64Slice(prng PRNG, v []float64, min, max float64) {
	for i := range v {
		v[i] = Float64(prng, min, max)
	}
}
