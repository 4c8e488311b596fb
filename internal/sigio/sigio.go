// Package sigio implements the sample-file codec used to persist complex
// baseband sample streams: a flat little-endian sequence of (f32 real,
// f32 imag) pairs, 8 bytes per sample, no header.
package sigio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SigToBytes narrows each complex128 sample to a pair of float32s and
// writes them little-endian, real then imaginary.
func SigToBytes(samples []complex128) []byte {
	out := make([]byte, len(samples)*8)
	for i, s := range samples {
		off := i * 8
		binary.LittleEndian.PutUint32(out[off:], math.Float32bits(float32(real(s))))
		binary.LittleEndian.PutUint32(out[off+4:], math.Float32bits(float32(imag(s))))
	}
	return out
}

// BytesToSig inverts SigToBytes, widening each float32 back to float64.
func BytesToSig(data []byte) ([]complex128, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("sigio: length %d is not a multiple of 8", len(data))
	}
	n := len(data) / 8
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		off := i * 8
		re := math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))
		out[i] = complex(float64(re), float64(im))
	}
	return out, nil
}
