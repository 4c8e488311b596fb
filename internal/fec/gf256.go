// Package fec implements the Reed-Solomon RS(255,223) forward error
// correction used to protect a frame's bytes, plus a CRC-32 checksum
// helper used for post-decode verification.
//
// klauspost/reedsolomon (wired elsewhere in this module's ancestry) builds
// an erasure code from a Cauchy matrix: it can only reconstruct shards
// whose positions are already known to be missing. spec.md §4.1/§8
// requires blind correction of up to 16 byte errors per 255-byte
// codeword at unknown positions, which is a different problem (classical
// errors-only decoding) that a Cauchy-matrix erasure coder cannot solve.
// This file and rscodec.go instead implement the standard narrow-sense
// RS(255,223) codec over GF(256) with primitive polynomial 0x11d: a
// generator-polynomial systematic encoder, and a syndrome /
// Berlekamp-Massey / Chien-search / Forney decoder. See DESIGN.md for the
// full justification.
package fec

const (
	gfExpSize = 512
	primPoly  = 0x11d
)

var gfExp [gfExpSize]byte
var gfLog [256]int

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = byte(x)
		gfLog[x] = i
		x <<= 1
		if x&0x100 != 0 {
			x ^= primPoly
		}
	}
	for i := 255; i < gfExpSize; i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[gfLog[a]+gfLog[b]]
}

func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	if b == 0 {
		panic("fec: division by zero in GF(256)")
	}
	return gfExp[(gfLog[a]+255-gfLog[b])%255]
}

func gfPow(a byte, power int) byte {
	if a == 0 {
		if power == 0 {
			return 1
		}
		return 0
	}
	p := ((gfLog[a] * power) % 255)
	if p < 0 {
		p += 255
	}
	return gfExp[p]
}

func gfInverse(a byte) byte {
	return gfExp[255-gfLog[a]]
}

// gfPolyMul multiplies two polynomials given as big-endian coefficient
// slices (highest degree first).
func gfPolyMul(p, q []byte) []byte {
	out := make([]byte, len(p)+len(q)-1)
	for i, pc := range p {
		if pc == 0 {
			continue
		}
		for j, qc := range q {
			out[i+j] ^= gfMul(pc, qc)
		}
	}
	return out
}

// gfPolyEval evaluates polynomial p (big-endian coefficients) at x using
// Horner's method.
func gfPolyEval(p []byte, x byte) byte {
	y := p[0]
	for i := 1; i < len(p); i++ {
		y = gfMul(y, x) ^ p[i]
	}
	return y
}
