// Package dsp provides the FFT/IFFT and complex-vector primitives shared by
// the OFDM transmit and receive chains.
package dsp

import (
	"math"
	"math/cmplx"
)

// FFT computes the Discrete Fourier Transform using recursive
// decimation-in-time Cooley-Tukey. Input length must be a power of 2.
func FFT(x []complex128) []complex128 {
	out := prepare(x, "FFT")
	recurse(out, false)
	return out
}

// IFFT computes the Inverse Discrete Fourier Transform, including the 1/N
// normalization so that FFT(IFFT(x)) == x within floating point tolerance.
func IFFT(x []complex128) []complex128 {
	out := prepare(x, "IFFT")
	recurse(out, true)

	scale := complex(1.0/float64(len(out)), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

func prepare(x []complex128, who string) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	copy(out, x)
	if n <= 1 {
		return out
	}
	if n&(n-1) != 0 {
		panic("dsp: " + who + " length must be a power of 2")
	}
	return out
}

// recurse splits x into its even- and odd-indexed halves, transforms each
// independently, and combines them with a twiddle factor per butterfly. The
// split/recurse/combine shape means no explicit bit-reversal permutation is
// needed: the recursion itself produces the right output ordering.
func recurse(x []complex128, inverse bool) {
	n := len(x)
	if n <= 1 {
		return
	}

	half := n / 2
	even := make([]complex128, half)
	odd := make([]complex128, half)
	for i := 0; i < half; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	recurse(even, inverse)
	recurse(odd, inverse)

	sign := -1.0
	if inverse {
		sign = 1.0
	}
	angleStep := sign * 2 * math.Pi / float64(n)
	for k := 0; k < half; k++ {
		twiddle := cmplx.Exp(complex(0, angleStep*float64(k))) * odd[k]
		x[k] = even[k] + twiddle
		x[k+half] = even[k] - twiddle
	}
}

// NextPowerOfTwo returns the smallest power of 2 greater than or equal to n.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
