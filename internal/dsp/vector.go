package dsp

import "math/cmplx"

// Convolve returns the linear convolution of a and b, length len(a)+len(b)-1.
// Convolution is commutative: Convolve(a, b) == Convolve(b, a).
func Convolve(a, b []complex128) []complex128 {
	if len(b) > len(a) {
		a, b = b, a
	}
	na, nb := len(a), len(b)
	out := make([]complex128, na+nb-1)
	for i := 0; i < na; i++ {
		if a[i] == 0 {
			continue
		}
		for j := 0; j < nb; j++ {
			out[i+j] += a[i] * b[j]
		}
	}
	return out
}

// XCorr computes the cross-correlation of a against b via the FFT method:
// both are zero-padded to the smallest power of two at or above
// len(a)+len(b)-1, transformed, multiplied by the conjugate of b's
// spectrum, inverse-transformed, truncated to len(a)+len(b)-1 samples,
// and FFT-shifted.
func XCorr(a, b []complex128) []complex128 {
	outLen := len(a) + len(b) - 1
	n := NextPowerOfTwo(outLen)

	pa := make([]complex128, n)
	copy(pa, a)
	pb := make([]complex128, n)
	copy(pb, b)

	fa := FFT(pa)
	fb := FFT(pb)

	prod := make([]complex128, n)
	for i := range prod {
		prod[i] = fa[i] * cmplx.Conj(fb[i])
	}

	corr := IFFT(prod)
	return FFTShift(corr[:outLen])
}

// Mean returns the arithmetic mean of x.
func Mean(x []complex128) complex128 {
	if len(x) == 0 {
		return 0
	}
	var sum complex128
	for _, v := range x {
		sum += v
	}
	return sum / complex(float64(len(x)), 0)
}

// Variance returns the (biased) complex variance of x about its mean,
// the mean of |x[i]-mean|^2, as a complex value with zero imaginary part.
func Variance(x []complex128) complex128 {
	if len(x) == 0 {
		return 0
	}
	m := Mean(x)
	var sum complex128
	for _, v := range x {
		d := v - m
		sum += d * cmplx.Conj(d)
	}
	return sum / complex(float64(len(x)), 0)
}

// ScaleInPlace multiplies every element of x by s, in place.
func ScaleInPlace(x []complex128, s complex128) {
	for i := range x {
		x[i] *= s
	}
}

// PeakAbs returns the maximum of |Re|,|Im| across every sample in x.
func PeakAbs(x []complex128) float64 {
	var peak float64
	for _, v := range x {
		if r := absF(real(v)); r > peak {
			peak = r
		}
		if im := absF(imag(v)); im > peak {
			peak = im
		}
	}
	return peak
}

// NormalizePeak scales x in place so the maximum of |Re|,|Im| across the
// whole buffer becomes 1. A zero-peak buffer is left unchanged.
func NormalizePeak(x []complex128) {
	peak := PeakAbs(x)
	if peak == 0 {
		return
	}
	ScaleInPlace(x, complex(1/peak, 0))
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Abs is a small re-export so callers don't need math/cmplx directly.
func Abs(c complex128) float64 {
	return cmplx.Abs(c)
}
