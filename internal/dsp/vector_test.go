package dsp

import (
	"math/cmplx"
	"testing"
)

func TestConvolveCommutative(t *testing.T) {
	a := []complex128{1, 2, 3}
	b := []complex128{complex(0, 1), 4, -1, 2}

	ab := Convolve(a, b)
	ba := Convolve(b, a)

	if len(ab) != len(a)+len(b)-1 {
		t.Fatalf("Convolve length = %d, want %d", len(ab), len(a)+len(b)-1)
	}
	for i := range ab {
		if cmplx.Abs(ab[i]-ba[i]) > 1e-12 {
			t.Fatalf("Convolve(a,b)[%d] = %v != Convolve(b,a)[%d] = %v", i, ab[i], i, ba[i])
		}
	}
}

func TestXCorrPeakLocatesOffset(t *testing.T) {
	locking := make([]complex128, 16)
	for i := range locking {
		locking[i] = complex(float64(i%3)-1, float64((i*2)%5)-2)
	}

	const k, m = 37, 19
	s := make([]complex128, k+len(locking)+m)
	copy(s[k:], locking)

	corr := XCorr(s, locking)

	idxMax, peak := 0, -1.0
	for i, v := range corr {
		if mag := cmplx.Abs(v); mag > peak {
			peak = mag
			idxMax = i
		}
	}
	offset := idxMax - ((len(corr)-1)/2 + 1)

	if diff := offset - k; diff < -1 || diff > 1 {
		t.Fatalf("xcorr offset = %d, want within +/-1 of %d", offset, k)
	}
}

func TestNormalizePeak(t *testing.T) {
	x := []complex128{complex(2, -4), complex(1, 1), complex(-3, 0)}
	NormalizePeak(x)
	if PeakAbs(x) != 1 {
		t.Fatalf("PeakAbs after NormalizePeak = %v, want 1", PeakAbs(x))
	}
}

func TestNormalizePeakZero(t *testing.T) {
	x := []complex128{0, 0, 0}
	NormalizePeak(x)
	for _, v := range x {
		if v != 0 {
			t.Fatalf("NormalizePeak on zero buffer should leave it unchanged, got %v", v)
		}
	}
}

func TestMeanVariance(t *testing.T) {
	x := []complex128{1, 2, 3, 4}
	if m := Mean(x); m != complex(2.5, 0) {
		t.Fatalf("Mean = %v, want 2.5", m)
	}
	if v := Variance(x); v != complex(1.25, 0) {
		t.Fatalf("Variance = %v, want 1.25", v)
	}
}
