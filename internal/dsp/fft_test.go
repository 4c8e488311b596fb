package dsp

import (
	"math/cmplx"
	"testing"
)

func TestFFTInverse(t *testing.T) {
	x := make([]complex128, 64)
	for i := range x {
		x[i] = complex(float64(i%7)-3, float64(i%5)-2)
	}

	back := IFFT(FFT(x))
	for i := range x {
		if d := cmplx.Abs(back[i] - x[i]); d > 1e-9 {
			t.Fatalf("ifft(fft(x))[%d] = %v, want %v (diff %v)", i, back[i], x[i], d)
		}
	}
}

func TestFFTSizeOne(t *testing.T) {
	x := []complex128{complex(5, -2)}
	if got := FFT(x); got[0] != x[0] {
		t.Fatalf("FFT of length-1 input should be identity, got %v", got[0])
	}
}

func TestFFTPanicsOnNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-power-of-2 length")
		}
	}()
	FFT(make([]complex128, 3))
}

func TestFFTShiftIFFTShiftInverse(t *testing.T) {
	for _, n := range []int{4, 5, 8, 63, 64, 80} {
		x := make([]complex128, n)
		for i := range x {
			x[i] = complex(float64(i), float64(-i))
		}
		back := IFFTShift(FFTShift(x))
		for i := range x {
			if back[i] != x[i] {
				t.Fatalf("n=%d: ifftShift(fftShift(x))[%d] = %v, want %v", n, i, back[i], x[i])
			}
		}
	}
}

func TestFFTShiftEvenLengthIsInvolution(t *testing.T) {
	x := []complex128{1, 2, 3, 4, 5, 6, 7, 8}
	twice := FFTShift(FFTShift(x))
	for i := range x {
		if twice[i] != x[i] {
			t.Fatalf("even-length FFTShift should be its own inverse, got %v at %d, want %v", twice[i], i, x[i])
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 5: 8, 64: 64, 65: 128}
	for in, want := range cases {
		if got := NextPowerOfTwo(in); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
