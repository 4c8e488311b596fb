package channel

import (
	"testing"

	"github.com/jeongseonghan/ofdm-modem/internal/dsp"
)

func TestApplyConvolvesAndAddsNoise(t *testing.T) {
	tx := make([]complex128, 200)
	for i := range tx {
		tx[i] = complex(1, 0)
	}
	rx := Apply(tx, Options{SNRdB: 30})
	if len(rx) != len(tx)+len(Impulse)-1 {
		t.Fatalf("len(rx) = %d, want %d", len(rx), len(tx)+len(Impulse)-1)
	}
}

func TestApplyIsDeterministicForFixedSeed(t *testing.T) {
	tx := make([]complex128, 100)
	for i := range tx {
		tx[i] = complex(float64(i%3)-1, float64(i%2))
	}
	a := Apply(tx, Options{SNRdB: 20, Seed: 123})
	b := Apply(tx, Options{SNRdB: 20, Seed: 123})
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Apply with fixed seed is not deterministic at index %d", i)
		}
	}
}

func TestApplyHigherSNRLowerNoise(t *testing.T) {
	tx := make([]complex128, 500)
	for i := range tx {
		tx[i] = complex(1, 0)
	}
	lowSNR := Apply(tx, Options{SNRdB: 0, Seed: 7})
	highSNR := Apply(tx, Options{SNRdB: 40, Seed: 7})

	// Subtract the clean convolution to isolate the noise component and
	// compare variances: SNRdB 0 selects the 30 dB default, so that run
	// should be noisier than the 40 dB run.
	clean := dsp.Convolve(tx, Impulse)
	noiseLow := make([]complex128, len(clean))
	noiseHigh := make([]complex128, len(clean))
	for i := range clean {
		noiseLow[i] = lowSNR[i] - clean[i]
		noiseHigh[i] = highSNR[i] - clean[i]
	}
	varLow := real(dsp.Variance(noiseLow))
	varHigh := real(dsp.Variance(noiseHigh))
	if varLow <= varHigh {
		t.Fatalf("expected default 30dB noise variance (%v) > 40dB noise variance (%v)", varLow, varHigh)
	}
}

func TestImpulseLength(t *testing.T) {
	if len(Impulse) != 64 {
		t.Fatalf("len(Impulse) = %d, want 64", len(Impulse))
	}
}
