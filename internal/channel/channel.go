// Package channel simulates the multipath-plus-noise radio channel used
// to exercise the core transmit/receive chain in loopback tests and the
// CLI's --simulate mode. It is an external collaborator (spec.md §1), not
// part of the core.
package channel

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/jeongseonghan/ofdm-modem/internal/dsp"
)

// NoiseSeed is the fixed PRNG seed for simulated channel noise
// (spec.md §5 determinism guarantee).
const NoiseSeed = 9999

// Impulse is the fixed 64-tap channel impulse response: 7 leading zeros,
// then the 12 nonzero taps, then trailing zeros.
var Impulse = buildImpulse()

func buildImpulse() []complex128 {
	taps := []float64{
		-0.0000, -0.1912, 0.9316, 0.2821, -0.1990, 0.1630,
		-0.1017, 0.0544, -0.0261, 0.0090, 0.0000, -0.0034,
	}
	h := make([]complex128, 64)
	for i, t := range taps {
		h[7+i] = complex(t, 0)
	}
	return h
}

// Options configures a single Apply call.
type Options struct {
	// SNRdB is the signal-to-noise ratio in decibels. Zero means the
	// spec.md default of 30 dB.
	SNRdB float64
	// TimingError, when set, rotates every sample by a fixed per-sample
	// phase ramp drawn from a PRNG, simulating an uncorrected timing
	// offset.
	TimingError bool
	// Seed overrides NoiseSeed; zero means use NoiseSeed.
	Seed int64
}

// Apply convolves transmission with the fixed multipath impulse response,
// optionally applies a timing-error phase ramp, then adds complex
// Gaussian noise scaled to the requested SNR.
func Apply(transmission []complex128, opts Options) []complex128 {
	snrDB := opts.SNRdB
	if snrDB == 0 {
		snrDB = 30.0
	}
	seed := opts.Seed
	if seed == 0 {
		seed = NoiseSeed
	}
	rng := rand.New(rand.NewSource(seed))

	output := dsp.Convolve(transmission, Impulse)

	if opts.TimingError {
		f := math.Pi * rng.Float64() / 80.0
		for i := range output {
			rot := cmplx.Exp(complex(0, f*float64(i+1)))
			output[i] *= rot
		}
	}

	snrLinear := math.Pow(10, snrDB/10.0)
	noiseVar := real(dsp.Variance(output)) / snrLinear
	scale := math.Sqrt(0.5 * noiseVar)
	for i := range output {
		re := rng.NormFloat64()
		im := rng.NormFloat64()
		output[i] += complex(scale*re, scale*im)
	}

	return output
}
