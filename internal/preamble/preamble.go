// Package preamble builds and exposes the fixed, PRNG-derived frame
// constants prepended to every transmission: the locking sequence, the
// CFO preamble, and the channel-training blocks. All three are
// deterministic given their fixed seeds (spec.md §5) and are computed
// once and memoized at package init, matching the teacher's own
// PreambleGenerator pattern (internal/modem/sync.go) of deriving
// transmit-side constants from a seeded math/rand source.
package preamble

import (
	"math/rand"

	"github.com/jeongseonghan/ofdm-modem/internal/dsp"
	"github.com/jeongseonghan/ofdm-modem/internal/modem"
)

const (
	// CFOPreambleSeed seeds the PRNG for the 4 identical CFO blocks.
	CFOPreambleSeed = 100
	// TrainingSeed seeds the PRNG for the 64-sample training pattern.
	TrainingSeed = 50

	numCFOBlocks      = 4
	numTrainingBlocks = 5
)

// Locking is the 80-sample locking block: a real-valued linear ramp,
// FFT-shifted. Deterministic, no PRNG involved. Appears exactly once at
// the head of every frame.
var Locking = buildLocking()

// CFOBlocks holds 4 bit-identical 80-sample blocks drawn from a PRNG
// seeded with CFOPreambleSeed.
var CFOBlocks = buildCFOBlocks()

// TrainingPattern is the 64-sample fixed complex pattern used for channel
// estimation, drawn from a PRNG seeded with TrainingSeed.
var TrainingPattern = buildTrainingPattern()

// TrainingBlocks holds 5 bit-identical cyclic-prefixed training blocks,
// each the IFFT of TrainingPattern with a 16-sample cyclic prefix.
var TrainingBlocks = buildTrainingBlocks()

func buildLocking() []complex128 {
	n := modem.BlockLen
	v := make([]complex128, n)
	for i := 0; i < n; i++ {
		val := 0.5 * (float64(i)/float64(2*n) + 0.5)
		v[i] = complex(val, 0)
	}
	return dsp.FFTShift(v)
}

func buildCFOBlocks() [][]complex128 {
	rng := rand.New(rand.NewSource(CFOPreambleSeed))
	block := make([]complex128, modem.BlockLen)
	for i := range block {
		re := (2*rng.Float64() - 1) * 0.25
		im := (2*rng.Float64() - 1) * 0.25
		block[i] = complex(re, im)
	}

	blocks := make([][]complex128, numCFOBlocks)
	for i := range blocks {
		cp := make([]complex128, len(block))
		copy(cp, block)
		blocks[i] = cp
	}
	return blocks
}

func buildTrainingPattern() []complex128 {
	rng := rand.New(rand.NewSource(TrainingSeed))
	pattern := make([]complex128, modem.FFTSize)
	for i := range pattern {
		re := 2*rng.Float64() - 1
		im := 2*rng.Float64() - 1
		pattern[i] = complex(re, im)
	}
	return pattern
}

func buildTrainingBlocks() [][]complex128 {
	block := modem.BuildTrainingBlock(TrainingPattern)
	blocks := make([][]complex128, numTrainingBlocks)
	for i := range blocks {
		cp := make([]complex128, len(block))
		copy(cp, block)
		blocks[i] = cp
	}
	return blocks
}

// Sequence concatenates the locking block, the 4 CFO blocks, and the 5
// training blocks into the 800-sample preamble prepended to every frame.
func Sequence() []complex128 {
	out := make([]complex128, 0, modem.BlockLen*(1+numCFOBlocks+numTrainingBlocks))
	out = append(out, Locking...)
	for _, b := range CFOBlocks {
		out = append(out, b...)
	}
	for _, b := range TrainingBlocks {
		out = append(out, b...)
	}
	return out
}

// NumCFOBlocks and NumTrainingBlocks are exported for callers (sync,
// channel estimation) that need to index into a trimmed capture by block
// position rather than re-deriving these counts.
const (
	NumCFOBlocks      = numCFOBlocks
	NumTrainingBlocks = numTrainingBlocks
)
