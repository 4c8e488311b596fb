package sync

import (
	"github.com/jeongseonghan/ofdm-modem/internal/dsp"
	"github.com/jeongseonghan/ofdm-modem/internal/modem"
	"github.com/jeongseonghan/ofdm-modem/internal/preamble"
)

// trainingStart is the sample offset of the first training block within a
// CFO-corrected, trimmed buffer: 1 locking + 4 CFO blocks.
const trainingStart = (1 + preamble.NumCFOBlocks) * modem.BlockLen

// PayloadStart is the sample offset of the first payload block.
const PayloadStart = trainingStart + preamble.NumTrainingBlocks*modem.BlockLen

// EstimateChannel averages the 5 equalized training blocks (positions
// 5..9 after trimming) against the known training pattern to produce the
// per-subcarrier channel response H[k].
func EstimateChannel(trimmed []complex128) []complex128 {
	h := make([]complex128, modem.FFTSize)
	for b := 0; b < preamble.NumTrainingBlocks; b++ {
		off := trainingStart + b*modem.BlockLen
		block := trimmed[off : off+modem.BlockLen]
		samples := modem.StripCyclicPrefix(block)
		spectrum := dsp.FFT(samples)
		for k := range h {
			h[k] += spectrum[k] / preamble.TrainingPattern[k]
		}
	}
	n := complex(float64(preamble.NumTrainingBlocks), 0)
	for k := range h {
		h[k] /= n
	}
	return h
}
