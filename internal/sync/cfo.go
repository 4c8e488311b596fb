package sync

import (
	"math"
	"math/cmplx"

	"github.com/jeongseonghan/ofdm-modem/internal/modem"
)

// EstimateCFO takes the 3rd and 4th CFO preamble blocks (indices 2 and 3
// of the 4 identical blocks, i.e. samples at global block positions 3
// and 4 after the locking block) and returns f_delta, the carrier
// frequency offset in radians per sample.
func EstimateCFO(trimmed []complex128) float64 {
	blockLen := modem.BlockLen
	left := trimmed[3*blockLen : 4*blockLen]
	right := trimmed[4*blockLen : 5*blockLen]

	var sumAngle float64
	for n := 0; n < blockLen; n++ {
		ratio := right[n] / left[n]
		sumAngle += cmplx.Phase(ratio)
	}
	avg := sumAngle / float64(blockLen)
	return math.Abs(avg / float64(blockLen))
}

// CorrectCFO multiplies every sample of trimmed by exp(-j*fDelta*n), n
// being the sample's index from the start of trimmed, and returns a new
// buffer (trimmed is not modified).
func CorrectCFO(trimmed []complex128, fDelta float64) []complex128 {
	out := make([]complex128, len(trimmed))
	for n, v := range trimmed {
		rot := cmplx.Exp(complex(0, -fDelta*float64(n)))
		out[n] = v * rot
	}
	return out
}
