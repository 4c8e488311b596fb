package modem

import "github.com/jeongseonghan/ofdm-modem/internal/dsp"

// BuildBlock packs up to NumDataSubcarriers(guardBands) payload symbols
// into a 64-subcarrier OFDM block (guard bands, DC, and pilots placed per
// the fixed layout in tables.go), IFFTs it, and prepends a 16-sample
// cyclic prefix. If dataSymbols is shorter than the available data slots
// the remainder is padded with 0+0j. Returns a BlockLen-sample (80)
// cyclic-prefixed block.
func BuildBlock(dataSymbols []complex128, guardBands bool) []complex128 {
	spectrum := make([]complex128, FFTSize)
	dataIdx := 0
	for i := 0; i < FFTSize; i++ {
		switch {
		case IsDC(i):
			spectrum[i] = 0
		case guardBands && IsGuardBand(i):
			spectrum[i] = 0
		case IsPilot(i):
			spectrum[i] = PilotValue
		default:
			if dataIdx < len(dataSymbols) {
				spectrum[i] = dataSymbols[dataIdx]
				dataIdx++
			} else {
				spectrum[i] = 0
			}
		}
	}

	timeDomain := dsp.IFFT(spectrum)
	return AddCyclicPrefix(timeDomain)
}

// BuildTrainingBlock cyclic-prefixes a raw 64-sample training pattern
// exactly like a payload block, but writes the pattern into every
// subcarrier with no guard/pilot masking (spec.md §4.4).
func BuildTrainingBlock(pattern []complex128) []complex128 {
	timeDomain := dsp.IFFT(pattern)
	return AddCyclicPrefix(timeDomain)
}

// AddCyclicPrefix prepends the last CPLen samples of a FFTSize-length
// time-domain block to its own front, producing a BlockLen-sample block.
func AddCyclicPrefix(timeDomain []complex128) []complex128 {
	n := len(timeDomain)
	out := make([]complex128, CPLen+n)
	copy(out, timeDomain[n-CPLen:])
	copy(out[CPLen:], timeDomain)
	return out
}

// StripCyclicPrefix removes the leading CPLen samples from a BlockLen
// block, returning the FFTSize-sample payload.
func StripCyclicPrefix(block []complex128) []complex128 {
	return block[CPLen:]
}
