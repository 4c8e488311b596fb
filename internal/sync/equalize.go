package sync

import (
	"math/cmplx"

	"github.com/jeongseonghan/ofdm-modem/internal/dsp"
	"github.com/jeongseonghan/ofdm-modem/internal/modem"
)

// EqualizeBlock strips the cyclic prefix from block, FFTs the remainder,
// divides element-wise by h, then tracks residual phase via the 4 pilot
// tones and removes it from the recovered data symbols. guardBands
// selects whether guard-band subcarriers are skipped (matching how the
// block was built at transmit).
func EqualizeBlock(block []complex128, h []complex128, guardBands bool) []complex128 {
	samples := modem.StripCyclicPrefix(block)
	spectrum := dsp.FFT(samples)

	eq := make([]complex128, len(spectrum))
	for k := range spectrum {
		eq[k] = spectrum[k] / h[k]
	}

	var pilotAngleSum float64
	var data []complex128
	for i := 0; i < modem.FFTSize; i++ {
		switch {
		case modem.IsPilot(i):
			pilotAngleSum += cmplx.Phase(eq[i] / modem.PilotValue)
		case modem.IsDC(i):
			continue
		case guardBands && modem.IsGuardBand(i):
			continue
		default:
			data = append(data, eq[i])
		}
	}

	theta := pilotAngleSum / float64(modem.NumPilots)
	rot := cmplx.Exp(complex(0, -theta))
	for i := range data {
		data[i] *= rot
	}
	return data
}

// EqualizePayload runs EqualizeBlock over every 80-sample payload block in
// trimmed (starting at PayloadStart) and concatenates the recovered data
// symbols into a single stream ready for demodulation.
func EqualizePayload(trimmed []complex128, h []complex128, guardBands bool) []complex128 {
	var symbols []complex128
	for off := PayloadStart; off+modem.BlockLen <= len(trimmed); off += modem.BlockLen {
		block := trimmed[off : off+modem.BlockLen]
		symbols = append(symbols, EqualizeBlock(block, h, guardBands)...)
	}
	return symbols
}
