// Package sync implements the receive-side synchronization pipeline:
// locking-sequence cross-correlation, CFO estimation and correction,
// training-based channel estimation, and per-block equalization with
// pilot phase tracking. It is the receive-chain counterpart to
// internal/preamble and internal/modem.
package sync

import (
	"github.com/jeongseonghan/ofdm-modem/internal/dsp"
	"github.com/jeongseonghan/ofdm-modem/internal/frame"
	"github.com/jeongseonghan/ofdm-modem/internal/preamble"
)

// minFrameSamples is the shortest trimmed buffer that can possibly hold a
// complete preamble (locking + CFO + training, 800 samples).
const minFrameSamples = 800

// Locate cross-correlates capture against the known locking block to find
// the frame start, and returns the capture trimmed from that offset. It
// fails with ErrInsufficientSamples if fewer than 800 samples remain, or
// ErrSyncFailure if the correlation offset is nonsensical.
func Locate(capture []complex128) ([]complex128, error) {
	corr := dsp.XCorr(capture, preamble.Locking)

	idxMax, peak := 0, -1.0
	for i, v := range corr {
		if m := dsp.Abs(v); m > peak {
			peak = m
			idxMax = i
		}
	}
	if peak <= 0 {
		return nil, frame.ErrSyncFailure
	}

	// XCorr's FFT shift moved lag k to index k-(len(corr)+1)/2 (mod
	// len(corr)); undo that rotation to recover the lag, whatever the
	// parity of len(corr).
	offset := (idxMax + (len(corr)+1)/2) % len(corr)
	if offset < 0 || offset >= len(capture) {
		return nil, frame.ErrSyncFailure
	}

	trimmed := capture[offset:]
	if len(trimmed) < minFrameSamples {
		return nil, frame.ErrInsufficientSamples
	}
	return trimmed, nil
}
