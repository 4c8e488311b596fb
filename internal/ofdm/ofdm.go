// Package ofdm ties the transmit and receive chains together: Encode
// drives Framer → Modulator → Block Builder → Preamble Injector →
// Normalizer; Decode drives Synchronizer → CFO → Channel Estimator →
// Block Equalizer → Demodulator → Deframer (spec.md §2).
package ofdm

import (
	"github.com/jeongseonghan/ofdm-modem/internal/dsp"
	"github.com/jeongseonghan/ofdm-modem/internal/frame"
	"github.com/jeongseonghan/ofdm-modem/internal/modem"
	"github.com/jeongseonghan/ofdm-modem/internal/preamble"
	"github.com/jeongseonghan/ofdm-modem/internal/sync"
)

// Options configures a single encode or decode call. Both ends of a link
// must agree on every field.
type Options struct {
	Modulation modem.Modulation
	GuardBands bool
	ECC        bool
}

// Encode turns a byte payload into a normalized complex baseband sample
// stream, ready for transmission or simulated-channel round-tripping.
func Encode(payload []byte, opts Options) ([]complex128, error) {
	framed, err := frame.Encode(payload, opts.ECC)
	if err != nil {
		return nil, err
	}

	bits := modem.BytesToBits(framed)
	symbols := opts.Modulation.MapBits(bits)

	dataPerBlock := modem.NumDataSubcarriers(opts.GuardBands)
	var stream []complex128
	stream = append(stream, preamble.Sequence()...)

	for off := 0; off < len(symbols); off += dataPerBlock {
		end := off + dataPerBlock
		if end > len(symbols) {
			end = len(symbols)
		}
		stream = append(stream, modem.BuildBlock(symbols[off:end], opts.GuardBands)...)
	}

	dsp.NormalizePeak(stream)
	return stream, nil
}

// Decode recovers the byte payload from a captured complex sample
// stream, along with the synchronizer's state and diagnostics. The
// returned Result.State is Done on a full successful decode, Failed if
// synchronization or deframing failed, matching spec.md §4.9's receive
// state machine end to end rather than only its synchronization stages.
func Decode(capture []complex128, opts Options) (*sync.Result, []byte, error) {
	result, err := sync.Run(capture, opts.GuardBands)
	if err != nil {
		return result, nil, err
	}

	bits := opts.Modulation.DemapSymbols(result.Symbols)
	stream := modem.BitsToBytes(bits)

	payload, err := frame.Decode(stream, opts.ECC)
	if err != nil {
		result.State = sync.Failed
		return result, nil, err
	}

	result.State = sync.Done
	return result, payload, nil
}
