package ofdm

import (
	"bytes"
	"testing"

	"github.com/jeongseonghan/ofdm-modem/internal/channel"
	"github.com/jeongseonghan/ofdm-modem/internal/corpus"
	"github.com/jeongseonghan/ofdm-modem/internal/modem"
	"github.com/jeongseonghan/ofdm-modem/internal/sync"
)

// channelRoundTrip exercises Encode -> channel.Apply -> Decode, the
// headline testable property of spec.md §8: at SNR >= 30 dB with guard
// bands and ECC enabled, decode must succeed with zero byte errors.
func channelRoundTrip(t *testing.T, payload []byte, opts Options, chanOpts channel.Options) {
	t.Helper()
	samples, err := Encode(payload, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	received := channel.Apply(samples, chanOpts)

	result, decoded, err := Decode(received, opts)
	if err != nil {
		t.Fatalf("Decode through simulated channel: %v", err)
	}
	if result.State != sync.Done {
		t.Fatalf("expected State Done after a successful channel round trip, got %v", result.State)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatalf("channel round trip mismatch: got %d bytes, want %d bytes, zero errors required", len(decoded), len(payload))
	}
}

// TestChannelRoundTripHighSNR matches scenario 2 of spec.md §8: 400 bytes
// of the Ozymandias corpus, QPSK, guard bands and ECC enabled, SNR=30 dB.
func TestChannelRoundTripHighSNR(t *testing.T) {
	payload := corpus.Fill(400)
	opts := Options{Modulation: modem.QPSK, GuardBands: true, ECC: true}
	channelRoundTrip(t, payload, opts, channel.Options{SNRdB: 30})
}

// TestChannelRoundTripWithTimingError matches scenario 2's timing_error
// variant: the same payload and settings, with the channel's simulated
// timing-error phase ramp enabled. The CFO estimator and corrector exist
// specifically to recover from exactly this impairment.
func TestChannelRoundTripWithTimingError(t *testing.T) {
	payload := corpus.Fill(400)
	opts := Options{Modulation: modem.QPSK, GuardBands: true, ECC: true}
	channelRoundTrip(t, payload, opts, channel.Options{SNRdB: 30, TimingError: true})
}

// TestChannelRoundTripBPSKLargerPayload matches scenario 3 of spec.md §8:
// a larger payload, BPSK, ECC enabled, SNR=30 dB.
func TestChannelRoundTripBPSKLargerPayload(t *testing.T) {
	payload := corpus.Fill(2500)
	opts := Options{Modulation: modem.BPSK, GuardBands: true, ECC: true}
	channelRoundTrip(t, payload, opts, channel.Options{SNRdB: 30})
}
