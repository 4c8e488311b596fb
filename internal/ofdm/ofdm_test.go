package ofdm

import (
	"bytes"
	"testing"

	"github.com/jeongseonghan/ofdm-modem/internal/corpus"
	"github.com/jeongseonghan/ofdm-modem/internal/modem"
	"github.com/jeongseonghan/ofdm-modem/internal/sync"
)

func roundTrip(t *testing.T, payload []byte, opts Options) {
	t.Helper()
	samples, err := Encode(payload, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	result, decoded, err := Decode(samples, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if result.State != sync.Done {
		t.Fatalf("expected State Done on successful decode, got %v", result.State)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(decoded), len(payload))
	}
}

func TestRoundTripBPSKNoImpairment(t *testing.T) {
	roundTrip(t, corpus.Fill(200), Options{Modulation: modem.BPSK, GuardBands: true})
}

func TestRoundTripQPSKNoImpairment(t *testing.T) {
	roundTrip(t, corpus.Fill(200), Options{Modulation: modem.QPSK, GuardBands: true})
}

func TestRoundTripNoGuardBands(t *testing.T) {
	roundTrip(t, corpus.Fill(150), Options{Modulation: modem.BPSK, GuardBands: false})
}

func TestRoundTripWithECC(t *testing.T) {
	roundTrip(t, corpus.Fill(600), Options{Modulation: modem.QPSK, GuardBands: true, ECC: true})
}

func TestRoundTripEmptyPayload(t *testing.T) {
	roundTrip(t, nil, Options{Modulation: modem.BPSK, GuardBands: true})
}

func TestRoundTripWithLeadingAndTrailingSilence(t *testing.T) {
	payload := corpus.Fill(100)
	opts := Options{Modulation: modem.BPSK, GuardBands: true}
	samples, err := Encode(payload, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	padded := make([]complex128, 0, len(samples)+500)
	padded = append(padded, make([]complex128, 231)...)
	padded = append(padded, samples...)
	padded = append(padded, make([]complex128, 269)...)

	_, decoded, err := Decode(padded, opts)
	if err != nil {
		t.Fatalf("Decode with silence padding: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatal("decode with leading/trailing silence did not recover the original payload")
	}
}

func TestDecodeTooShortFails(t *testing.T) {
	result, _, err := Decode(make([]complex128, 10), Options{Modulation: modem.BPSK, GuardBands: true})
	if err == nil {
		t.Fatal("expected error decoding a too-short capture")
	}
	if result.State != sync.Failed {
		t.Fatalf("expected State Failed on sync failure, got %v", result.State)
	}
}

func TestDecodeECCCorruptionFailsWithFailedState(t *testing.T) {
	payload := corpus.Fill(300)
	opts := Options{Modulation: modem.BPSK, GuardBands: true, ECC: true}
	samples, err := Encode(payload, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Negate 300 samples near the end of the frame, inside the payload
	// blocks that carry the second codeword, which corrupts that codeword
	// past RS(255,223)'s correction radius.
	for i := len(samples) - 400; i < len(samples)-100 && i >= 0; i++ {
		samples[i] = -samples[i]
	}

	result, _, err := Decode(samples, opts)
	if err == nil {
		t.Fatal("expected decode error from corrupted payload")
	}
	if result.State != sync.Failed {
		t.Fatalf("expected State Failed on deframe error, got %v", result.State)
	}
}
