package frame

import "errors"

// Error taxonomy for the receive path (spec.md §7). Every failure is
// recoverable — callers decide whether to retry with a different capture
// slice. Decode surfaces the first failure encountered; it never
// attempts multiple sync hypotheses.
var (
	// ErrInsufficientSamples: capture shorter than one complete frame
	// after synchronization trimming.
	ErrInsufficientSamples = errors.New("ofdm: insufficient samples after sync trim")
	// ErrSyncFailure: the cross-correlation peak indicates a nonsensical
	// offset (negative after subtraction, or zero magnitude).
	ErrSyncFailure = errors.New("ofdm: synchronization failure")
	// ErrCorruptedFrame: Reed-Solomon reported an uncorrectable codeword.
	ErrCorruptedFrame = errors.New("ofdm: corrupted frame (RS uncorrectable)")
	// ErrShortFrame: the post-RS byte stream is shorter than the 16-byte
	// header.
	ErrShortFrame = errors.New("ofdm: frame shorter than header")
	// ErrBadLength: the header-declared payload length exceeds the
	// available bytes.
	ErrBadLength = errors.New("ofdm: header length exceeds available bytes")
)
