package fec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleData(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte((i*37 + 11) % 256)
	}
	return out
}

func TestEncodeDecodeNoErrors(t *testing.T) {
	data := sampleData(DataSize)
	cw, err := EncodeCodeword(data)
	require.NoError(t, err)
	require.Len(t, cw, CodewordSize)

	decoded, err := DecodeCodeword(cw)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestEncodeWrongLength(t *testing.T) {
	_, err := EncodeCodeword(make([]byte, 10))
	require.Error(t, err)
}

func TestDecodeWrongLength(t *testing.T) {
	_, err := DecodeCodeword(make([]byte, 10))
	require.Error(t, err)
}

// flipBytes flips nErrors distinct byte positions in a codeword copy to
// arbitrary nonzero values, using a fixed seed for reproducibility.
func flipBytes(cw []byte, nErrors int, seed int64) []byte {
	out := make([]byte, len(cw))
	copy(out, cw)
	rng := rand.New(rand.NewSource(seed))
	positions := rng.Perm(len(out))[:nErrors]
	for _, p := range positions {
		var delta byte
		for delta == 0 {
			delta = byte(rng.Intn(256))
		}
		out[p] ^= delta
	}
	return out
}

func TestDecodeCorrectsUpToMaxErrors(t *testing.T) {
	data := sampleData(DataSize)
	cw, err := EncodeCodeword(data)
	require.NoError(t, err)

	for _, n := range []int{1, 2, 8, MaxErrors} {
		corrupted := flipBytes(cw, n, int64(1000+n))
		decoded, err := DecodeCodeword(corrupted)
		require.NoErrorf(t, err, "decoding with %d errors", n)
		require.Equalf(t, data, decoded, "decoding with %d errors", n)
	}
}

func TestDecodeFailsBeyondMaxErrors(t *testing.T) {
	data := sampleData(DataSize)
	cw, err := EncodeCodeword(data)
	require.NoError(t, err)

	corrupted := flipBytes(cw, MaxErrors+1, 42)
	decoded, err := DecodeCodeword(corrupted)
	if err == nil {
		// A decode that silently "succeeds" past the guaranteed correction
		// radius must still have gotten the data right by chance; if it
		// differs, that's the expected failure just surfaced as wrong data
		// instead of an error. Flag loudly either way.
		require.Equal(t, data, decoded, "decode with more than MaxErrors returned wrong data without an error")
		return
	}
	require.ErrorIs(t, err, ErrCorruptedCodeword)
}

func TestDecodeAllZeroCodewordIsValid(t *testing.T) {
	data := make([]byte, DataSize)
	cw, err := EncodeCodeword(data)
	require.NoError(t, err)
	decoded, err := DecodeCodeword(cw)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestMultipleCodewordsDistinctErrorPatterns(t *testing.T) {
	for trial := 0; trial < 5; trial++ {
		data := sampleData(DataSize)
		for i := range data {
			data[i] ^= byte(trial * 53)
		}
		cw, err := EncodeCodeword(data)
		require.NoError(t, err)

		corrupted := flipBytes(cw, MaxErrors, int64(trial*7+3))
		decoded, err := DecodeCodeword(corrupted)
		require.NoErrorf(t, err, "trial %d", trial)
		require.Equalf(t, data, decoded, "trial %d", trial)
	}
}
