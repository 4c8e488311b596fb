package modem

import (
	"math/bits"

	"github.com/jeongseonghan/ofdm-modem/internal/fec"
)

// Analysis reports the bit-error count and bit error rate between a
// transmitted buffer and its decoded recovery, plus a CRC-32 checksum of
// the recovered bytes for independent verification.
type Analysis struct {
	NumErrs  int
	ErrRate  float64
	Checksum uint32
}

// NewAnalysis computes the Hamming distance in bits between left and
// right, which must be equal length, the fraction of all 8*len(left) bits
// that differ, and stamps a CRC-32 of right.
func NewAnalysis(left, right []byte) Analysis {
	if len(left) != len(right) {
		panic("modem: Analysis requires equal-length buffers")
	}

	var numErrs int
	for i := range left {
		numErrs += bits.OnesCount8(left[i] ^ right[i])
	}

	var errRate float64
	if len(left) > 0 {
		errRate = float64(numErrs) / float64(8*len(left))
	}

	return Analysis{
		NumErrs:  numErrs,
		ErrRate:  errRate,
		Checksum: fec.CRC32(right),
	}
}
