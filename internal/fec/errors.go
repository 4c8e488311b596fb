package fec

import "errors"

// ErrCorruptedCodeword is returned by DecodeCodeword when a 255-byte
// codeword carries more than MaxErrors byte errors and cannot be
// corrected.
var ErrCorruptedCodeword = errors.New("fec: codeword uncorrectable")
