// Package frame implements the Framer/Deframer: wraps a payload with a
// 16-byte length header and, optionally, Reed-Solomon forward error
// correction, and inverts the operation on receive.
package frame

import (
	"encoding/binary"

	"github.com/jeongseonghan/ofdm-modem/internal/fec"
)

const headerLen = 16

// Encode wraps payload with a 16-byte little-endian length header. If ecc
// is set, the header+payload stream is partitioned into 223-byte chunks
// (the last zero-padded) and each chunk is replaced by its 255-byte
// Reed-Solomon codeword.
func Encode(payload []byte, ecc bool) ([]byte, error) {
	header := make([]byte, headerLen)
	binary.LittleEndian.PutUint64(header[:8], uint64(len(payload)))

	stream := make([]byte, 0, headerLen+len(payload))
	stream = append(stream, header...)
	stream = append(stream, payload...)

	if !ecc {
		return stream, nil
	}

	return encodeECC(stream)
}

func encodeECC(stream []byte) ([]byte, error) {
	var out []byte
	for off := 0; off < len(stream); off += fec.DataSize {
		end := off + fec.DataSize
		var chunk []byte
		if end > len(stream) {
			chunk = make([]byte, fec.DataSize)
			copy(chunk, stream[off:])
		} else {
			chunk = stream[off:end]
		}
		codeword, err := fec.EncodeCodeword(chunk)
		if err != nil {
			return nil, err
		}
		out = append(out, codeword...)
	}
	return out, nil
}

// Decode inverts Encode. If ecc is set, received is partitioned into
// 255-byte codewords and each is RS-corrected; a single uncorrectable
// codeword fails the whole frame with ErrCorruptedFrame. The 16-byte
// length header is then parsed and the payload truncated to the declared
// length. received may carry trailing bytes past the end of the frame
// (a captured buffer is rarely trimmed exactly); only as many codewords
// or raw bytes as the header declares are consumed.
func Decode(received []byte, ecc bool) ([]byte, error) {
	var stream []byte
	if ecc {
		decoded, err := decodeECC(received)
		if err != nil {
			return nil, err
		}
		stream = decoded
	} else {
		stream = received
	}

	if len(stream) < headerLen {
		return nil, ErrShortFrame
	}

	for i := 8; i < headerLen; i++ {
		if stream[i] != 0 {
			return nil, ErrBadLength
		}
	}
	length := binary.LittleEndian.Uint64(stream[:8])

	payload := stream[headerLen:]
	if uint64(len(payload)) < length {
		return nil, ErrBadLength
	}

	return payload[:length], nil
}

// decodeECC RS-corrects only as many codewords as the frame needs: it
// decodes the first codeword to read the length header, then decodes
// exactly enough further codewords to cover header+payload, ignoring any
// trailing codewords (or partial codeword) in received.
func decodeECC(received []byte) ([]byte, error) {
	if len(received) < fec.CodewordSize {
		return nil, ErrShortFrame
	}

	first, err := fec.DecodeCodeword(received[:fec.CodewordSize])
	if err != nil {
		return nil, ErrCorruptedFrame
	}

	for i := 8; i < headerLen; i++ {
		if first[i] != 0 {
			return nil, ErrBadLength
		}
	}
	length := binary.LittleEndian.Uint64(first[:8])
	needed := headerLen + int(length)

	out := append([]byte(nil), first...)
	for off := fec.CodewordSize; len(out) < needed; off += fec.CodewordSize {
		if off+fec.CodewordSize > len(received) {
			return nil, ErrBadLength
		}
		data, err := fec.DecodeCodeword(received[off : off+fec.CodewordSize])
		if err != nil {
			return nil, ErrCorruptedFrame
		}
		out = append(out, data...)
	}
	return out, nil
}
