package palette

import (
	"bytes"
	"image"
	"image/gif"
)

// GIFToByteStream decodes a GIF's frames and converts each to a byte
// stream using the nearest-palette-entry mapping, for demonstration
// payloads that round-trip recognizably through the modem. Returns the
// frame dimensions and one byte slice per frame.
func GIFToByteStream(data []byte) (width, height int, frames [][]byte, err error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return 0, 0, nil, err
	}

	bounds := g.Image[0].Bounds()
	width, height = bounds.Dx(), bounds.Dy()

	frames = make([][]byte, len(g.Image))
	for i, frame := range g.Image {
		frames[i] = frameToBytes(frame)
	}
	return width, height, frames, nil
}

func frameToBytes(frame *image.Paletted) []byte {
	bounds := frame.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := frame.At(x, y).RGBA()
			out = append(out, GetClosest(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
		}
	}
	return out
}

// ByteStreamToRGBA inverts the byte-to-palette mapping for display: given
// a byte stream and dimensions, returns a flat RGBA buffer.
func ByteStreamToRGBA(data []byte, width, height int) []byte {
	out := make([]byte, 0, width*height*4)
	for _, id := range data {
		c := Get(id)
		out = append(out, c.R, c.G, c.B, 0xff)
	}
	return out
}
