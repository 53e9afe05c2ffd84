// Package pixel converts drawn frames into the framebuffer's native format:
// 16 bits per pixel, 5-6-5 RGB, little-endian, rows top to bottom.
package pixel

import (
	"encoding/binary"
	"image"
)

// BytesPerPixel is the size of one packed pixel.
const BytesPerPixel = 2

// Pack565 truncates an 8-bit RGB triple to 5-6-5, dropping the low bits.
func Pack565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3)
}

// FrameSize returns the packed size in bytes of a w x h frame.
func FrameSize(w, h int) int { return w * h * BytesPerPixel }

// Pack converts img to RGB565. The alpha channel is ignored; the canvas is
// always painted opaque.
func Pack(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, FrameSize(b.Dx(), b.Dy()))
	PackInto(out, img)
	return out
}

// PackInto packs img into dst, which must hold FrameSize bytes for the image
// bounds. It returns the number of bytes written.
func PackInto(dst []byte, img *image.RGBA) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	n := 0
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+3]
			binary.LittleEndian.PutUint16(dst[n:], Pack565(p[0], p[1], p[2]))
			n += BytesPerPixel
		}
	}
	return n
}

// Unpack565 expands a packed pixel back to 8-bit channels with the low bits
// zeroed. Used to inspect written frames.
func Unpack565(v uint16) (r, g, b uint8) {
	return uint8(v>>11) << 3, uint8(v>>5&0x3F) << 2, uint8(v&0x1F) << 3
}
