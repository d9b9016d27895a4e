package imageprocessing

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
)

// Monochrome BMP container layout. The embedded display client parses these
// offsets byte for byte, so the framing below must stay bit-exact.
const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpPaletteSize    = 8 // two BGRA entries

	// MonoHeaderSize is where pixel data starts: file header + info
	// header + 2-entry palette.
	MonoHeaderSize = bmpFileHeaderSize + bmpInfoHeaderSize + bmpPaletteSize

	// DefaultThreshold is the luminance cutoff between black and white.
	DefaultThreshold = 128

	// 2835 pixels per metre, the 96 dpi equivalent BMP writers use.
	bmpPixelsPerMetre = 2835
)

// MonoRowSize returns the padded byte count of one 1-bit pixel row. Rows
// pack 8 pixels per byte and pad up to a 4-byte boundary.
func MonoRowSize(width int) int {
	bytesPerRow := (width + 7) / 8
	return (bytesPerRow + 3) / 4 * 4
}

// MonoTotalSize returns the full container size for the given dimensions.
// For 800x480 this is 48062: a 62-byte header plus 100 padded bytes per row
// over 480 rows.
func MonoTotalSize(width, height int) int {
	return MonoHeaderSize + MonoRowSize(width)*height
}

// EncodeMonoBMP packs an image into the 1-bit monochrome BMP container.
// A pixel whose luminance is at least threshold becomes palette index 1
// (white), everything darker index 0 (black). Bits pack MSB-first, left to
// right. Rows are emitted top to bottom, declared via a negative height in
// the info header so decoders do not flip them.
func EncodeMonoBMP(img image.Image, threshold uint8) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has empty bounds %v", bounds)
	}

	paddedRow := MonoRowSize(width)
	pixelDataSize := paddedRow * height
	totalSize := MonoHeaderSize + pixelDataSize

	buf := bytes.NewBuffer(make([]byte, 0, totalSize))

	// File header.
	buf.WriteString("BM")
	binary.Write(buf, binary.LittleEndian, uint32(totalSize))
	binary.Write(buf, binary.LittleEndian, uint32(0)) // reserved
	binary.Write(buf, binary.LittleEndian, uint32(MonoHeaderSize))

	// Info header. Negative height marks top-down row order.
	binary.Write(buf, binary.LittleEndian, uint32(bmpInfoHeaderSize))
	binary.Write(buf, binary.LittleEndian, int32(width))
	binary.Write(buf, binary.LittleEndian, int32(-height))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // planes
	binary.Write(buf, binary.LittleEndian, uint16(1)) // bits per pixel
	binary.Write(buf, binary.LittleEndian, uint32(0)) // no compression
	binary.Write(buf, binary.LittleEndian, uint32(pixelDataSize))
	binary.Write(buf, binary.LittleEndian, int32(bmpPixelsPerMetre))
	binary.Write(buf, binary.LittleEndian, int32(bmpPixelsPerMetre))
	binary.Write(buf, binary.LittleEndian, uint32(2)) // palette colors
	binary.Write(buf, binary.LittleEndian, uint32(0)) // important colors

	// Palette: index 0 black, index 1 white, stored as B,G,R,reserved.
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00})
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0x00})

	row := make([]byte, paddedRow)
	for y := 0; y < height; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if Luminance(uint8(r>>8), uint8(g>>8), uint8(b>>8)) >= threshold {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
		buf.Write(row)
	}

	out := buf.Bytes()
	if len(out) != totalSize {
		return nil, fmt.Errorf("encoded %d bytes, expected %d", len(out), totalSize)
	}
	return out, nil
}
