package imageprocessing

import (
	"image"
	"image/color"
)

// Luminance returns the perceived brightness of an 8-bit RGB sample using
// the Rec. 601 weights 0.299R + 0.587G + 0.114B.
func Luminance(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
}

// ToGrayscale converts an image to grayscale using Luminance per pixel.
func ToGrayscale(img image.Image) *image.Gray {
	if img == nil {
		return nil
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray.SetGray(x, y, color.Gray{Y: Luminance(uint8(r>>8), uint8(g>>8), uint8(b>>8))})
		}
	}

	return gray
}

// ToRGBA converts any image to RGBA format for easier processing.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	return rgba
}
