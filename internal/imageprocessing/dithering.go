package imageprocessing

import (
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
)

var monoPalette = color.Palette{
	color.Gray{Y: 0},   // Black
	color.Gray{Y: 255}, // White
}

// DitherMono applies Floyd-Steinberg dithering against the black/white
// palette. Used before 1-bit packing when hard thresholding would destroy
// photographic content on e-ink panels.
func DitherMono(img image.Image) image.Image {
	if img == nil {
		return nil
	}

	ditherer := dither.NewDitherer(monoPalette)
	ditherer.Matrix = dither.FloydSteinberg

	return ditherer.Dither(img)
}
