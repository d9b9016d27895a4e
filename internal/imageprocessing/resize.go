package imageprocessing

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ResizeTo scales an image to exactly the target dimensions. The capture
// viewport normally matches the requested size, but a device scale factor
// above 1 produces larger rasters that must be brought back down before
// 1-bit packing.
func ResizeTo(img image.Image, targetWidth, targetHeight int) image.Image {
	if img == nil {
		return nil
	}

	bounds := img.Bounds()
	if bounds.Dx() == targetWidth && bounds.Dy() == targetHeight {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
