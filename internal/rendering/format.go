package rendering

import "fmt"

// Format is the closed set of output encodings. Adding a format means
// extending every switch below, which the compiler will point out.
type Format int

const (
	// FormatPNG is the browser's native lossless raster output.
	FormatPNG Format = iota
	// FormatJPEG is lossy raster output with a quality setting.
	FormatJPEG
	// FormatWebP is the alternative lossy raster output.
	FormatWebP
	// FormatBMP is the 1-bit monochrome container consumed by the
	// embedded display client.
	FormatBMP
)

// ParseFormat maps the wire name to a Format. The names match what the
// display firmware sends in its format query parameter.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	case "bmp":
		return FormatBMP, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatWebP:
		return "webp"
	case FormatBMP:
		return "bmp"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// MediaType returns the content type served for this format.
func (f Format) MediaType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	case FormatBMP:
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// Lossy reports whether the format takes a quality setting.
func (f Format) Lossy() bool {
	return f == FormatJPEG || f == FormatWebP
}
