package rendering

import "fmt"

// Limits on requested render dimensions. The capture viewport is allocated
// per request, so unbounded sizes would let one call exhaust the browser.
const (
	MaxWidth  = 4096
	MaxHeight = 4096
)

// Request describes one render. Exactly one of URL and Template must be
// set: URL is navigated to, Template names content resolved and loaded as
// markup.
type Request struct {
	URL      string
	Template string

	Width  int
	Height int

	Format    Format
	Quality   int   // lossy formats only, 0-100
	Threshold uint8 // monochrome formats only
	Dither    bool  // monochrome formats only
}

// Validate checks the request against parameter bounds. Violations are
// KindInvalidParameter errors.
func (r Request) Validate() error {
	if (r.URL == "") == (r.Template == "") {
		return NewError(KindInvalidParameter, "exactly one of url and template must be provided")
	}
	if r.Width <= 0 || r.Width > MaxWidth {
		return NewError(KindInvalidParameter, fmt.Sprintf("width must be in 1..%d, got %d", MaxWidth, r.Width))
	}
	if r.Height <= 0 || r.Height > MaxHeight {
		return NewError(KindInvalidParameter, fmt.Sprintf("height must be in 1..%d, got %d", MaxHeight, r.Height))
	}
	if r.Quality < 0 || r.Quality > 100 {
		return NewError(KindInvalidParameter, fmt.Sprintf("quality must be in 0..100, got %d", r.Quality))
	}
	return nil
}

// EncodedImage is a fully encoded render result. Chunked delivery always
// slices these exact bytes; it never re-encodes.
type EncodedImage struct {
	Format Format
	Bytes  []byte
}

// Length returns the total encoded size in bytes.
func (e *EncodedImage) Length() int {
	return len(e.Bytes)
}
