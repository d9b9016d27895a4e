package rendering

// ByteRange selects a window of an encoded image so a memory-constrained
// client can fetch it incrementally. Offset defaults to 0 and Limit to the
// rest of the buffer. IncludeHeader only matters when Offset > 0: the slice
// is then prefixed with everything before the offset, producing a
// self-contained fragment at the cost of redundant bytes.
type ByteRange struct {
	Offset        int
	Limit         int
	HasLimit      bool
	IncludeHeader bool
}

// Validate checks range bounds. A range beyond the end of the image is
// legal and yields an empty slice.
func (r ByteRange) Validate() error {
	if r.Offset < 0 {
		return NewError(KindInvalidParameter, "offset must not be negative")
	}
	if r.HasLimit && r.Limit < 0 {
		return NewError(KindInvalidParameter, "limit must not be negative")
	}
	return nil
}

// Extract returns the requested window of the encoded bytes. It is pure:
// concatenating sequential gap-free windows over [0, length) reproduces the
// full encoding byte for byte.
func Extract(img *EncodedImage, r ByteRange) []byte {
	data := img.Bytes

	if r.Offset >= len(data) {
		return []byte{}
	}

	// Compare against the remaining length instead of computing
	// Offset+Limit, which overflows for huge limits.
	end := len(data)
	if r.HasLimit && r.Limit < end-r.Offset {
		end = r.Offset + r.Limit
	}

	window := data[r.Offset:end]
	if r.IncludeHeader && r.Offset > 0 {
		out := make([]byte, 0, r.Offset+len(window))
		out = append(out, data[:r.Offset]...)
		out = append(out, window...)
		return out
	}
	return window
}
