// Package rendering implements the screenshot pipeline: resolve content,
// capture it in an isolated browser surface, encode to the requested output
// format and slice the result into caller-requested byte windows.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for raster post-processing
	_ "image/png"  // register decoder for raster post-processing

	"github.com/rmitchellscott/inkframe/internal/imageprocessing"
	"github.com/rmitchellscott/inkframe/internal/logging"
)

// Capturer is the capture unit contract, split out so handler tests can
// substitute a canned raster source.
type Capturer interface {
	Capture(ctx context.Context, content Content, width, height int, format Format, quality int) ([]byte, error)
}

// Renderer ties resolution, capture and encoding together.
type Renderer struct {
	capturer Capturer
	resolver ContentResolver
}

// NewRenderer creates a Renderer.
func NewRenderer(capturer Capturer, resolver ContentResolver) *Renderer {
	return &Renderer{capturer: capturer, resolver: resolver}
}

// Render executes one request end to end and returns the complete encoded
// image. Chunking happens on the result via Extract, never here, so ranged
// and full downloads see identical bytes.
func (r *Renderer) Render(ctx context.Context, req Request) (*EncodedImage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	content := Content{URL: req.URL}
	if req.Template != "" {
		markup, meta, err := r.resolver.Resolve(ctx, req.Template)
		if err != nil {
			return nil, err
		}
		content = Content{Markup: markup}
		logging.DebugWithComponent(logging.ComponentCapture, "Resolved template",
			"template", req.Template, "source", meta.SourceKey)
	}

	switch req.Format {
	case FormatPNG, FormatJPEG, FormatWebP:
		data, err := r.capturer.Capture(ctx, content, req.Width, req.Height, req.Format, req.Quality)
		if err != nil {
			return nil, err
		}
		return &EncodedImage{Format: req.Format, Bytes: data}, nil

	case FormatBMP:
		return r.renderMono(ctx, content, req)

	default:
		return nil, NewError(KindInvalidParameter, fmt.Sprintf("unsupported format %v", req.Format))
	}
}

// renderMono captures a lossless PNG and packs it into the 1-bit container.
func (r *Renderer) renderMono(ctx context.Context, content Content, req Request) (*EncodedImage, error) {
	data, err := r.capturer.Capture(ctx, content, req.Width, req.Height, FormatPNG, 0)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, WrapError(KindRenderFailure, "failed to decode captured raster", err)
	}

	img = imageprocessing.ResizeTo(img, req.Width, req.Height)
	if req.Dither {
		img = imageprocessing.DitherMono(img)
	}

	encoded, err := imageprocessing.EncodeMonoBMP(img, req.Threshold)
	if err != nil {
		return nil, WrapError(KindRenderFailure, "monochrome encoding failed", err)
	}

	return &EncodedImage{Format: FormatBMP, Bytes: encoded}, nil
}
