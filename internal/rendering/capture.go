package rendering

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/rmitchellscott/inkframe/internal/browser"
	"github.com/rmitchellscott/inkframe/internal/logging"
)

// Content is what gets loaded into a rendering surface: either a URL to
// navigate to or a markup string to set directly.
type Content struct {
	URL    string
	Markup string
}

// CaptureUnit opens an isolated rendering surface per request, loads
// content, waits for network idle and takes a screenshot in one of the
// browser's native formats.
type CaptureUnit struct {
	sessions *browser.Manager

	// Timeout bounds one content load plus capture.
	Timeout time.Duration

	// IdleWindow is how long the network must stay quiet before the
	// page counts as stable.
	IdleWindow time.Duration
}

// NewCaptureUnit creates a capture unit borrowing surfaces from sessions.
func NewCaptureUnit(sessions *browser.Manager, timeout time.Duration) *CaptureUnit {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CaptureUnit{
		sessions:   sessions,
		Timeout:    timeout,
		IdleWindow: 500 * time.Millisecond,
	}
}

// Capture loads content at the given viewport size and returns the
// screenshot bytes in the requested native format. Quality applies to lossy
// formats only. The surface is released on every exit path; only the shared
// session survives the call.
func (u *CaptureUnit) Capture(ctx context.Context, content Content, width, height int, format Format, quality int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	surface, err := u.sessions.AcquireSurface(ctx)
	if err != nil {
		return nil, WrapError(KindSessionUnavailable, "failed to acquire rendering surface", err)
	}
	defer surface.Release()

	data, err := u.captureOnSurface(surface, content, width, height, format, quality)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, WrapError(KindRenderTimeout, "content load exceeded render deadline", err)
		}
		return nil, WrapError(KindRenderFailure, "capture failed", err)
	}
	return data, nil
}

func (u *CaptureUnit) captureOnSurface(surface *browser.Surface, content Content, width, height int, format Format, quality int) ([]byte, error) {
	page := surface.Page()

	err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	})
	if err != nil {
		return nil, err
	}

	// Both loading modes converge on the same network-idle signal so a
	// navigated page and an injected markup string capture identically.
	waitIdle := page.WaitRequestIdle(u.IdleWindow, nil, nil, nil)

	start := time.Now()
	if content.URL != "" {
		if err := page.Navigate(content.URL); err != nil {
			return nil, err
		}
	} else {
		if err := page.SetDocumentContent(content.Markup); err != nil {
			return nil, err
		}
	}

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}
	waitIdle()

	logging.DebugWithComponent(logging.ComponentCapture, "Page stable",
		"url", content.URL, "load_ms", time.Since(start).Milliseconds())

	req := &proto.PageCaptureScreenshot{
		Format: nativeScreenshotFormat(format),
	}
	if format.Lossy() {
		q := quality
		req.Quality = &q
	}

	return page.Screenshot(false, req)
}

// nativeScreenshotFormat maps a Format to the browser's screenshot encoder.
// The monochrome container is not browser-native; it is packed from a PNG
// capture downstream, so it never reaches this switch.
func nativeScreenshotFormat(f Format) proto.PageCaptureScreenshotFormat {
	switch f {
	case FormatJPEG:
		return proto.PageCaptureScreenshotFormatJpeg
	case FormatWebP:
		return proto.PageCaptureScreenshotFormatWebp
	default:
		return proto.PageCaptureScreenshotFormatPng
	}
}
