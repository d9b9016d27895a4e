package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/inkframe/internal/imageprocessing"
	"github.com/rmitchellscott/inkframe/internal/rendering"
)

// fakeRenderer returns a fixed encoded image and records the request.
type fakeRenderer struct {
	img     *rendering.EncodedImage
	err     error
	lastReq rendering.Request
}

func (r *fakeRenderer) Render(_ context.Context, req rendering.Request) (*rendering.EncodedImage, error) {
	r.lastReq = req
	if r.err != nil {
		return nil, r.err
	}
	return r.img, nil
}

func newImageRouter(r ImageRenderer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := &ImageHandler{Renderer: r}
	router.GET("/image", h.Handle)
	return router
}

func encodedTestImage(n int) *rendering.EncodedImage {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return &rendering.EncodedImage{Format: rendering.FormatBMP, Bytes: data}
}

func get(t *testing.T, router *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestImageHandlerDefaults(t *testing.T) {
	fake := &fakeRenderer{img: encodedTestImage(48062)}
	router := newImageRouter(fake)

	w := get(t, router, "/image?url=http://example.com")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "image/bmp" {
		t.Errorf("content type = %q, want image/bmp", got)
	}
	if w.Body.Len() != 48062 {
		t.Errorf("body length = %d, want full image", w.Body.Len())
	}

	req := fake.lastReq
	if req.Width != 800 || req.Height != 480 {
		t.Errorf("default dimensions = %dx%d, want 800x480", req.Width, req.Height)
	}
	if req.Format != rendering.FormatBMP {
		t.Errorf("default format = %v, want bmp", req.Format)
	}
	if req.Threshold != imageprocessing.DefaultThreshold {
		t.Errorf("default threshold = %d, want %d", req.Threshold, imageprocessing.DefaultThreshold)
	}
}

func TestImageHandlerChunking(t *testing.T) {
	img := encodedTestImage(48062)
	router := newImageRouter(&fakeRenderer{img: img})

	first := get(t, router, "/image?url=http://example.com&offset=0&limit=1000")
	rest := get(t, router, "/image?url=http://example.com&offset=1000")
	full := get(t, router, "/image?url=http://example.com")

	if first.Body.Len() != 1000 {
		t.Errorf("first chunk length = %d, want 1000", first.Body.Len())
	}
	joined := append(append([]byte{}, first.Body.Bytes()...), rest.Body.Bytes()...)
	if !bytes.Equal(joined, full.Body.Bytes()) {
		t.Error("chunked responses must concatenate to the full response")
	}
	if got := first.Header().Get("X-Total-Length"); got != "48062" {
		t.Errorf("X-Total-Length = %q, want 48062", got)
	}
}

func TestImageHandlerIncludeHeader(t *testing.T) {
	img := encodedTestImage(200)
	router := newImageRouter(&fakeRenderer{img: img})

	w := get(t, router, "/image?url=http://example.com&offset=62&limit=10&header=true")
	if w.Body.Len() != 72 {
		t.Errorf("body length = %d, want 62 header bytes + 10 window bytes", w.Body.Len())
	}
}

func TestImageHandlerParameterErrors(t *testing.T) {
	router := newImageRouter(&fakeRenderer{img: encodedTestImage(10)})

	tests := []struct {
		name   string
		target string
	}{
		{"unknown format", "/image?url=http://example.com&format=tiff"},
		{"threshold too large", "/image?url=http://example.com&threshold=256"},
		{"negative offset", "/image?url=http://example.com&offset=-1"},
		{"negative limit", "/image?url=http://example.com&limit=-2"},
		{"non-integer width", "/image?url=http://example.com&width=abc"},
		{"bad scheme", "/image?url=ftp://example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, router, tt.target)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestImageHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid parameter", rendering.NewError(rendering.KindInvalidParameter, "bad"), http.StatusBadRequest},
		{"content not available", rendering.NewError(rendering.KindContentNotAvailable, "gone"), http.StatusNotFound},
		{"render timeout", rendering.NewError(rendering.KindRenderTimeout, "slow"), http.StatusGatewayTimeout},
		{"session unavailable", rendering.NewError(rendering.KindSessionUnavailable, "down"), http.StatusBadGateway},
		{"render failure", rendering.NewError(rendering.KindRenderFailure, "boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newImageRouter(&fakeRenderer{err: tt.err})
			w := get(t, router, "/image?url=http://example.com")
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestImageHandlerTemplateParam(t *testing.T) {
	fake := &fakeRenderer{img: encodedTestImage(10)}
	router := newImageRouter(fake)

	w := get(t, router, "/image?template=dashboard&format=png")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if fake.lastReq.Template != "dashboard" || fake.lastReq.URL != "" {
		t.Errorf("request = %+v, want template-only request", fake.lastReq)
	}
}
