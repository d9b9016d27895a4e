package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/inkframe/internal/imageprocessing"
	"github.com/rmitchellscott/inkframe/internal/logging"
	"github.com/rmitchellscott/inkframe/internal/rendering"
	"github.com/rmitchellscott/inkframe/internal/utils"
)

// ImageRenderer is what the image handler needs from the render pipeline.
type ImageRenderer interface {
	Render(ctx context.Context, req rendering.Request) (*rendering.EncodedImage, error)
}

// ImageHandler serves the chunked image retrieval operation consumed by the
// embedded display client.
type ImageHandler struct {
	Renderer ImageRenderer
}

// Handle answers GET /image. Query parameters: url XOR template, width,
// height, format, quality, threshold, dither, offset, limit, header.
func (h *ImageHandler) Handle(c *gin.Context) {
	req, byteRange, err := parseImageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	img, err := h.Renderer.Render(c.Request.Context(), req)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentAPIImage, "Render failed",
			"format", req.Format.String(), "kind", rendering.KindOf(err).String(), "error", err)
		respondError(c, err)
		return
	}

	data := rendering.Extract(img, byteRange)
	c.Header("X-Total-Length", strconv.Itoa(img.Length()))
	c.Data(http.StatusOK, img.Format.MediaType(), data)
}

func parseImageQuery(c *gin.Context) (rendering.Request, rendering.ByteRange, error) {
	req := rendering.Request{
		URL:       c.Query("url"),
		Template:  c.Query("template"),
		Threshold: imageprocessing.DefaultThreshold,
		Quality:   90,
	}
	var byteRange rendering.ByteRange

	var err error
	if req.Width, err = intQuery(c, "width", 800); err != nil {
		return req, byteRange, err
	}
	if req.Height, err = intQuery(c, "height", 480); err != nil {
		return req, byteRange, err
	}

	formatStr := c.DefaultQuery("format", "bmp")
	req.Format, err = rendering.ParseFormat(formatStr)
	if err != nil {
		return req, byteRange, rendering.NewError(rendering.KindInvalidParameter, err.Error())
	}

	if req.Quality, err = intQuery(c, "quality", req.Quality); err != nil {
		return req, byteRange, err
	}

	threshold, err := intQuery(c, "threshold", int(req.Threshold))
	if err != nil {
		return req, byteRange, err
	}
	if threshold < 0 || threshold > 255 {
		return req, byteRange, rendering.NewError(rendering.KindInvalidParameter,
			fmt.Sprintf("threshold must be in 0..255, got %d", threshold))
	}
	req.Threshold = uint8(threshold)

	req.Dither = c.DefaultQuery("dither", "false") == "true"

	if byteRange.Offset, err = intQuery(c, "offset", 0); err != nil {
		return req, byteRange, err
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		byteRange.HasLimit = true
		if byteRange.Limit, err = intQuery(c, "limit", 0); err != nil {
			return req, byteRange, err
		}
	}
	byteRange.IncludeHeader = c.DefaultQuery("header", "false") == "true"

	if err := byteRange.Validate(); err != nil {
		return req, byteRange, err
	}

	if req.URL != "" {
		if err := utils.ValidateURL(req.URL); err != nil {
			return req, byteRange, rendering.WrapError(rendering.KindInvalidParameter, "url rejected", err)
		}
	}

	return req, byteRange, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, rendering.NewError(rendering.KindInvalidParameter,
			fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	return n, nil
}

// respondError maps the render error taxonomy to HTTP status codes.
func respondError(c *gin.Context, err error) {
	kind := rendering.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case rendering.KindInvalidParameter:
		status = http.StatusBadRequest
	case rendering.KindContentNotAvailable:
		status = http.StatusNotFound
	case rendering.KindRenderTimeout:
		status = http.StatusGatewayTimeout
	case rendering.KindSessionUnavailable:
		status = http.StatusBadGateway
	case rendering.KindRenderFailure:
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"kind":  kind.String(),
	})
}
