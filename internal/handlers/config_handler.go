package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/inkframe/internal/config"
	"github.com/rmitchellscott/inkframe/internal/imageprocessing"
	"github.com/rmitchellscott/inkframe/internal/version"
)

// DeviceConfig is the document the display firmware polls at boot to learn
// where and how to fetch its image.
type DeviceConfig struct {
	Image   ImageConfig   `json:"image"`
	Display DisplayConfig `json:"display"`
}

type ImageConfig struct {
	BaseURL    string          `json:"base_url"`
	Path       string          `json:"path"`
	Parameters ImageParameters `json:"parameters"`
}

type ImageParameters struct {
	Format    string `json:"format"`
	Threshold int    `json:"threshold"`
	URL       string `json:"url,omitempty"`
	Template  string `json:"template,omitempty"`
}

type DisplayConfig struct {
	Width              int `json:"width"`
	Height             int `json:"height"`
	RefreshIntervalSec int `json:"refresh_interval_sec"`
}

// DeviceConfigHandler answers GET /config from environment-driven settings.
func DeviceConfigHandler(c *gin.Context) {
	cfg := DeviceConfig{
		Image: ImageConfig{
			BaseURL: config.Get("IMAGE_BASE_URL", ""),
			Path:    config.Get("IMAGE_PATH", "/image"),
			Parameters: ImageParameters{
				Format:    config.Get("IMAGE_FORMAT", "bmp"),
				Threshold: config.GetInt("IMAGE_THRESHOLD", imageprocessing.DefaultThreshold),
				URL:       config.Get("IMAGE_URL", ""),
				Template:  config.Get("IMAGE_TEMPLATE", ""),
			},
		},
		Display: DisplayConfig{
			Width:              config.GetInt("DISPLAY_WIDTH", 800),
			Height:             config.GetInt("DISPLAY_HEIGHT", 480),
			RefreshIntervalSec: config.GetInt("DISPLAY_REFRESH_INTERVAL_SEC", 60),
		},
	}

	c.JSON(http.StatusOK, cfg)
}

// HealthHandler answers GET /healthz.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.String(),
	})
}
