package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/inkframe/internal/cache"
)

func TestDeviceConfigHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/config", DeviceConfigHandler)

	t.Setenv("IMAGE_BASE_URL", "http://192.168.0.129:8000")
	t.Setenv("IMAGE_TEMPLATE", "dashboard")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/config", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var cfg DeviceConfig
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if cfg.Image.BaseURL != "http://192.168.0.129:8000" {
		t.Errorf("base_url = %q", cfg.Image.BaseURL)
	}
	if cfg.Image.Path != "/image" {
		t.Errorf("path = %q, want /image", cfg.Image.Path)
	}
	if cfg.Image.Parameters.Format != "bmp" || cfg.Image.Parameters.Threshold != 128 {
		t.Errorf("parameters = %+v, want bmp/128 defaults", cfg.Image.Parameters)
	}
	if cfg.Image.Parameters.Template != "dashboard" {
		t.Errorf("template = %q", cfg.Image.Parameters.Template)
	}
	if cfg.Display.Width != 800 || cfg.Display.Height != 480 || cfg.Display.RefreshIntervalSec != 60 {
		t.Errorf("display = %+v, want 800x480/60s defaults", cfg.Display)
	}
}

func TestCacheHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := cache.New(10)
	store.Set("dash", "<html/>", time.Minute, cache.Metadata{SourceKey: "upstream", FetchedUnits: 2})

	h := &CacheHandlers{Store: store}
	router := gin.New()
	router.GET("/cache/stats", h.Stats)
	router.POST("/cache/clear", h.Clear)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cache/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if stats.Count != 1 {
		t.Errorf("count = %d, want 1", stats.Count)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cache/clear", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d", w.Code)
	}
	if store.Len() != 0 {
		t.Errorf("cache not empty after clear, Len = %d", store.Len())
	}
}
