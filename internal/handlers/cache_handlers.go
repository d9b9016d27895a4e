package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/inkframe/internal/cache"
	"github.com/rmitchellscott/inkframe/internal/logging"
)

// CacheHandlers exposes the operational surface of the rendered-content
// cache.
type CacheHandlers struct {
	Store *cache.Store
}

// Stats answers GET /cache/stats.
func (h *CacheHandlers) Stats(c *gin.Context) {
	stats := h.Store.Stats()
	c.JSON(http.StatusOK, gin.H{
		"entries": stats,
		"count":   len(stats),
	})
}

// Clear answers POST /cache/clear.
func (h *CacheHandlers) Clear(c *gin.Context) {
	h.Store.Clear()
	logging.InfoWithComponent(logging.ComponentCache, "Cache cleared via API", "ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
