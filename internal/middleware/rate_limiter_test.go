package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	limiter := NewRenderRateLimiter(rps, burst)
	router.GET("/image", limiter.RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimitBurst(t *testing.T) {
	router := newLimitedRouter(1, 3)

	statuses := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/image", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	for i := 0; i < 3; i++ {
		if statuses[i] != http.StatusOK {
			t.Errorf("request %d = %d, want 200 within burst", i, statuses[i])
		}
	}
	if statuses[3] != http.StatusTooManyRequests && statuses[4] != http.StatusTooManyRequests {
		t.Errorf("requests beyond burst were not throttled: %v", statuses)
	}
}

func TestRateLimitPerClient(t *testing.T) {
	router := newLimitedRouter(1, 1)

	send := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/image", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w.Code
	}

	if got := send("10.0.0.1:1234"); got != http.StatusOK {
		t.Errorf("first client first request = %d, want 200", got)
	}
	if got := send("10.0.0.1:1234"); got != http.StatusTooManyRequests {
		t.Errorf("first client second request = %d, want 429", got)
	}
	// A different client has its own bucket.
	if got := send("10.0.0.2:1234"); got != http.StatusOK {
		t.Errorf("second client first request = %d, want 200", got)
	}
}
