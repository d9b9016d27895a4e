package main

import (
	// standard library
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// third-party
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	// internal
	"github.com/rmitchellscott/inkframe/internal/browser"
	"github.com/rmitchellscott/inkframe/internal/cache"
	"github.com/rmitchellscott/inkframe/internal/config"
	"github.com/rmitchellscott/inkframe/internal/handlers"
	"github.com/rmitchellscott/inkframe/internal/logging"
	"github.com/rmitchellscott/inkframe/internal/middleware"
	"github.com/rmitchellscott/inkframe/internal/rendering"
	"github.com/rmitchellscott/inkframe/internal/version"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version.String())
		os.Exit(0)
	}

	logging.InfoWithComponent(logging.ComponentStartup, "Starting inkframe", "version", version.String())

	// Rendered-content cache, injected into the resolver and the admin
	// endpoints. Nothing survives a restart.
	store := cache.New(config.GetInt("CACHE_CAPACITY", cache.DefaultCapacity))

	var resolver rendering.ContentResolver = &rendering.FileResolver{
		Dir: config.Get("TEMPLATE_DIR", "./templates"),
	}
	resolver = &rendering.CachedResolver{
		Inner: resolver,
		Store: store,
		TTL:   config.GetDuration("TEMPLATE_CACHE_TTL", 60*time.Second),
	}

	// Single shared browser session, connected lazily on the first
	// capture. BROWSER_REMOTE_URL switches from local launch to an
	// external instance.
	sessions := browser.NewManager(browser.Config{
		RemoteURL: config.Get("BROWSER_REMOTE_URL", ""),
		Bin:       config.Get("BROWSER_BIN", ""),
	})

	capturer := rendering.NewCaptureUnit(sessions, config.GetDuration("RENDER_TIMEOUT", 30*time.Second))
	renderer := rendering.NewRenderer(capturer, resolver)

	if mode := config.Get("GIN_MODE", ""); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	// Browser-based device simulators hit the API cross-origin.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	rateLimiter := middleware.NewRenderRateLimiter(
		float64(config.GetInt("RENDER_RATE_LIMIT", 2)),
		config.GetInt("RENDER_RATE_BURST", 5),
	)

	imageHandler := &handlers.ImageHandler{Renderer: renderer}
	cacheHandlers := &handlers.CacheHandlers{Store: store}

	router.GET("/image", rateLimiter.RateLimit(), imageHandler.Handle)
	router.GET("/config", handlers.DeviceConfigHandler)
	router.GET("/healthz", handlers.HealthHandler)
	router.GET("/cache/stats", cacheHandlers.Stats)
	router.POST("/cache/clear", cacheHandlers.Clear)

	addr := ":" + config.Get("PORT", "8000")
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logging.InfoWithComponent(logging.ComponentStartup, "Listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorWithComponent(logging.ComponentStartup, "Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.InfoWithComponent(logging.ComponentShutdown, "Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.ErrorWithComponent(logging.ComponentShutdown, "Server forced to shutdown", "error", err)
	}

	sessions.Shutdown()
	logging.InfoWithComponent(logging.ComponentShutdown, "Server stopped")
}
