package logging

// Component constants for structured logging
const (
	ComponentStartup   = "startup"
	ComponentShutdown  = "shutdown"
	ComponentBrowser   = "browser"
	ComponentCapture   = "capture"
	ComponentCache     = "cache"
	ComponentResolver  = "resolver"
	ComponentAPIImage  = "api-image"
	ComponentAPIConfig = "api-config"
	ComponentRateLimit = "rate-limit"
)
