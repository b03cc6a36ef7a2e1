package middleware

import (
	"time"

	"task-description-updater/pkg/log"
)

// Config tunes the status API middleware.
type Config struct {
	AllowedOrigins  []string
	RateLimitPerMin int
}

type Middleware struct {
	l       log.Logger
	origins []string
	limiter *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	return Middleware{
		l:       l,
		origins: cfg.AllowedOrigins,
		limiter: newRateLimiter(cfg.RateLimitPerMin, limiterCacheSize, limiterTTL),
	}
}

const (
	limiterCacheSize = 1000
	limiterTTL       = 5 * time.Minute
)
