package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"

	"footdle/internal/types"
)

const maxRequestIDLength = 128

// getLimiter returns a rate limiter for the given key (usually client IP).
func (app *App) getLimiter(key string) *rate.Limiter {
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()
	if lim, ok := app.LimiterMap[key]; ok {
		return lim
	}

	if key == "" || key == "::1" {
		logWarn("Rate limiter key is empty or loopback: %q", key)
	}
	rps := app.RateLimitRPS
	if rps <= 0 {
		rps = 1
	}
	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), app.RateLimitBurst)
	app.LimiterMap[key] = lim
	return lim
}

// rateLimitMiddleware returns a Gin middleware that enforces per-client rate limiting.
func (app *App) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !app.getLimiter(key).Allow() {
			ctxLogger(c.Request.Context()).Warn().Str("ip", key).Msg("Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{Error: ErrorTooManyRequest})
			return
		}
		c.Next()
	}
}

// requestIDMiddleware injects a request ID, and a logger carrying it, into
// the context for each request.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = uuid.NewString()
		}
		logger := log.With().Str("request_id", reqID).Logger()
		ctx := context.WithValue(c.Request.Context(), requestIDKey, reqID)
		ctx = logger.WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, reqID)
		c.Next()
	}
}

// requestLogMiddleware logs one line per served request.
func requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ctxLogger(c.Request.Context()).Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("ip", c.ClientIP()).
			Dur("latency", time.Since(start).Round(time.Microsecond)).
			Msg("SERVE")
	}
}

// puzzleCacheControl lets browsers and CDNs cache puzzle metadata briefly;
// it is identical for every client on a given day.
func (app *App) puzzleCacheControl() gin.HandlerFunc {
	if app.PuzzleCacheAge <= 0 {
		return noStoreCacheControl()
	}
	return cachecontrol.New(cachecontrol.Config{
		Public:  true,
		MaxAge:  cachecontrol.Duration(app.PuzzleCacheAge),
		SMaxAge: cachecontrol.Duration(5 * app.PuzzleCacheAge),
	})
}

func noStoreCacheControl() gin.HandlerFunc {
	return cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})
}
