// Package middleware provides HTTP middleware functions for request logging and processing.
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stwalsh4118/hypescreen/internal/logger"
)

// RequestLogger returns a Gin middleware for logging HTTP requests.
// Requests whose path starts with one of quietPrefixes (the kiosk polling
// endpoints) are logged at debug level unless they fail.
func RequestLogger(quietPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Log.Error()
		case status < 400 && isQuiet(path, quietPrefixes):
			event = logger.Log.Debug()
		default:
			event = logger.Log.Info()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")

		// Log errors separately if any occurred during request processing
		if len(c.Errors) > 0 {
			logger.Log.Error().
				Strs("errors", c.Errors.Errors()).
				Str("path", path).
				Msg("Request completed with errors")
		}
	}
}

func isQuiet(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
