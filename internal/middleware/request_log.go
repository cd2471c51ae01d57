package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
)

// RequestLogger logs every request after it completes, leveled by status.
// The arena stream endpoint is skipped; a held-open SSE request would log a
// misleading multi-minute duration on every disconnect.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if strings.Contains(path, "/stream") {
			return
		}

		status := c.Writer.Status()
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
