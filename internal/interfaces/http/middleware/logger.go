// internal/interfaces/http/middleware/logger.go
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger returns a gin.HandlerFunc that logs HTTP requests
func Logger(logger *logrus.Logger) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Skip: func(c *gin.Context) bool {
			p := c.Request.URL.Path
			return p == "/health" || p == "/ready" || strings.HasPrefix(p, "/metrics")
		},
		Formatter: func(param gin.LogFormatterParams) string {
			entry := logger.WithFields(logrus.Fields{
				"request_id":    param.Keys[RequestIDKey],
				"session_id":    param.Keys[sessionIDKey],
				"timestamp":     param.TimeStamp.Format(time.RFC3339),
				"method":        param.Method,
				"path":          param.Path,
				"status_code":   param.StatusCode,
				"latency":       param.Latency,
				"client_ip":     param.ClientIP,
				"user_agent":    param.Request.UserAgent(),
				"response_size": param.BodySize,
			})

			if param.ErrorMessage != "" {
				entry = entry.WithField("error", param.ErrorMessage)
			}

			// Log based on status code
			if param.StatusCode >= 500 {
				entry.Error("HTTP request completed with server error")
			} else if param.StatusCode >= 400 {
				entry.Warn("HTTP request completed with client error")
			} else {
				entry.Info("HTTP request completed successfully")
			}

			return ""
		},
	})
}
