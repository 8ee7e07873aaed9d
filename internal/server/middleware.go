package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger はリクエストごとに1行の構造化ログを出力する gin ミドルウェアです。
// /health と /metrics は記録しません。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = path + "?" + rawQuery
		}
		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"ip", c.ClientIP(),
			"latency", time.Since(start),
			"user_agent", c.Request.UserAgent(),
			"request_id", requestID,
		}

		ctx := c.Request.Context()
		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors.ByType(gin.ErrorTypeAny) {
				logger.ErrorContext(ctx, "Request error", append(attrs, "error", ginErr.Err)...)
			}
			return
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.ErrorContext(ctx, "Server error", attrs...)
		case status >= http.StatusBadRequest:
			logger.WarnContext(ctx, "Client error", attrs...)
		default:
			logger.InfoContext(ctx, "Request completed", attrs...)
		}
	}
}

// LimitBody はリクエストボディの大きさを制限します。
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
