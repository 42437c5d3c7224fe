package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/noble-it/hub/internal/types"
)

// RequestID propagates an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(types.RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		ctx.Set(types.ContextRequestIDKey, id)
		ctx.Header(types.RequestIDHeader, id)
		ctx.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		logger.Log(ctx.Request.Context(), level, "request",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", ctx.GetString(types.ContextRequestIDKey),
		)
	}
}

// RequireDatabase answers 503 for data routes when no database is configured.
func RequireDatabase(enabled bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !enabled {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable"})
			return
		}
		ctx.Next()
	}
}
