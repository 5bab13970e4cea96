package httpapi

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	keyRequestID    = "request_id"
)

// requestID makes sure every request carries an id, echoed back to the caller.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set(keyRequestID, rid)
		c.Writer.Header().Set(headerRequestID, rid)
		c.Next()
	}
}

// identify attaches the caller's session to the request context.
func identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := session.FromHeaders(c.Request.Header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

// requestLogger logs every finished request, raising the level with the status class.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		sess := session.FromContext(c.Request.Context())
		attrs := []any{
			"request_id", c.GetString(keyRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"role", sess.Role,
			"role_id", sess.RoleID,
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			log.ErrorContext(ctx, "Request completed with server error", attrs...)
		case status >= http.StatusBadRequest:
			log.WarnContext(ctx, "Request completed with client error", attrs...)
		default:
			log.DebugContext(ctx, "Request completed", attrs...)
		}
	}
}

// recovery turns panics into 500 responses and logs the stack.
func recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(c.Request.Context(), "Panic recovered",
					"request_id", c.GetString(keyRequestID),
					"panic", r,
					"stack", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": "internal server error", "request_id": c.GetString(keyRequestID)})
			}
		}()
		c.Next()
	}
}
