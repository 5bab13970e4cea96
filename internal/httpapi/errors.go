package httpapi

import (
	"errors"
	"net/http"

	"github.com/UnknownOlympus/foodbridge/internal/backend"
	"github.com/UnknownOlympus/foodbridge/internal/feed"
	"github.com/gin-gonic/gin"
)

var errBadRequest = errors.New("bad request")

// statusOf maps service errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, feed.ErrInvalidFilter),
		errors.Is(err, feed.ErrInvalidKind),
		errors.Is(err, feed.ErrInvalidView):
		return http.StatusBadRequest
	case errors.Is(err, feed.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, feed.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, feed.ErrNotFound), errors.Is(err, backend.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, feed.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) fail(c *gin.Context, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		h.log.ErrorContext(c.Request.Context(), "Request failed",
			"request_id", c.GetString(keyRequestID), "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(code, gin.H{"error": "internal server error", "request_id": c.GetString(keyRequestID)})
		return
	}
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
