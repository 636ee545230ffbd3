package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"family-meal-planner/internal/room"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, room.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, room.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, room.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, room.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abort writes err as {"error": ...}. Unclassified errors are logged and
// hidden from the client.
func (s *Server) abort(c *gin.Context, err error) {
	code := statusOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}
