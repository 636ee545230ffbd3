package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
)

const actorKey = "actor"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.collectors.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// requireActor accepts only bearer tokens issued for the room in the path.
func (s *Server) requireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": session.ErrMissingToken.Error()})
			return
		}
		actor, _, err := s.app.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.abort(c, err)
			return
		}
		if actor.RoomID != c.Param("id") {
			s.abort(c, room.ErrForbidden)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

func actorOf(c *gin.Context) session.Actor {
	a, _ := c.Get(actorKey)
	actor, _ := a.(session.Actor)
	return actor
}
