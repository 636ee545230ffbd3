package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"family-meal-planner/internal/llm"
)

// POST assistant/suggestions  body: {"scope":"cookbook|global","history":"..."}
func (s *Server) suggest(c *gin.Context) {
	var req struct {
		Scope   string `json:"scope"`
		History string `json:"history"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.badRequest(c, err)
			return
		}
	}
	out, err := s.app.Suggest(c.Request.Context(), actorOf(c), req.Scope, req.History)
	s.respond(c, http.StatusOK, out, err)
}

// POST assistant/recipe-details  body: {"dish":"..."}
func (s *Server) recipeDetails(c *gin.Context) {
	var req struct {
		Dish string `json:"dish"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	text, err := s.app.RecipeDetails(c.Request.Context(), actorOf(c), req.Dish)
	s.respond(c, http.StatusOK, gin.H{"details": text}, err)
}

// POST assistant/chat  body: {"message":"...","history":[{"role":"user","text":"..."}]}
func (s *Server) chat(c *gin.Context) {
	var req struct {
		Message string        `json:"message"`
		History []llm.Message `json:"history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	reply, err := s.app.Chat(c.Request.Context(), actorOf(c), req.Message, req.History)
	s.respond(c, http.StatusOK, gin.H{"reply": reply}, err)
}

// POST assistant/weekly-plan
func (s *Server) weeklyPlan(c *gin.Context) {
	plan, err := s.app.WeeklyPlan(c.Request.Context(), actorOf(c))
	s.respond(c, http.StatusOK, gin.H{"days": plan}, err)
}
