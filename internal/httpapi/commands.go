package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"family-meal-planner/internal/app"
	"family-meal-planner/internal/room"
)

// respond writes v, or the error if there is one.
func (s *Server) respond(c *gin.Context, code int, v any, err error) {
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(code, v)
}

// PUT me/preferences
func (s *Server) savePreferences(c *gin.Context) {
	var prefs room.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		s.badRequest(c, err)
		return
	}
	r, err := s.app.SavePreferences(c.Request.Context(), actorOf(c), prefs)
	s.respond(c, http.StatusOK, r, err)
}

// POST recipes
func (s *Server) addRecipe(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		Type         string `json:"type"`
		Description  string `json:"description"`
		IsSpecial    bool   `json:"isSpecial"`
		Instructions string `json:"instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	rec, err := s.app.AddRecipe(c.Request.Context(), actorOf(c), app.RecipeInput{
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		IsSpecial:    req.IsSpecial,
		Instructions: req.Instructions,
	})
	s.respond(c, http.StatusCreated, rec, err)
}

// POST recipes/import  body: {"url":"..."}
func (s *Server) importRecipe(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	rec, err := s.app.ImportRecipe(c.Request.Context(), actorOf(c), req.URL)
	s.respond(c, http.StatusCreated, rec, err)
}

// DELETE recipes/:recipeId
func (s *Server) deleteRecipe(c *gin.Context) {
	r, err := s.app.DeleteRecipe(c.Request.Context(), actorOf(c), c.Param("recipeId"))
	s.respond(c, http.StatusOK, r, err)
}

// GET plans/:date
func (s *Server) getPlan(c *gin.Context) {
	v, err := s.app.GetPlan(c.Request.Context(), actorOf(c), c.Param("date"))
	s.respond(c, http.StatusOK, v, err)
}

// POST plans/:date/proposals/:recipeId
func (s *Server) toggleProposal(c *gin.Context) {
	v, err := s.app.ToggleProposal(c.Request.Context(), actorOf(c), c.Param("date"), c.Param("recipeId"))
	s.respond(c, http.StatusOK, v, err)
}

// DELETE plans/:date/proposals/:recipeId
func (s *Server) unpropose(c *gin.Context) {
	v, err := s.app.Unpropose(c.Request.Context(), actorOf(c), c.Param("date"), c.Param("recipeId"))
	s.respond(c, http.StatusOK, v, err)
}

// PUT plans/:date/vote  body: {"recipeId":"..."}
func (s *Server) castVote(c *gin.Context) {
	var req struct {
		RecipeID string `json:"recipeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	v, err := s.app.CastVote(c.Request.Context(), actorOf(c), c.Param("date"), req.RecipeID)
	s.respond(c, http.StatusOK, v, err)
}

// DELETE plans/:date/vote
func (s *Server) retractVote(c *gin.Context) {
	v, err := s.app.RetractVote(c.Request.Context(), actorOf(c), c.Param("date"))
	s.respond(c, http.StatusOK, v, err)
}

// POST plans/:date/finalize  body: {"recipeIds":[...]} or empty
func (s *Server) finalizePlan(c *gin.Context) {
	var req struct {
		RecipeIDs []string `json:"recipeIds"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.badRequest(c, err)
			return
		}
	}
	v, err := s.app.FinalizePlan(c.Request.Context(), actorOf(c), c.Param("date"), req.RecipeIDs)
	s.respond(c, http.StatusOK, v, err)
}

type itemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// POST shopping
func (s *Server) addShoppingItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	it, err := s.app.AddShoppingItem(c.Request.Context(), actorOf(c), req.Name, req.Quantity)
	s.respond(c, http.StatusCreated, it, err)
}

// DELETE shopping/:itemId
func (s *Server) removeShoppingItem(c *gin.Context) {
	r, err := s.app.RemoveShoppingItem(c.Request.Context(), actorOf(c), c.Param("itemId"))
	s.respond(c, http.StatusOK, r, err)
}

// POST shopping/:itemId/toggle
func (s *Server) toggleBought(c *gin.Context) {
	r, err := s.app.ToggleBought(c.Request.Context(), actorOf(c), c.Param("itemId"))
	s.respond(c, http.StatusOK, r, err)
}

// PUT shopping/:itemId/assignee  body: {"userId":"..."}; empty clears
func (s *Server) assignShoppingItem(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	r, err := s.app.AssignShoppingItem(c.Request.Context(), actorOf(c), c.Param("itemId"), req.UserID)
	s.respond(c, http.StatusOK, r, err)
}

// POST shopping/clear-bought
func (s *Server) clearBought(c *gin.Context) {
	r, err := s.app.ClearBought(c.Request.Context(), actorOf(c))
	s.respond(c, http.StatusOK, r, err)
}

// POST inventory
func (s *Server) addIngredient(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	ing, err := s.app.AddIngredient(c.Request.Context(), actorOf(c), req.Name, req.Quantity)
	s.respond(c, http.StatusCreated, ing, err)
}

// PUT inventory/:itemId  body: {"quantity":"..."}
func (s *Server) updateIngredient(c *gin.Context) {
	var req struct {
		Quantity string `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	r, err := s.app.UpdateIngredient(c.Request.Context(), actorOf(c), c.Param("itemId"), req.Quantity)
	s.respond(c, http.StatusOK, r, err)
}

// DELETE inventory/:itemId
func (s *Server) removeIngredient(c *gin.Context) {
	r, err := s.app.RemoveIngredient(c.Request.Context(), actorOf(c), c.Param("itemId"))
	s.respond(c, http.StatusOK, r, err)
}

// POST wishes
func (s *Server) addWish(c *gin.Context) {
	var req struct {
		DishName string `json:"dishName"`
		MealType string `json:"mealType"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	w, err := s.app.AddWish(c.Request.Context(), actorOf(c), app.WishInput{
		DishName: req.DishName, MealType: req.MealType, Notes: req.Notes,
	})
	s.respond(c, http.StatusCreated, w, err)
}

// GET wishes
func (s *Server) listWishes(c *gin.Context) {
	wishes, err := s.app.Wishes(c.Request.Context(), actorOf(c))
	s.respond(c, http.StatusOK, gin.H{"wishes": wishes}, err)
}

// DELETE wishes/:wishId
func (s *Server) removeWish(c *gin.Context) {
	r, err := s.app.RemoveWish(c.Request.Context(), actorOf(c), c.Param("wishId"))
	s.respond(c, http.StatusOK, r, err)
}
