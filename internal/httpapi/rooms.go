package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"family-meal-planner/internal/app"
	"family-meal-planner/internal/recipe"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/shopping"
	"family-meal-planner/internal/wishlist"
)

type createRoomRequest struct {
	Name         string          `json:"name"`
	Password     string          `json:"password"`
	WithDefaults bool            `json:"withDefaults"`
	Users        []room.User     `json:"users"`
	Recipes      []recipe.Recipe `json:"recipes"`
	ShoppingList []shopping.Item `json:"shoppingList"`
	WishLists    []wishlist.Item `json:"wishLists"`
}

// POST /api/rooms
func (s *Server) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	r, err := s.app.CreateRoom(c.Request.Context(), app.CreateRoomInput{
		Name:         req.Name,
		Password:     req.Password,
		WithDefaults: req.WithDefaults,
		Seed: room.Seed{
			Users:        req.Users,
			Recipes:      req.Recipes,
			ShoppingList: req.ShoppingList,
			WishLists:    req.WishLists,
		},
	})
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// POST /api/rooms/enter
func (s *Server) enterRoom(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	r, err := s.app.EnterRoom(c.Request.Context(), req.Name, req.Password)
	if errors.Is(err, room.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid room name or password"})
		return
	}
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// GET /api/rooms/:id
func (s *Server) getRoom(c *gin.Context) {
	r, err := s.app.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// PUT /api/rooms/:id  body: any subset of the room's top-level fields
func (s *Server) updateRoom(c *gin.Context) {
	var p room.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		s.badRequest(c, err)
		return
	}
	r, err := s.app.ApplyUpdate(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// PUT /api/rooms/:id/users
func (s *Server) upsertUser(c *gin.Context) {
	var u room.User
	if err := c.ShouldBindJSON(&u); err != nil {
		s.badRequest(c, err)
		return
	}
	r, err := s.app.UpsertUser(c.Request.Context(), c.Param("id"), u)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DELETE /api/rooms/:id/users/:userId
func (s *Server) removeUser(c *gin.Context) {
	r, err := s.app.RemoveUser(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/rooms/:id/users/register
func (s *Server) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	u, err := s.app.RegisterUser(c.Request.Context(), c.Param("id"), app.RegisterInput{
		Name: req.Name, Role: req.Role, Password: req.Password,
	})
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// POST /api/rooms/:id/sessions  body: {"userId":"...","password":"..."}
func (s *Server) login(c *gin.Context) {
	var req struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	sess, err := s.app.Login(c.Request.Context(), c.Param("id"), req.UserID, req.Password)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
