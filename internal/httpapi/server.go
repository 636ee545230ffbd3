// Package httpapi exposes the household commands over JSON HTTP.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"family-meal-planner/internal/app"
	"family-meal-planner/internal/metrics"
)

// Server routes HTTP requests to the command layer.
type Server struct {
	app        *app.App
	collectors *metrics.Collectors
	logger     *slog.Logger
	origins    []string
	diskDirs   map[string]string
}

// Option configures a Server.
type Option func(*Server)

// WithCollectors records request metrics and serves them on /metrics.
func WithCollectors(c *metrics.Collectors) Option {
	return func(s *Server) { s.collectors = c }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithOrigins sets the allowed CORS origins.
func WithOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithDiskUsage reports the size of each labelled directory on /healthz.
func WithDiskUsage(dirs map[string]string) Option {
	return func(s *Server) { s.diskDirs = dirs }
}

// New creates a Server.
func New(a *app.App, opts ...Option) *Server {
	s := &Server{
		app:     a,
		logger:  slog.Default(),
		origins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if s.collectors != nil {
		r.Use(s.observe())
		r.GET("/metrics", gin.WrapH(s.collectors.Handler()))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: !allowsAll(s.origins),
	}))

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.POST("/rooms", s.createRoom)
	api.POST("/rooms/enter", s.enterRoom)
	api.GET("/rooms/:id", s.getRoom)
	api.PUT("/rooms/:id", s.updateRoom)
	api.PUT("/rooms/:id/users", s.upsertUser)
	api.DELETE("/rooms/:id/users/:userId", s.removeUser)
	api.POST("/rooms/:id/users/register", s.register)
	api.POST("/rooms/:id/sessions", s.login)

	auth := api.Group("/rooms/:id", s.requireActor())
	auth.PUT("/me/preferences", s.savePreferences)

	auth.POST("/recipes", s.addRecipe)
	auth.POST("/recipes/import", s.importRecipe)
	auth.DELETE("/recipes/:recipeId", s.deleteRecipe)

	auth.GET("/plans/:date", s.getPlan)
	auth.POST("/plans/:date/proposals/:recipeId", s.toggleProposal)
	auth.DELETE("/plans/:date/proposals/:recipeId", s.unpropose)
	auth.PUT("/plans/:date/vote", s.castVote)
	auth.DELETE("/plans/:date/vote", s.retractVote)
	auth.POST("/plans/:date/finalize", s.finalizePlan)

	auth.POST("/shopping", s.addShoppingItem)
	auth.POST("/shopping/clear-bought", s.clearBought)
	auth.DELETE("/shopping/:itemId", s.removeShoppingItem)
	auth.POST("/shopping/:itemId/toggle", s.toggleBought)
	auth.PUT("/shopping/:itemId/assignee", s.assignShoppingItem)

	auth.POST("/inventory", s.addIngredient)
	auth.PUT("/inventory/:itemId", s.updateIngredient)
	auth.DELETE("/inventory/:itemId", s.removeIngredient)

	auth.GET("/wishes", s.listWishes)
	auth.POST("/wishes", s.addWish)
	auth.DELETE("/wishes/:wishId", s.removeWish)

	auth.POST("/assistant/suggestions", s.suggest)
	auth.POST("/assistant/recipe-details", s.recipeDetails)
	auth.POST("/assistant/chat", s.chat)
	auth.POST("/assistant/weekly-plan", s.weeklyPlan)

	return r
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// GET /healthz
func (s *Server) health(c *gin.Context) {
	status, code := "ok", http.StatusOK
	if err := s.app.Store().Ping(c.Request.Context()); err != nil {
		s.logger.Warn("store ping failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "system": metrics.GetSysHealth(s.diskDirs)})
}
