package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipemagic/backend/internal/service"
)

// RecipeHandler serves recipe generation and the per-user history.
type RecipeHandler struct {
	lookup  service.IRecipeLookupService
	recipes service.IRecipeService
	logger  *zap.Logger
}

func NewRecipeHandler(lookup service.IRecipeLookupService, recipes service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		lookup:  lookup,
		recipes: recipes,
		logger:  logger,
	}
}

// RegisterRoutes registers the recipe routes. Generation is open to
// anonymous callers (rate limited); history requires a session.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, generateMW ...gin.HandlerFunc) {
	handlers := append(generateMW, h.GenerateRecipe)
	router.POST("/recipes/generate", handlers...)

	recipes := router.Group("/recipes")
	recipes.Use(authMW)
	{
		recipes.POST("", h.SaveRecipe)
		recipes.GET("", h.ListRecipes)
	}
}

type GenerateRecipeRequest struct {
	Ingredients string `json:"ingredients"`
}

type SaveRecipeRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
	Recipe      string `json:"recipe" binding:"required"`
}

// GenerateRecipe proxies one ingredient query to the upstream provider
// and returns the formatted result. It holds no state and saves nothing;
// persisting the result is a separate, authenticated call.
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Ingredients) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No ingredients provided"})
		return
	}

	recipe, err := h.lookup.LookupRecipe(c.Request.Context(), req.Ingredients)
	if errors.Is(err, service.ErrNoRecipeFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recipe found"})
		return
	}
	if err != nil {
		// Full detail stays in the log; the caller only sees the
		// opaque message.
		h.logger.Error("recipe lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// SaveRecipe appends one row to the session user's history. The email
// always comes from the validated session, never from the request body.
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	saved, err := h.recipes.SaveRecipe(c.Request.Context(), email, req.Ingredients, req.Recipe)
	if err != nil {
		h.logger.Error("failed to save recipe", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": saved})
}

// ListRecipes returns the session user's history, newest first.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.recipes.History(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("failed to fetch history", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
