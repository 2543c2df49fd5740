package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/harvestplan/backend/internal/middleware"
	"github.com/pageza/harvestplan/backend/internal/service"
	"github.com/pageza/harvestplan/backend/internal/types"
)

// RecipeHandler handles recipe-related HTTP requests
type RecipeHandler struct {
	recipeService service.IRecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// ListRecipes handles GET /recipes, optionally filtered by ?meal_type=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID, c.Query("meal_type"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// CreateRecipe handles POST /recipes
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// UpdateRecipe handles PUT /recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteRecipe handles DELETE /recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
