package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virtualfridge/backend/internal/service"
)

// RecipeHandler handles recipe generation, history and favorites.
type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/generate", h.Generate)
		recipes.GET("/history", h.History)
		recipes.POST("/toggle-favorite", h.ToggleFavorite)
	}
}

// Generate produces a recipe from the current user's inventory and
// stores it in the history.
func (h *RecipeHandler) Generate(c *gin.Context) {
	username := c.GetString("username")
	entry, err := h.recipes.Generate(c.Request.Context(), username)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "recipe": entry.Recipe, "recipe_id": entry.ID})
	case errors.Is(err, service.ErrNoProducts):
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Du hast noch keine Produkte in deinem Kühlschrank! Füge erst einige Produkte hinzu.",
		})
	case errors.Is(err, service.ErrGenerationFailed):
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Rezeptgenerierung fehlgeschlagen. Bitte versuche es erneut.",
		})
	default:
		log.Printf("recipe generation failed for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Rezeptgenerierung fehlgeschlagen"})
	}
}

// History returns the user's recipe history with the retention policy
// applied.
func (h *RecipeHandler) History(c *gin.Context) {
	username := c.GetString("username")
	recipes, err := h.recipes.History(username)
	if err != nil {
		log.Printf("failed to load recipe history for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Rezepte konnten nicht geladen werden"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes})
}

type ToggleFavoriteRequest struct {
	RecipeID string `json:"recipe_id"`
}

// ToggleFavorite flips the favorite flag of a history entry.
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Ungültige Anfrage"})
		return
	}
	if req.RecipeID == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Rezept ID fehlt"})
		return
	}

	username := c.GetString("username")
	isFavorite, err := h.recipes.ToggleFavorite(username, req.RecipeID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "is_favorite": isFavorite})
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Rezept nicht gefunden"})
	default:
		log.Printf("favorite toggle failed for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Favorit konnte nicht gespeichert werden"})
	}
}
