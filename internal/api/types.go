package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipe-picker/backend/internal/models"
)

// IngredientRef points at a stored ingredient. Name is ignored on input.
type IngredientRef struct {
	ID   string `json:"id" binding:"required,uuid"`
	Name string `json:"name,omitempty"`
}

// RecipeRequest is the body of recipe create and update requests
type RecipeRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	Instructions string          `json:"instructions" binding:"required,max=2048"`
	Category     string          `json:"category" binding:"required"`
	Servings     int             `json:"servings" binding:"required,min=1,max=16"`
	Ingredients  []IngredientRef `json:"ingredients" binding:"required,min=1,dive"`
}

func (r *RecipeRequest) toModel() (*models.Recipe, error) {
	category, err := models.ParseCategory(r.Category)
	if err != nil {
		return nil, err
	}
	if category == models.CategoryAll {
		return nil, fmt.Errorf("category %s cannot be stored on a recipe", models.CategoryAll)
	}

	recipe := &models.Recipe{
		Name:         r.Name,
		Instructions: r.Instructions,
		Category:     category,
		Servings:     r.Servings,
		Ingredients:  make([]models.Ingredient, 0, len(r.Ingredients)),
	}
	for _, ref := range r.Ingredients {
		id, err := uuid.Parse(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid ingredient id %q", ref.ID)
		}
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{ID: id})
	}
	return recipe, nil
}

// IngredientRequest is the body of ingredient create requests
type IngredientRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// SearchResponse wraps search results
type SearchResponse struct {
	Recipes []models.Recipe `json:"recipes"`
}

// TokenResponse is returned by the token endpoint
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
