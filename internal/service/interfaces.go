package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/search"
	"github.com/pageza/recipe-picker/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *models.Recipe) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	SearchRecipes(ctx context.Context, criteria search.Criteria) ([]models.Recipe, error)
}

// IIngredientService defines the interface for ingredient operations
type IIngredientService interface {
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	CreateIngredient(ctx context.Context, name string) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	CheckCredentials(username, password string) error
	GenerateToken(username string) (string, time.Time, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ResultCache stores search results between writes.
type ResultCache interface {
	GetOrCompute(ctx context.Context, criteria search.Criteria, compute func() ([]models.Recipe, error)) ([]models.Recipe, bool, error)
	Invalidate(ctx context.Context) error
}
