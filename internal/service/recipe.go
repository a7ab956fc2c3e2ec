package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-picker/backend/internal/logger"
	"github.com/pageza/recipe-picker/backend/internal/metrics"
	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/search"
)

// RecipeService handles recipe operations. It is also the search.RecipeSource
// backing searches against the database.
type RecipeService struct {
	db      *gorm.DB
	cache   ResultCache
	metrics *metrics.Metrics
}

// NewRecipeService creates a new RecipeService instance. cache and m may be nil.
func NewRecipeService(db *gorm.DB, cache ResultCache, m *metrics.Metrics) *RecipeService {
	return &RecipeService{
		db:      db,
		cache:   cache,
		metrics: m,
	}
}

// CreateRecipe stores a new recipe. Only the IDs of the given ingredients are
// used and each must refer to a stored ingredient.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := recipe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredients, err := resolveIngredients(tx, recipe.IngredientIDs())
		if err != nil {
			return err
		}
		recipe.ID = uuid.Nil
		recipe.Ingredients = ingredients
		return tx.Omit("Ingredients.*").Create(recipe).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.FromContext(ctx).Info("created recipe", "name", recipe.Name, "id", recipe.ID)
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Ingredients").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces every field and the ingredient set of a stored recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	if err := recipe.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}

	var existing models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		ingredients, err := resolveIngredients(tx, recipe.IngredientIDs())
		if err != nil {
			return err
		}

		err = tx.Model(&existing).
			Select("Name", "Instructions", "Category", "Servings").
			Updates(models.Recipe{
				Name:         recipe.Name,
				Instructions: recipe.Instructions,
				Category:     recipe.Category,
				Servings:     recipe.Servings,
			}).Error
		if err != nil {
			return err
		}
		return tx.Model(&existing).Association("Ingredients").Replace(ingredients)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.FromContext(ctx).Info("updated recipe", "name", recipe.Name, "id", id)
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe and its ingredient links
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		return tx.Select("Ingredients").Delete(&recipe).Error
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	logger.FromContext(ctx).Info("deleted recipe", "id", id)
	return nil
}

// FetchAll loads every recipe with its ingredients from one consistent
// snapshot, ordered by ID.
func (s *RecipeService) FetchAll(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.id")
		}).Order("id").Find(&recipes).Error
	}, s.snapshotOptions()...)
	if err != nil {
		return nil, fmt.Errorf("fetching recipes: %w", err)
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return recipes, nil
}

func (s *RecipeService) snapshotOptions() []*sql.TxOptions {
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
}

// SearchRecipes runs the search engine over the stored recipes. Overlapping
// include/exclude sets are rejected before the cache or the store is touched.
func (s *RecipeService) SearchRecipes(ctx context.Context, criteria search.Criteria) ([]models.Recipe, error) {
	start := time.Now()

	if err := search.ValidateDisjoint(criteria.Include, criteria.Exclude); err != nil {
		s.nameOverlap(ctx, err)
		s.observeSearch(metrics.OutcomeOverlap, start, 0)
		return nil, err
	}

	var (
		results []models.Recipe
		err     error
	)
	if s.cache != nil {
		var hit bool
		results, hit, err = s.cache.GetOrCompute(ctx, criteria, func() ([]models.Recipe, error) {
			return search.Search(ctx, s, criteria)
		})
		s.observeCache(hit)
	} else {
		results, err = search.Search(ctx, s, criteria)
	}
	if err != nil {
		s.observeSearch(metrics.OutcomeError, start, 0)
		return nil, err
	}

	outcome := metrics.OutcomeOK
	if len(results) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	s.observeSearch(outcome, start, len(results))
	logger.FromContext(ctx).Debug("searched recipes", "results", len(results), "duration", time.Since(start))
	return results, nil
}

// nameOverlap fills in the ingredient name of an *search.OverlapError.
func (s *RecipeService) nameOverlap(ctx context.Context, err error) {
	var overlap *search.OverlapError
	if !errors.As(err, &overlap) {
		return
	}
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", overlap.IngredientID).Error; err == nil {
		overlap.Name = ingredient.Name
	}
}

func (s *RecipeService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Error("failed to invalidate search cache", "error", err)
	}
}

func (s *RecipeService) observeSearch(outcome string, start time.Time, results int) {
	if s.metrics == nil {
		return
	}
	s.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	s.metrics.SearchLatency.Observe(time.Since(start).Seconds())
	if outcome != metrics.OutcomeOverlap && outcome != metrics.OutcomeError {
		s.metrics.SearchResultsCount.Observe(float64(results))
	}
}

func (s *RecipeService) observeCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.Inc()
	} else {
		s.metrics.CacheMissesTotal.Inc()
	}
}

// resolveIngredients loads the ingredients with the given IDs, failing with
// ErrUnknownIngredient for the first ID that is not stored.
func resolveIngredients(tx *gorm.DB, ids []uuid.UUID) ([]models.Ingredient, error) {
	var found []models.Ingredient
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Ingredient, len(found))
	for _, ing := range found {
		byID[ing.ID] = ing
	}
	ingredients := make([]models.Ingredient, 0, len(ids))
	for _, id := range ids {
		ing, ok := byID[id]
		if !ok {
			slog.Debug("recipe references unknown ingredient", "ingredient_id", id)
			return nil, fmt.Errorf("%w: %s", ErrUnknownIngredient, id)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, nil
}
